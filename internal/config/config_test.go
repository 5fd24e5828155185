package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded %+v, builtin %+v", cfg, Default())
	}
}

func TestDefaultRuntime(t *testing.T) {
	rt := Default().Runtime()
	if rt.MatrixW != 35 || rt.MatrixH != 25 {
		t.Errorf("matrix %dx%d, want 35x25", rt.MatrixW, rt.MatrixH)
	}
	if rt.TickRate != 30 {
		t.Errorf("tick rate %d, want 30", rt.TickRate)
	}
	if rt.Seed != 12345 {
		t.Errorf("seed %d, want 12345", rt.Seed)
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("board:\n  seed: 7\nrestart:\n  mode: edge\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Board.Seed != 7 {
		t.Errorf("seed %d, want 7", cfg.Board.Seed)
	}
	if cfg.Restart.Mode != RestartEdge {
		t.Errorf("mode %q, want edge", cfg.Restart.Mode)
	}
	if cfg.Board.MatrixWidth != 35 {
		t.Errorf("width %d, want default 35", cfg.Board.MatrixWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"too narrow", func(c *Config) { c.Board.MatrixWidth = 8 }, "smaller than"},
		{"minimum matrix", func(c *Config) { c.Board.MatrixWidth, c.Board.MatrixHeight = 14, 14 }, ""},
		{"start outside playfield", func(c *Config) { c.Board.MatrixWidth, c.Board.MatrixHeight = 13, 25 }, "smaller than"},
		{"too many cells", func(c *Config) { c.Board.MatrixWidth, c.Board.MatrixHeight = 1024, 1024 }, "exceeds"},
		{"zero tick rate", func(c *Config) { c.Board.TickRate = 0 }, "tick_rate"},
		{"unknown restart mode", func(c *Config) { c.Restart.Mode = "toggle" }, "unknown mode"},
		{"negative poll", func(c *Config) { c.Restart.PollIntervalMS = -1 }, "poll_interval_ms"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "unknown level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("board:\n  tick_rate: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src != path {
		t.Errorf("source %q, want %q", src, path)
	}
	if cfg.Board.TickRate != 60 {
		t.Errorf("tick rate %d, want 60", cfg.Board.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  tick_rate: -3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("round trip %+v, want %+v", cfg, Default())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/runs.db"); got != filepath.Join(home, "x", "runs.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/runs.db"); got != "/abs/runs.db" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("board:\n  seed: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(c Config) { reloaded <- c }, nil)
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case cfg := <-reloaded:
			if cfg.Board.Seed != 99 {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch: %v", err)
			}
			return
		case <-ticker.C:
			if err := os.WriteFile(path, []byte("board:\n  seed: 99\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for reload")
		}
	}
}
