package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ledsnake/internal/config"
	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/storage"
)

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies flag overrides.
// Returns the config and the file it came from.
func loadConfig(cmd *cobra.Command) (config.Config, string) {
	cfg, src, err := config.LoadWithSource(flagConfig)
	if err != nil {
		exitf("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Board.Seed = flagSeed
	}
	if flags.Changed("fps") {
		cfg.Board.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		exitf("%v", err)
	}
	return cfg, src
}

// runtimeSeed resolves seed 0 to a time-based seed.
func runtimeSeed(cfg *config.Config) {
	if cfg.Board.Seed == 0 {
		cfg.Board.Seed = uint32(time.Now().UnixNano())
	}
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer, cfg config.Config, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

// openStore opens the run history. Failure is logged and play continues
// without history.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// newMachine creates a machine for cfg that records finished runs in store.
func newMachine(cfg config.Config, pacer machine.Pacer, store *storage.Store, logger *log.Logger) (*machine.Machine, error) {
	m, err := machine.New(cfg.Runtime(), machine.Options{
		Restart:      cfg.Restart.Mode,
		PollInterval: cfg.Restart.PollInterval(),
		Pacer:        pacer,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	if store != nil {
		m.OnGameOver(func(r machine.RunSummary) {
			if err := store.RecordRun(r); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		})
	}
	return m, nil
}
