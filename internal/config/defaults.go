package config

import (
	_ "embed"
)

//go:embed defaults/ledsnake.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			MatrixWidth:  35,
			MatrixHeight: 25,
			TickRate:     30,
			Seed:         12345,
		},
		Restart: RestartConfig{
			Mode:           RestartLevel,
			PollIntervalMS: 1,
		},
		Storage: StorageConfig{
			DBPath: "~/.ledsnake/runs.db",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
