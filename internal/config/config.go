// Package config provides YAML-based configuration loading for the board
// simulator and its platform surfaces.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ledsnake/internal/core"
	"github.com/vovakirdan/ledsnake/internal/games/snake"
	"github.com/vovakirdan/ledsnake/internal/periph"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Restart RestartConfig `yaml:"restart"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig describes the simulated board.
type BoardConfig struct {
	MatrixWidth  int    `yaml:"matrix_width"`
	MatrixHeight int    `yaml:"matrix_height"`
	TickRate     int    `yaml:"tick_rate"` // Ticks per second
	Seed         uint32 `yaml:"seed"`      // Power-on random seed
}

// RestartMode selects how the restart switch is sampled.
type RestartMode string

const (
	RestartLevel RestartMode = "level" // Switch held on restarts every game over
	RestartEdge  RestartMode = "edge"  // Only an off->on transition restarts
)

// RestartConfig controls game-over polling.
type RestartConfig struct {
	Mode           RestartMode `yaml:"mode"`
	PollIntervalMS int         `yaml:"poll_interval_ms"`
}

// PollInterval returns the game-over polling interval.
func (r RestartConfig) PollInterval() time.Duration {
	return time.Duration(r.PollIntervalMS) * time.Millisecond
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig configures the SSH server.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// HTTPConfig configures the board inspector. Empty address disables it.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Runtime converts the board section to the engine's runtime config.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		MatrixW:  c.Board.MatrixWidth,
		MatrixH:  c.Board.MatrixHeight,
		TickRate: c.Board.TickRate,
		Seed:     c.Board.Seed,
	}
}

// minMatrix is the smallest matrix edge whose playfield holds the snake's
// start block.
const minMatrix = snake.MinMatrix

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	b := c.Board
	if b.MatrixWidth < minMatrix || b.MatrixHeight < minMatrix {
		errs = append(errs, fmt.Errorf("board: matrix %dx%d is smaller than %dx%d",
			b.MatrixWidth, b.MatrixHeight, minMatrix, minMatrix))
	}
	if b.MatrixWidth*b.MatrixHeight > periph.MaxMatrixCells {
		errs = append(errs, fmt.Errorf("board: matrix %dx%d exceeds %d cells",
			b.MatrixWidth, b.MatrixHeight, periph.MaxMatrixCells))
	}
	if b.TickRate <= 0 || b.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("board: tick_rate %d out of range 1..1000", b.TickRate))
	}

	switch c.Restart.Mode {
	case RestartLevel, RestartEdge:
	default:
		errs = append(errs, fmt.Errorf("restart: unknown mode %q", c.Restart.Mode))
	}
	if c.Restart.PollIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("restart: negative poll_interval_ms %d", c.Restart.PollIntervalMS))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log: unknown level %q", c.Log.Level))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
