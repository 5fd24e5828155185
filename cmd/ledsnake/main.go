// ledsnake simulates a snake game running on a bare-metal board: an LED
// matrix, a switch bank and a four-register D-pad, all memory mapped.
//
// Usage:
//
//	ledsnake play            - Play in the terminal
//	ledsnake run             - Run headless, optionally with an HTTP inspector
//	ledsnake serve           - Start SSH server for remote play
//	ledsnake scores          - Show run history
//	ledsnake shot            - Run a few ticks and save the LED matrix as PNG
//	ledsnake config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.ledsnake, ./configs)
//	--seed <value>      - Power-on RNG seed (0 = random based on time)
//	--fps <rate>        - Tick rate
//	--db <path>         - Run history database
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint32
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ledsnake",
	Short: "LED Snake - a snake game on a simulated LED matrix board",
	Long: `LED Snake runs a snake game against a simulated board: a memory-mapped
LED matrix, a switch bank and a D-pad. Switch 0 restarts the game after
a game over.

Available commands:
  play     - Play in the terminal
  run      - Run headless with an optional HTTP inspector
  serve    - Start SSH server for remote play
  scores   - View run history
  shot     - Save the LED matrix as a PNG
  config   - Print the effective configuration

Examples:
  ledsnake play
  ledsnake play --seed 42 --fps 15
  ledsnake run --http :8080
  ledsnake serve --ssh :2222
  ledsnake shot --input rrrrddd -o snake.png`,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shotCmd)
	rootCmd.AddCommand(configCmd)
}
