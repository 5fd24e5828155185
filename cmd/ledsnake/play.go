package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play LED Snake in the terminal. Each LED is drawn as two columns.

Controls:
  Arrows/WASD - Press a D-pad button for one tick
  R           - Flip the restart switch on for one tick
  Space       - Latch the restart switch on or off
  Ctrl+S      - Save a PNG screenshot to ~/.ledsnake/screenshots
  ?           - More keys
  Q/Ctrl+C    - Quit

Examples:
  ledsnake play
  ledsnake play --seed 42
  ledsnake play --config ./configs/ledsnake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig(cmd)
	runtimeSeed(&cfg)

	// The matrix needs two columns per LED plus the status and help lines.
	needW, needH := cfg.Board.MatrixWidth*2, cfg.Board.MatrixHeight+4
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < needW || h < needH) {
		exitf("terminal is %dx%d, need at least %dx%d for a %dx%d matrix",
			w, h, needW, needH, cfg.Board.MatrixWidth, cfg.Board.MatrixHeight)
	}

	// Log lines would tear the alternate screen; warnings go out before it starts.
	logger := newLogger(os.Stderr, cfg, "ledsnake")
	store := openStore(cfg, logger)
	m, runErr := newMachine(cfg, machine.NopPacer{}, store, newLogger(io.Discard, cfg, "ledsnake"))
	if runErr == nil {
		runErr = tui.Run(m, cfg.Board.TickRate)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
