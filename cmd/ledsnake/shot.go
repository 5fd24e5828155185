package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/periph"
)

var (
	flagShotTicks int
	flagShotOut   string
	flagShotScale int
	flagShotInput string
	flagShotText  bool
)

var shotCmd = &cobra.Command{
	Use:   "shot",
	Short: "Run a few ticks and save the LED matrix",
	Long: `Power the board on, run it headless and save the LED matrix as an image.

--input gives one D-pad press per tick: u, d, l, r, or '.' for none.
Ticks beyond the input run without presses.

Examples:
  ledsnake shot -o snake.png
  ledsnake shot --ticks 20 --input rrrrdddd --scale 32
  ledsnake shot --text`,
	Args: cobra.NoArgs,
	Run:  runShot,
}

func init() {
	shotCmd.Flags().IntVar(&flagShotTicks, "ticks", 1, "Number of loop iterations to run")
	shotCmd.Flags().StringVarP(&flagShotOut, "out", "o", "snake.png", "Output image path")
	shotCmd.Flags().IntVar(&flagShotScale, "scale", 16, "Pixels per LED")
	shotCmd.Flags().StringVar(&flagShotInput, "input", "", "D-pad presses, one per tick (u, d, l, r, .)")
	shotCmd.Flags().BoolVar(&flagShotText, "text", false, "Print the matrix as text instead of writing an image")
}

func runShot(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig(cmd)
	runtimeSeed(&cfg)

	presses, err := parsePresses(flagShotInput)
	if err != nil {
		exitf("%v", err)
	}

	logger := newLogger(os.Stderr, cfg, "ledsnake")
	m, err := newMachine(cfg, machine.NopPacer{}, nil, logger)
	if err != nil {
		exitf("%v", err)
	}

	ctx := context.Background()
	for i := 0; i < max(flagShotTicks, len(presses)); i++ {
		if i < len(presses) && presses[i] != nil {
			m.Press(*presses[i])
		}
		if err := m.Tick(ctx); err != nil {
			exitf("%v", err)
		}
	}

	if flagShotText {
		writeFrameText(os.Stdout, m)
		return
	}

	if err := periph.SaveImage(flagShotOut, m.Frame(), flagShotScale); err != nil {
		exitf("%v", err)
	}
	snap := m.Snapshot()
	fmt.Printf("Saved %s (tick %d, apples %d, %s)\n", flagShotOut, snap.Tick, snap.Score, snap.State)
}

func writeFrameText(w io.Writer, m *machine.Machine) {
	fmt.Fprintln(w, m.Frame().String())
}

// parsePresses decodes an input script. nil entries are ticks without a press.
func parsePresses(s string) ([]*periph.Button, error) {
	out := make([]*periph.Button, 0, len(s))
	for i, r := range strings.ToLower(s) {
		var name string
		switch r {
		case 'u':
			name = "up"
		case 'd':
			name = "down"
		case 'l':
			name = "left"
		case 'r':
			name = "right"
		case '.':
			out = append(out, nil)
			continue
		default:
			return nil, fmt.Errorf("input: unknown press %q at %d", r, i)
		}
		btn, _ := periph.ParseButton(name)
		out = append(out, &btn)
	}
	return out, nil
}
