package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/ledsnake/internal/config"
	"github.com/vovakirdan/ledsnake/internal/machine"
	"github.com/vovakirdan/ledsnake/internal/platform/web"
)

var (
	flagHTTPAddr string
	flagTicks    int
	flagFast     bool
	flagWatch    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the board headless",
	Long: `Run the game loop without a terminal UI. With --http the board can be
inspected and driven over HTTP:

  GET  /healthz         liveness
  GET  /state           engine snapshot as JSON
  GET  /frame.png       LED matrix as PNG (?scale=N)
  GET  /frame.txt       LED matrix as text
  POST /input/:button   up, down, left, right or restart
  GET  /runs            run history (?order=top, ?limit=N)
  GET  /stats           aggregated run statistics

Examples:
  ledsnake run --http :8080
  ledsnake run --ticks 300 --fast --log-level debug`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP inspector address (overrides http.address)")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many loop iterations (0 = run until interrupted)")
	runCmd.Flags().BoolVar(&flagFast, "fast", false, "Do not pace ticks")
	runCmd.Flags().BoolVar(&flagWatch, "watch", true, "Reload the config file when it changes")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, src := loadConfig(cmd)
	runtimeSeed(&cfg)
	if cmd.Flags().Changed("http") {
		cfg.HTTP.Address = flagHTTPAddr
	}

	logger := newLogger(os.Stderr, cfg, "ledsnake")
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	var pacer machine.Pacer = machine.NopPacer{}
	if !flagFast {
		pacer = machine.NewTickerPacer(cfg.Board.TickRate)
	}
	m, err := newMachine(cfg, pacer, store, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("board powered on",
		"matrix", fmt.Sprintf("%dx%d", cfg.Board.MatrixWidth, cfg.Board.MatrixHeight),
		"seed", cfg.Board.Seed,
		"restart", cfg.Restart.Mode,
		"config", src,
	)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancelRun := context.WithCancel(gctx)
	defer cancelRun()

	g.Go(func() error {
		defer cancelRun()
		return m.RunTicks(runCtx, flagTicks)
	})

	if cfg.HTTP.Address != "" {
		srv := web.NewServer(m, store, logger)
		g.Go(func() error {
			return srv.ListenAndServe(runCtx, cfg.HTTP.Address)
		})
	}

	if flagWatch && src != "embedded" && src != "builtin" {
		current := cfg
		g.Go(func() error {
			return config.Watch(runCtx, src, func(next config.Config) {
				applyReload(logger, current, next)
				current = next
			}, func(err error) {
				logger.Warn("config reload failed", "error", err)
			})
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	snap := m.Snapshot()
	logger.Info("stopped", "tick", snap.Tick, "apples", snap.Score, "length", snap.Length, "state", snap.State)
	return nil
}

// applyReload applies settings that can change while running and reports
// the rest.
func applyReload(logger *log.Logger, prev, next config.Config) {
	if lvl, err := log.ParseLevel(next.Log.Level); err == nil && next.Log.Level != prev.Log.Level {
		logger.SetLevel(lvl)
		logger.Info("log level changed", "level", next.Log.Level)
	}
	if next.Board != prev.Board || next.Restart != prev.Restart {
		logger.Warn("board or restart settings changed; restart ledsnake to apply")
	}
}
