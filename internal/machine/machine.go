// Package machine runs the snake engine against a simulated board: the outer
// loop that renders to the LED matrix, samples the D-pad, steps the engine,
// paces ticks and polls the restart switch after a game over.
package machine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/ledsnake/internal/config"
	"github.com/vovakirdan/ledsnake/internal/core"
	"github.com/vovakirdan/ledsnake/internal/games/snake"
	"github.com/vovakirdan/ledsnake/internal/periph"
)

// RunSummary describes one finished game.
type RunSummary struct {
	ID        uuid.UUID
	Seed      uint32 // Random source state when the run started
	Apples    int
	Length    int
	Ticks     uint64
	Reason    string
	StartedAt time.Time
	EndedAt   time.Time
}

// Options configures a Machine. Zero values select the defaults.
type Options struct {
	Restart      config.RestartMode
	PollInterval time.Duration
	Pacer        Pacer
	Logger       *log.Logger
	Now          func() time.Time
}

// Machine owns a board and an engine and drives them one tick at a time.
// It is safe for concurrent use: platform goroutines may read snapshots and
// poke board registers while the loop runs.
type Machine struct {
	mu sync.Mutex

	board   *periph.Board
	game    *snake.Game
	cfg     core.RuntimeConfig
	pacer   Pacer
	logger  *log.Logger
	restart config.RestartMode
	poll    time.Duration
	now     func() time.Time

	prevRestart  bool // Restart switch level at the previous sample
	restartPulse bool // Clear the restart switch after the next sample
	run          RunSummary
	hooks        []func(RunSummary)
}

// New powers on a board of the configured size and resets the engine.
func New(cfg core.RuntimeConfig, opts Options) (*Machine, error) {
	board, err := periph.NewBoard(cfg.MatrixW, cfg.MatrixH)
	if err != nil {
		return nil, err
	}
	return NewWithBoard(board, cfg, opts)
}

// NewWithBoard drives an existing board. The board size overrides the
// matrix size in cfg and must be large enough for the game.
func NewWithBoard(board *periph.Board, cfg core.RuntimeConfig, opts Options) (*Machine, error) {
	cfg.MatrixW = board.Matrix.Width()
	cfg.MatrixH = board.Matrix.Height()
	if err := snake.CheckSize(cfg.MatrixW, cfg.MatrixH); err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}

	if opts.Restart == "" {
		opts.Restart = config.RestartLevel
	}
	if opts.Pacer == nil {
		opts.Pacer = NopPacer{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	m := &Machine{
		board:   board,
		game:    snake.New(),
		cfg:     cfg,
		pacer:   opts.Pacer,
		logger:  opts.Logger,
		restart: opts.Restart,
		poll:    opts.PollInterval,
		now:     opts.Now,
	}
	m.game.Reset(cfg)
	m.beginRun()
	return m, nil
}

// OnGameOver registers a hook called with the summary of every finished
// game. Hooks run on the loop goroutine with the machine lock held and
// must not call back into the machine.
func (m *Machine) OnGameOver(fn func(RunSummary)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Board returns the simulated board.
func (m *Machine) Board() *periph.Board {
	return m.board
}

// Config returns the runtime configuration.
func (m *Machine) Config() core.RuntimeConfig {
	return m.cfg
}

// Tick runs one iteration of the outer loop. While playing it renders,
// reads input, steps the engine and then paces. While the game is over it
// polls the restart switch and sleeps for the poll interval if nothing
// happened.
func (m *Machine) Tick(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.game.Status() == snake.StatusGameOver {
		restarted := m.pollRestart()
		m.mu.Unlock()
		if restarted {
			return nil
		}
		return sleep(ctx, m.poll)
	}
	m.step()
	m.mu.Unlock()

	return m.pacer.Wait(ctx)
}

// step performs one playing tick. Caller holds m.mu.
func (m *Machine) step() {
	if m.game.EnsureApple() {
		apple := m.game.Snake().Apple
		m.logger.Debug("apple placed", "x", apple.X, "y", apple.Y)
	}
	m.game.Render(m.board.Matrix)

	in := m.board.ReadInput()
	m.prevRestart = in.Has(core.ActionRestart)
	m.releasePulse()

	res := m.game.Step(in)
	m.board.Pad.ReleaseAll()
	m.run.Ticks++

	for _, ev := range res.Events {
		switch ev {
		case core.EventAppleEaten:
			m.logger.Debug("apple eaten", "tick", m.game.Ticks(), "length", res.State.Length)
		case core.EventWallCollision, core.EventSelfCollision, core.EventSnakeFull:
			m.finishRun(ev, res.State)
		}
	}
}

// pollRestart samples the restart switch. Caller holds m.mu.
func (m *Machine) pollRestart() bool {
	on := m.board.Switches.Bit(periph.RestartSwitch)
	m.releasePulse()
	trigger := on
	if m.restart == config.RestartEdge {
		trigger = on && !m.prevRestart
	}
	m.prevRestart = on
	if !trigger {
		return false
	}

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	if res := m.game.Step(in); !res.Has(core.EventRestart) {
		return false
	}
	m.beginRun()
	m.logger.Info("restart", "seed", m.run.Seed)
	return true
}

// PressRestart turns the restart switch on until the next time the loop
// samples it.
func (m *Machine) PressRestart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board.Switches.Set(periph.RestartSwitch, true)
	m.restartPulse = true
}

// Press holds a D-pad button down until the end of the next playing tick.
// A press arriving during a tick waits for it and counts for the next one.
func (m *Machine) Press(b periph.Button) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board.Pad.Press(b)
}

func (m *Machine) releasePulse() {
	if m.restartPulse {
		m.board.Switches.Set(periph.RestartSwitch, false)
		m.restartPulse = false
	}
}

func (m *Machine) beginRun() {
	m.run = RunSummary{
		ID:        uuid.New(),
		Seed:      m.game.Seed(),
		StartedAt: m.now(),
	}
}

func (m *Machine) finishRun(reason core.Event, state core.GameState) {
	m.run.Apples = state.Score
	m.run.Length = state.Length
	m.run.Reason = reason.String()
	m.run.EndedAt = m.now()

	m.logger.Info("game over",
		"reason", m.run.Reason,
		"apples", m.run.Apples,
		"length", m.run.Length,
		"ticks", m.run.Ticks,
	)
	for _, fn := range m.hooks {
		fn(m.run)
	}
}

// Run loops until ctx is cancelled. Cancellation is a normal shutdown and
// returns nil.
func (m *Machine) Run(ctx context.Context) error {
	return m.RunTicks(ctx, 0)
}

// RunTicks loops for at most n iterations, or forever when n is zero.
func (m *Machine) RunTicks(ctx context.Context, n int) error {
	defer m.pacer.Stop()
	for i := 0; n == 0 || i < n; i++ {
		if err := m.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
	return nil
}

// Snapshot returns the engine state.
func (m *Machine) Snapshot() snake.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.Snapshot()
}

// State returns the engine's score, length and game over flag.
func (m *Machine) State() core.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.game.State()
}

// Frame copies the LED matrix.
func (m *Machine) Frame() *core.Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Matrix.Frame()
}

// Current returns the summary of the game in progress (or the last finished one
// while the machine is waiting for a restart).
func (m *Machine) Current() RunSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.run
}
