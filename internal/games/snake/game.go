// Package snake implements the LED matrix snake engine: a fixed-capacity
// snake, pseudo-random apple placement, collision detection and restart.
// It draws onto any core.Canvas and reads input as a core.InputFrame, so the
// same engine runs against the simulated board and in tests.
package snake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/ledsnake/internal/core"
	"github.com/vovakirdan/ledsnake/internal/rng"
)

// Status is the engine state machine.
type Status int

const (
	StatusPlaying Status = iota
	StatusGameOver
)

func (s Status) String() string {
	if s == StatusGameOver {
		return "game_over"
	}
	return "playing"
}

// ErrBoardTooSmall is returned for a matrix the engine cannot start on.
var ErrBoardTooSmall = errors.New("snake: matrix too small")

// CheckSize reports whether a width x height matrix can run the game:
// the start block must lie inside the playfield.
func CheckSize(width, height int) error {
	if width < MinMatrix || height < MinMatrix {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d",
			ErrBoardTooSmall, width, height, MinMatrix, MinMatrix)
	}
	return nil
}

// Game is the snake engine.
type Game struct {
	cfg    core.RuntimeConfig
	rng    *rng.Source
	snake  Snake
	status Status
	tick   uint64
	score  int
	ended  core.Event // Why the last game ended
}

// New creates an engine. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier used for storage.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "LED Snake"
}

// Reset powers the engine on: seeds the random source and creates the snake.
// The matrix size in cfg must pass CheckSize.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rng.New(cfg.Seed)
	g.tick = 0
	g.Restart()
}

// Restart re-creates the snake and resumes play. The random source keeps
// its state, so each game gets fresh apples.
func (g *Game) Restart() {
	g.snake.Init()
	g.status = StatusPlaying
	g.score = 0
	g.ended = core.EventNone
}

// Playfield is the area the head may occupy: one block in from each edge.
func (g *Game) Playfield() core.Rect {
	return core.NewRect(PixelSize, PixelSize, g.cfg.MatrixW-2*PixelSize, g.cfg.MatrixH-2*PixelSize)
}

// PlaceApple draws a new apple position. Both coordinates are forced even
// and at least one block from the top-left edge.
func (g *Game) PlaceApple() {
	x := int(g.rng.Bounded(uint32(g.cfg.MatrixW - PixelSize)))
	y := int(g.rng.Bounded(uint32(g.cfg.MatrixH - PixelSize)))

	if x%2 != 0 {
		x--
	}
	if y%2 != 0 {
		y--
	}

	g.snake.Apple = Apple{X: max(x, PixelSize), Y: max(y, PixelSize)}
}

// EnsureApple places an apple if none is on the board.
// Returns true if a new apple was placed.
func (g *Game) EnsureApple() bool {
	if g.snake.Apple.Placed() {
		return false
	}
	g.PlaceApple()
	return true
}

// Step advances the game by one tick.
//
// While playing: shift the body, steer, move the head, check walls and self,
// then consume the apple. While game over: an active restart input
// re-creates the snake.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.status == StatusGameOver {
		if in.Has(core.ActionRestart) {
			g.Restart()
			return core.StepResult{State: g.State(), Events: []core.Event{core.EventRestart}}
		}
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.EnsureApple()

	var events []core.Event
	tail := g.snake.Tail().Pos()

	g.snake.Shift()
	g.snake.Steer(in)
	g.snake.MoveHead()

	head := g.snake.Head()
	switch {
	case !g.Playfield().Contains(head.X, head.Y):
		g.end(core.EventWallCollision)
		events = append(events, core.EventWallCollision)
	case g.snake.HitsSelf():
		g.end(core.EventSelfCollision)
		events = append(events, core.EventSelfCollision)
	}

	if g.snake.OnApple() {
		g.score++
		g.snake.Apple = Apple{}
		events = append(events, core.EventAppleEaten)
		if err := g.snake.Grow(tail); errors.Is(err, ErrSnakeFull) {
			g.end(core.EventSnakeFull)
			events = append(events, core.EventSnakeFull)
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// end moves to game over, keeping the first reason.
func (g *Game) end(reason core.Event) {
	if g.status == StatusGameOver {
		return
	}
	g.status = StatusGameOver
	g.ended = reason
}

// Render clears dst and draws the apple and every segment as
// PixelSize x PixelSize blocks. Later segments overwrite earlier ones.
func (g *Game) Render(dst core.Canvas) {
	dst.Fill(core.ColorBlack)

	for i, seg := range g.snake.Segments() {
		if i == 0 && g.snake.Apple.Placed() {
			drawBlock(dst, g.snake.Apple.X, g.snake.Apple.Y, AppleColor)
		}
		drawBlock(dst, seg.X, seg.Y, SnakeColor)
	}
}

func drawBlock(dst core.Canvas, x, y int, c core.Color) {
	for dy := 0; dy < PixelSize; dy++ {
		for dx := 0; dx < PixelSize; dx++ {
			dst.Set(x+dx, y+dy, c)
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Length:   g.snake.Len(),
		GameOver: g.status == StatusGameOver,
	}
}

// Status returns the state machine position.
func (g *Game) Status() Status {
	return g.status
}

// EndReason returns why the last game ended, EventNone while playing.
func (g *Game) EndReason() core.Event {
	return g.ended
}

// Ticks returns the number of playing ticks since Reset.
func (g *Game) Ticks() uint64 {
	return g.tick
}

// Seed returns the current random source state.
func (g *Game) Seed() uint32 {
	return g.rng.Seed()
}

// Snake returns a copy of the snake.
func (g *Game) Snake() Snake {
	return g.snake
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	head := g.snake.Head()
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d, Status: %s\n", g.tick, g.score, g.status))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s\n", g.snake.Len(), head.Dir))
	b.WriteString(fmt.Sprintf("Head: (%d, %d), Apple: (%d, %d)\n", head.X, head.Y, g.snake.Apple.X, g.snake.Apple.Y))
	return b.String()
}
