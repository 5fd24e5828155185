package snake

import (
	"errors"

	"github.com/vovakirdan/ledsnake/internal/core"
)

// Game constants.
const (
	PixelSize = 2  // Edge of one logical cell in LED cells
	Capacity  = 50 // Maximum snake length
	StartX    = 10
	StartY    = 10

	// MinMatrix is the smallest matrix edge whose playfield holds the
	// start block.
	MinMatrix = max(StartX, StartY) + 2*PixelSize

	SnakeColor = core.ColorRed
	AppleColor = core.ColorGreen
)

// ErrSnakeFull is returned when the snake would grow past Capacity.
var ErrSnakeFull = errors.New("snake: capacity reached")

// Direction represents the head's heading.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the displacement of one move in LED cells.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -PixelSize
	case DirDown:
		return 0, PixelSize
	case DirLeft:
		return -PixelSize, 0
	default:
		return PixelSize, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// steering lists inputs in polling priority.
var steering = [...]struct {
	action core.Action
	dir    Direction
}{
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
	{core.ActionLeft, DirLeft},
	{core.ActionRight, DirRight},
}

// Segment is one block of the snake. Only the head's Dir is meaningful.
type Segment struct {
	X, Y int
	Dir  Direction
}

// Pos returns the segment's top-left LED cell.
func (s Segment) Pos() core.Point {
	return core.Point{X: s.X, Y: s.Y}
}

// Apple is the target cell. The zero value is the "unplaced" sentinel.
type Apple struct {
	X, Y int
}

// Placed reports whether the apple is on the board.
func (a Apple) Placed() bool {
	return a.X != 0 && a.Y != 0
}

// Snake is a fixed-capacity arena of segments plus a length counter.
// Head at index 0.
type Snake struct {
	segments [Capacity]Segment
	length   int
	Apple    Apple
}

// NewSnake returns a snake in its start position.
func NewSnake() Snake {
	var s Snake
	s.Init()
	return s
}

// Init puts the snake back to length 1 at the start cell facing right and
// clears the apple.
func (s *Snake) Init() {
	s.length = 1
	s.segments[0] = Segment{X: StartX, Y: StartY, Dir: DirRight}
	s.Apple = Apple{}
}

// Len returns the number of valid segments.
func (s *Snake) Len() int {
	return s.length
}

// Head returns segment 0.
func (s *Snake) Head() Segment {
	return s.segments[0]
}

// Tail returns the last valid segment.
func (s *Snake) Tail() Segment {
	return s.segments[s.length-1]
}

// Segments returns a copy of the valid segments, head first.
func (s *Snake) Segments() []Segment {
	out := make([]Segment, s.length)
	copy(out, s.segments[:s.length])
	return out
}

// Shift makes every body segment take the position of the one ahead of it.
// The head is untouched.
func (s *Snake) Shift() {
	for i := s.length - 1; i > 0; i-- {
		s.segments[i].X = s.segments[i-1].X
		s.segments[i].Y = s.segments[i-1].Y
	}
}

// Steer applies the first active input that is not a reversal of the
// current heading. No active input keeps the heading.
func (s *Snake) Steer(in core.InputFrame) {
	head := &s.segments[0]
	for _, st := range steering {
		if in.Has(st.action) && st.dir != head.Dir.Opposite() {
			head.Dir = st.dir
			return
		}
	}
}

// MoveHead displaces the head one cell along its heading.
func (s *Snake) MoveHead() {
	dx, dy := s.segments[0].Dir.Delta()
	s.segments[0].X += dx
	s.segments[0].Y += dy
}

// HitsSelf reports whether the head overlaps any other segment.
func (s *Snake) HitsSelf() bool {
	head := s.segments[0]
	for i := 1; i < s.length; i++ {
		if head.X == s.segments[i].X && head.Y == s.segments[i].Y {
			return true
		}
	}
	return false
}

// OnApple reports whether the head is on the apple.
func (s *Snake) OnApple() bool {
	return s.segments[0].X == s.Apple.X && s.segments[0].Y == s.Apple.Y
}

// Grow appends a segment at p.
func (s *Snake) Grow(p core.Point) error {
	if s.length >= Capacity {
		return ErrSnakeFull
	}
	s.segments[s.length] = Segment{X: p.X, Y: p.Y}
	s.length++
	return nil
}
