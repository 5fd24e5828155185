package core

// RuntimeConfig contains configuration passed to the engine at start.
type RuntimeConfig struct {
	MatrixW  int    // LED matrix width in cells
	MatrixH  int    // LED matrix height in cells
	TickRate int    // Simulation ticks per second
	Seed     uint32 // Initial random seed
}

// DefaultConfig returns the board the game was written for: a 35x25 LED
// matrix, 30 ticks per second and the fixed power-on seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		MatrixW:  35,
		MatrixH:  25,
		TickRate: 30,
		Seed:     12345,
	}
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventNone Event = iota
	EventAppleEaten
	EventWallCollision
	EventSelfCollision
	EventSnakeFull
	EventRestart
)

// String returns a short name for logs and storage.
func (e Event) String() string {
	switch e {
	case EventAppleEaten:
		return "apple"
	case EventWallCollision:
		return "wall"
	case EventSelfCollision:
		return "self"
	case EventSnakeFull:
		return "full"
	case EventRestart:
		return "restart"
	default:
		return "none"
	}
}

// GameState represents the externally visible state of the game.
type GameState struct {
	Score    int  // Apples eaten in the current game
	Length   int  // Current snake length
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether e occurred during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
