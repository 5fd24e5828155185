package snake

// Snapshot captures the game state for determinism testing and inspection.
type Snapshot struct {
	Tick   uint64 `json:"tick"`
	Score  int    `json:"score"`
	Length int    `json:"length"`
	HeadX  int    `json:"head_x"`
	HeadY  int    `json:"head_y"`
	Dir    string `json:"dir"`
	AppleX int    `json:"apple_x"`
	AppleY int    `json:"apple_y"`
	Seed   uint32 `json:"seed"`
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	head := g.snake.Head()
	snap := Snapshot{
		Tick:   g.tick,
		Score:  g.score,
		Length: g.snake.Len(),
		HeadX:  head.X,
		HeadY:  head.Y,
		Dir:    head.Dir.String(),
		AppleX: g.snake.Apple.X,
		AppleY: g.snake.Apple.Y,
		State:  g.status.String(),
	}
	if g.rng != nil {
		snap.Seed = g.rng.Seed()
	}
	if g.status == StatusGameOver {
		snap.Reason = g.ended.String()
	}
	return snap
}
