// Package rng provides the linear congruential generator used for apple
// placement. The state is owned by a Source value so callers can inject a
// deterministic seed.
package rng

const (
	multiplier = 1103515245
	increment  = 12345
	modulus    = 0x7FFFFFFF
)

// DefaultSeed is the power-on seed of the board.
const DefaultSeed uint32 = 12345

// Source is a 32-bit LCG. It is not safe for concurrent use.
type Source struct {
	seed uint32
}

// New creates a source starting from seed.
func New(seed uint32) *Source {
	return &Source{seed: seed}
}

// Seed returns the current generator state.
func (s *Source) Seed() uint32 {
	return s.seed
}

// Next advances the generator and returns the new state.
// The product and sum wrap at 32 bits before the modulo, as on the target CPU.
func (s *Source) Next() uint32 {
	s.seed = (multiplier*s.seed + increment) % modulus
	return s.seed
}

// Bounded returns a value in [0, max).
// max must be positive; zero is a programming error and panics.
func (s *Source) Bounded(max uint32) uint32 {
	if max == 0 {
		panic("rng: Bounded called with max 0")
	}
	return s.Next() % max
}
