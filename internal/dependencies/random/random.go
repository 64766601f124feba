// Package random abstracts the random source used for board generation and
// power-up rolls. The default implementation is seeded so a game can be
// replayed from its seed.
package random

import "math/rand"

// Random provides the random numbers the engine needs.
type Random interface {
	// Intn returns a random int in [0, n). Returns 0 when n <= 0.
	Intn(n int) int

	// Float64 returns a random float in [0.0, 1.0).
	Float64() float64
}

// Seeded implements Random on top of a seeded math/rand source.
type Seeded struct {
	rng *rand.Rand
}

// New creates a Seeded random source.
func New(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a random int in [0, n).
func (r *Seeded) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// Float64 returns a random float in [0.0, 1.0).
func (r *Seeded) Float64() float64 {
	return r.rng.Float64()
}
