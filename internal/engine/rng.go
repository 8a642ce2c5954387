package engine

import "math/rand"

// Rand is the single injectable randomness source for the engine. Every
// shuffle, sample, tie-break and weighted draw goes through it so that
// production can use a non-deterministic source while tests supply a
// seeded one for reproducible outcomes. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
	Float64() float64
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
