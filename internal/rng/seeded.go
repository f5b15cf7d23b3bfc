package rng

import "math/rand"

// Seeded is a deterministic generator for reproducing shuffles in tests
type Seeded struct {
	rand *rand.Rand
}

// NewSeeded returns a Generator seeded with the provided value
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rand: rand.New(rand.NewSource(seed))}
}

// Intn returns a deterministic random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rand.Intn(n)
}
