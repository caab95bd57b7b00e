// Package xorshift implements the xorshift* pseudorandom number generator as
// a math/rand source, so a simulation run can be reproduced from its seed.
//
// https://en.wikipedia.org/wiki/Xorshift
package xorshift

import "math/rand"

// Source is a xorshift* random number generator.
type Source struct {
	state uint64
}

var _ rand.Source64 = (*Source)(nil)

// New returns a new source for the given seed.
func New(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

// Seed resets the generator state.
func (s *Source) Seed(seed int64) {
	// The all-zero state is a fixed point of the generator; the offset keeps
	// seed 0 usable and the fallback catches seed -1 wrapping back to 0.
	s.state = uint64(seed) + 1
	if s.state == 0 {
		s.state = 1442695040888963407
	}
}

// Uint64 returns a random number.
func (s *Source) Uint64() uint64 {
	state := s.state
	state ^= state >> 12
	state ^= state << 25
	state ^= state >> 27
	s.state = state
	return state * 6364136223846793005
}

// Int63 returns a non-negative random number.
func (s *Source) Int63() int64 {
	return int64(s.Uint64() >> 1)
}
