// Package seeded provides a deterministic string-seeded pseudo-random source
// for cosmetic variety (feed shuffles, glow offsets). It has no correctness
// contract beyond "same seed, same sequence" and must never be used for
// tokens or anything security-relevant.
package seeded

import "hash/fnv"

// Source is a deterministic xorshift64* generator.
type Source struct {
	state uint64
}

// New seeds a source from an arbitrary string via FNV-1a.
func New(seed string) *Source {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seed))
	state := h.Sum64()
	if state == 0 {
		state = 0x9e3779b97f4a7c15
	}
	return &Source{state: state}
}

// Next returns the next value in the sequence.
func (s *Source) Next() uint64 {
	s.state ^= s.state >> 12
	s.state ^= s.state << 25
	s.state ^= s.state >> 27
	return s.state * 0x2545f4914f6cdd1d
}

// Float64 returns the next value mapped into [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Next()>>11) / float64(1<<53)
}

// Intn returns the next value mapped into [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Next() % uint64(n))
}

// Shuffle reorders indices [0, n) deterministically for the source's seed.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.Intn(i + 1)
		swap(i, j)
	}
}
