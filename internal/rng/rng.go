// Package rng supplies the random identifier source used for session-scoped
// handles (pcId, socialInfoId, passport account ids).
package rng

import (
	"math/rand/v2"
	"sync"
)

// Source generates 32- and 64-bit identifiers from a seeded PCG stream. It
// is shared by all workers, so draws are serialized.
type Source struct {
	mu sync.Mutex
	r  *rand.Rand
}

func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *Source) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Uint32()
}

func (s *Source) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Uint64()
}
