package rng

import (
	"sync"
	"testing"
)

func TestDeterministicForSeed(t *testing.T) {
	a := New(7)
	b := New(7)
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("draw %d diverged for equal seeds", i)
		}
	}

	c := New(8)
	same := true
	a2 := New(7)
	for i := 0; i < 16; i++ {
		if a2.Uint64() != c.Uint64() {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestConcurrentDraws(t *testing.T) {
	s := New(1)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Uint32()
				s.Uint64()
			}
		}()
	}
	wg.Wait()
}
