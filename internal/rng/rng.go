// Package rng is the seeded adapter behind ports.RNGPort. A base seed of 0
// seeds from the wall clock, preserving the historical unseeded behavior;
// any nonzero seed makes every draw of a run reproducible.
package rng

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"time"
)

// Source derives independent random streams from one base seed.
type Source struct {
	base int64
}

// New creates a Source. Seed 0 selects a time-based seed.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{base: seed}
}

// Stream returns a random stream for a named operation.
func (s *Source) Stream(name string) *rand.Rand {
	return rand.New(rand.NewSource(derive(s.base, name, -1)))
}

// TrialStream returns the private stream for one trial of a named operation.
func (s *Source) TrialStream(name string, trial int) *rand.Rand {
	return rand.New(rand.NewSource(derive(s.base, name, trial)))
}

func derive(base int64, name string, trial int) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(trial)))
	h.Write(buf[:])
	return int64(h.Sum64())
}
