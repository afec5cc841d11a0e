package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// resampling. Implementations derive independent streams from one base seed
// so that trials are reproducible regardless of scheduling order.
type RNGPort interface {
	// Stream returns a random stream for a named operation.
	Stream(name string) *rand.Rand

	// TrialStream returns the private stream for one trial of a named
	// operation. Each trial owns its stream exclusively.
	TrialStream(name string, trial int) *rand.Rand
}
