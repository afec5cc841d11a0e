// Package spectroscopy extracts effective masses from folded correlator
// measurements via the periodic cosh relation.
package spectroscopy

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoConvergence reports that the mass search could not bracket or refine
// a root for the measured correlator ratio. On noisy resamples the ratio can
// fall outside the range any real mass reproduces, so this outcome is
// expected and non-fatal: callers count it and move on.
var ErrNoConvergence = errors.New("effective mass search did not converge")

const (
	maxBracketDoublings = 64
	maxBisections       = 200
)

// EffectiveMass solves
//
//	mu[tau]/mu[tau+1] = cosh(m*(tau - T/2)) / cosh(m*(tau+1 - T/2))
//
// for the mass m >= 0, where mu is the per-time-slice mean correlator and
// globalT the full lattice period. The search brackets the root by doubling
// an upper bound, then bisects until the residual is below epsilon; bracket
// exhaustion or hitting the iteration bound yields ErrNoConvergence.
//
// A ratio of exactly 1 admits the degenerate root m = 0, which carries no
// spectral information; it is treated as ErrNoConvergence along with
// ratio < 1, keeping the search restricted to strictly positive masses.
func EffectiveMass(mu []float64, globalT, tau int, epsilon float64) (float64, error) {
	if tau < 1 || tau > globalT/2-1 {
		return 0, fmt.Errorf("tau %d outside valid window [1, %d]", tau, globalT/2-1)
	}
	if tau+1 >= len(mu) {
		return 0, fmt.Errorf("correlator has %d slices, need tau+1 = %d", len(mu), tau+1)
	}
	if epsilon <= 0 {
		return 0, fmt.Errorf("solver precision must be positive, got %g", epsilon)
	}

	ratio := mu[tau] / mu[tau+1]
	// cosh arguments, reflected to the positive half by symmetry.
	a := float64(globalT)/2 - float64(tau)
	b := a - 1

	// residual(m) = coshRatio(m) - ratio; coshRatio is 1 at m=0 and grows
	// monotonically without bound, so a root exists iff ratio > 1.
	residual := func(m float64) float64 { return coshRatio(m, a, b) - ratio }

	if residual(0) >= 0 {
		return 0, ErrNoConvergence
	}
	lo, hi := 0.0, 1.0
	expanded := false
	for i := 0; i < maxBracketDoublings; i++ {
		if residual(hi) >= 0 {
			expanded = true
			break
		}
		lo = hi
		hi *= 2
	}
	if !expanded {
		return 0, ErrNoConvergence
	}

	for i := 0; i < maxBisections; i++ {
		mid := (lo + hi) / 2
		r := residual(mid)
		if math.Abs(r) < epsilon {
			return mid, nil
		}
		if r < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, ErrNoConvergence
}

// coshRatio computes cosh(m*a)/cosh(m*b) for a >= b >= 0 in the
// exponential form that stays finite for large arguments.
func coshRatio(m, a, b float64) float64 {
	return math.Exp(m*(a-b)) * (1 + math.Exp(-2*m*a)) / (1 + math.Exp(-2*m*b))
}
