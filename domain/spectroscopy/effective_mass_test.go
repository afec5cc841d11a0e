package spectroscopy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coshCorrelator builds a folded mean correlator that satisfies the mass
// relation exactly.
func coshCorrelator(mass float64, globalT int) []float64 {
	half := globalT / 2
	mu := make([]float64, half+1)
	for t := 0; t <= half; t++ {
		mu[t] = math.Cosh(mass * float64(t-half))
	}
	return mu
}

func TestEffectiveMass_RecoversKnownMass(t *testing.T) {
	const (
		m0      = 0.5
		globalT = 32
		eps     = 1e-12
	)
	mu := coshCorrelator(m0, globalT)

	for tau := 1; tau <= globalT/2-1; tau++ {
		m, err := EffectiveMass(mu, globalT, tau, eps)
		require.NoError(t, err, "tau=%d", tau)
		assert.InDelta(t, m0, m, 1e-9, "tau=%d", tau)
	}
}

func TestEffectiveMass_RecoversAcrossMassRange(t *testing.T) {
	const globalT = 48
	for _, m0 := range []float64{0.05, 0.3, 1.0, 2.5} {
		mu := coshCorrelator(m0, globalT)
		m, err := EffectiveMass(mu, globalT, 7, 1e-12)
		require.NoError(t, err, "m0=%g", m0)
		assert.InDelta(t, m0, m, 1e-8, "m0=%g", m0)
	}
}

func TestEffectiveMass_RatioAtOrBelowOneFailsToConverge(t *testing.T) {
	// Increasing correlator: mu[tau]/mu[tau+1] < 1 has no real mass.
	mu := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	_, err := EffectiveMass(mu, 16, 3, 1e-12)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoConvergence)

	// Flat correlator: ratio exactly 1 only fits m=0, outside the bracket.
	flat := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
	_, err = EffectiveMass(flat, 16, 3, 1e-12)
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestEffectiveMass_WindowPreconditions(t *testing.T) {
	mu := coshCorrelator(0.5, 16)

	_, err := EffectiveMass(mu, 16, 0, 1e-12)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoConvergence, "bad tau is a precondition error, not non-convergence")

	_, err = EffectiveMass(mu, 16, 8, 1e-12)
	assert.Error(t, err)

	_, err = EffectiveMass(mu, 16, 3, 0)
	assert.Error(t, err)
}

func TestCoshRatio_StableForLargeArguments(t *testing.T) {
	// Naive cosh(700)/cosh(690) overflows float64; the exponential form
	// must stay finite.
	r := coshRatio(100, 7, 6.9)
	assert.False(t, math.IsNaN(r))
	assert.False(t, math.IsInf(r, 0))
	assert.InDelta(t, math.Exp(10), r, math.Exp(10)*1e-9)
}
