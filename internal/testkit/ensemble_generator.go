// Package testkit generates synthetic ensembles with known physics, so
// solver and estimator tests can assert exact recovery.
package testkit

import (
	"math"
	"math/rand"

	"su2kit/domain/series"
)

// CorrelatorConfig configures a synthetic cosh-correlator ensemble.
type CorrelatorConfig struct {
	Channel   string
	Mass      float64
	GlobalT   int
	NConfs    int
	Amplitude float64
	Noise     float64 // relative gaussian noise per measurement, 0 for exact
	Seed      int64
}

// DefaultCorrelatorConfig returns an exact (noise-free) pseudoscalar-like
// ensemble with mass 0.5 on a T=32 lattice.
func DefaultCorrelatorConfig() CorrelatorConfig {
	return CorrelatorConfig{
		Channel:   "g5",
		Mass:      0.5,
		GlobalT:   32,
		NConfs:    100,
		Amplitude: 1.0,
		Noise:     0,
		Seed:      42,
	}
}

// NewCorrelatorEnsemble generates a folded Series whose per-slice values
// follow A*cosh(m*(t - T/2)) exactly, times (1 + noise) per configuration.
func NewCorrelatorEnsemble(cfg CorrelatorConfig) *series.Series {
	rng := rand.New(rand.NewSource(cfg.Seed))
	half := cfg.GlobalT / 2
	eachLen := half + 1

	values := make([][]float64, cfg.NConfs)
	for c := range values {
		row := make([]float64, eachLen)
		for t := 0; t <= half; t++ {
			v := cfg.Amplitude * math.Cosh(cfg.Mass*float64(t-half))
			if cfg.Noise > 0 {
				v *= 1 + cfg.Noise*rng.NormFloat64()
			}
			row[t] = v
		}
		values[c] = row
	}
	return &series.Series{
		Channel: cfg.Channel,
		NConfs:  cfg.NConfs,
		EachLen: eachLen,
		Values:  values,
	}
}

// FlowConfig configures a synthetic Wilson-flow ensemble whose W(t) profile
// is linear in t, so W crosses WRef exactly at flow time T0.
type FlowConfig struct {
	T0     float64
	WRef   float64
	TMax   float64
	Steps  int
	NConfs int
	Noise  float64
	Seed   int64
}

// DefaultFlowConfig crosses W=1 at t0=2 on a 100-step grid up to t=4.
func DefaultFlowConfig() FlowConfig {
	return FlowConfig{
		T0:     2.0,
		WRef:   1.0,
		TMax:   4.0,
		Steps:  100,
		NConfs: 100,
		Noise:  0,
		Seed:   42,
	}
}

// NewFlowEnsemble generates a FlowSeries with t^2<E> = c*t, c = WRef/T0,
// giving W(t) = c*t: exact under central differences and exact under linear
// crossing interpolation.
func NewFlowEnsemble(cfg FlowConfig) *series.FlowSeries {
	rng := rand.New(rand.NewSource(cfg.Seed))
	c := cfg.WRef / cfg.T0

	t := make([]float64, cfg.Steps)
	for i := range t {
		t[i] = cfg.TMax * float64(i+1) / float64(cfg.Steps)
	}

	t2e := make([][]float64, cfg.NConfs)
	t2esym := make([][]float64, cfg.NConfs)
	tc := make([][]float64, cfg.NConfs)
	for conf := range t2esym {
		pRow := make([]float64, cfg.Steps)
		eRow := make([]float64, cfg.Steps)
		qRow := make([]float64, cfg.Steps)
		for i := range eRow {
			v := c * t[i]
			if cfg.Noise > 0 {
				v *= 1 + cfg.Noise*rng.NormFloat64()
			}
			pRow[i] = v
			eRow[i] = v
			qRow[i] = rng.NormFloat64()
		}
		t2e[conf] = pRow
		t2esym[conf] = eRow
		tc[conf] = qRow
	}
	return &series.FlowSeries{
		T:         t,
		NConfs:    cfg.NConfs,
		T2E:       t2e,
		T2ESym:    t2esym,
		TopCharge: tc,
	}
}
