package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"su2kit/domain/resample"
	"su2kit/domain/series"
	"su2kit/domain/spectroscopy"
	"su2kit/domain/stats"
	"su2kit/domain/wilsonflow"
	"su2kit/internal/errors"
	"su2kit/ports"
)

// AnalysisService orchestrates the bootstrap estimators. All shared inputs
// are read-only; the only per-trial mutable state is the trial's own random
// stream and solver scratch.
type AnalysisService struct {
	rng     ports.RNGPort
	workers int
}

// NewAnalysisService creates an analysis service. workers <= 0 means one
// worker per CPU.
func NewAnalysisService(rng ports.RNGPort, workers int) *AnalysisService {
	return &AnalysisService{rng: rng, workers: workers}
}

// MassPoint is one aggregate effective-mass estimate keyed by time
// separation.
type MassPoint struct {
	Tau            int
	Mass           float64
	Error          float64
	FailurePercent float64
}

// EffectiveMassScanRequest configures a per-tau effective-mass scan.
type EffectiveMassScanRequest struct {
	Channel    *series.Series
	GlobalT    int
	TauMin     int
	TauMax     int
	NBoot      int
	BlockWidth int
	Precision  float64
}

// EffectiveMassScan estimates the effective mass independently at every tau
// in the window: nBoot one-shot resamples per tau, each fed to the cosh
// solver, aggregated into mean, sample stddev, and failure percentage.
func (s *AnalysisService) EffectiveMassScan(ctx context.Context, req EffectiveMassScanRequest) ([]MassPoint, error) {
	if err := validateChannelWindow(req.Channel, req.GlobalT, req.TauMin, req.TauMax); err != nil {
		return nil, err
	}
	if err := validateBoot(req.NBoot, req.BlockWidth); err != nil {
		return nil, err
	}
	log.Printf("[Analysis] effective-mass scan: channel=%s tau=[%d,%d] nboot=%d blockwidth=%d",
		req.Channel.Channel, req.TauMin, req.TauMax, req.NBoot, req.BlockWidth)

	points := make([]MassPoint, 0, req.TauMax-req.TauMin+1)
	for tau := req.TauMin; tau <= req.TauMax; tau++ {
		name := fmt.Sprintf("effmass/%s/tau=%d", req.Channel.Channel, tau)
		pop, err := runTrials(ctx, s.rng, name, req.NBoot, s.workers, func(rng *rand.Rand) (float64, error) {
			mu := resample.SubsampleOnce(rng, req.Channel, req.BlockWidth).Values
			return spectroscopy.EffectiveMass(mu, req.GlobalT, tau, req.Precision)
		})
		if err != nil {
			return nil, err
		}
		points = append(points, MassPoint{
			Tau:            tau,
			Mass:           pop.Mean(),
			Error:          pop.Error(),
			FailurePercent: pop.FailurePercent(),
		})
	}
	return points, nil
}

// BootstrapMassesRequest configures a raw mass population run.
type BootstrapMassesRequest struct {
	Channel    *series.Series
	GlobalT    int
	TauMin     int
	TauMax     int
	NBoot      int
	BlockWidth int
	Precision  float64
}

// BootstrapMasses runs nBoot trials, each solving every tau in the window on
// a single draw and averaging the masses. Any non-converged tau fails the
// whole trial. The returned population is the raw per-trial sample set.
func (s *AnalysisService) BootstrapMasses(ctx context.Context, req BootstrapMassesRequest) (Population, error) {
	if err := validateChannelWindow(req.Channel, req.GlobalT, req.TauMin, req.TauMax); err != nil {
		return Population{}, err
	}
	if err := validateBoot(req.NBoot, req.BlockWidth); err != nil {
		return Population{}, err
	}
	log.Printf("[Analysis] bootstrap masses: channel=%s tau=[%d,%d] nboot=%d",
		req.Channel.Channel, req.TauMin, req.TauMax, req.NBoot)

	name := "bootstrap-masses/" + req.Channel.Channel
	return runTrials(ctx, s.rng, name, req.NBoot, s.workers, func(rng *rand.Rand) (float64, error) {
		mu := resample.SubsampleOnce(rng, req.Channel, req.BlockWidth).Values
		masses, err := windowMasses(mu, req.GlobalT, req.TauMin, req.TauMax, req.Precision)
		if err != nil {
			return 0, err
		}
		return stats.Mean(masses), nil
	})
}

// BootstrapMassesWithScaleRequest configures the joint mass x w0 estimator.
type BootstrapMassesWithScaleRequest struct {
	Channel    *series.Series
	Flow       *series.FlowSeries
	Observable series.Observable
	GlobalT    int
	TauMin     int
	TauMax     int
	NBoot      int
	BlockWidth int
	Precision  float64
	WRef       float64
}

// BootstrapMassesWithScale estimates mass * w0 per trial with one draw
// shared between the correlator and the flow series, so the combined
// uncertainty carries the cross-series correlation.
func (s *AnalysisService) BootstrapMassesWithScale(ctx context.Context, req BootstrapMassesWithScaleRequest) (Population, error) {
	if err := validateChannelWindow(req.Channel, req.GlobalT, req.TauMin, req.TauMax); err != nil {
		return Population{}, err
	}
	if err := validateBoot(req.NBoot, req.BlockWidth); err != nil {
		return Population{}, err
	}
	if err := req.Flow.CheckCompatible(req.Channel); err != nil {
		return Population{}, errors.InvalidInput(err.Error())
	}
	log.Printf("[Analysis] bootstrap masses with w0 scale: channel=%s tau=[%d,%d] nboot=%d wref=%g",
		req.Channel.Channel, req.TauMin, req.TauMax, req.NBoot, req.WRef)

	name := "bootstrap-masses-wf/" + req.Channel.Channel
	return runTrials(ctx, s.rng, name, req.NBoot, s.workers, func(rng *rand.Rand) (float64, error) {
		draw := resample.Draw(rng, req.Channel.NConfs, req.BlockWidth)
		w0, err := w0FromDraw(req.Flow, req.Observable, draw, req.WRef)
		if err != nil {
			return 0, err
		}
		mu := resample.Subsample(req.Channel, draw).Values
		masses, err := windowMasses(mu, req.GlobalT, req.TauMin, req.TauMax, req.Precision)
		if err != nil {
			return 0, err
		}
		return stats.Mean(masses) * w0, nil
	})
}

// ChannelWindow pairs a correlator channel with its time-separation window.
type ChannelWindow struct {
	Channel *series.Series
	TauMin  int
	TauMax  int
}

// BootstrapMassRatioRequest configures the correlated mass-ratio estimator.
type BootstrapMassRatioRequest struct {
	Numerator   ChannelWindow
	Denominator ChannelWindow
	GlobalT     int
	NBoot       int
	BlockWidth  int
	Precision   float64
}

// BootstrapMassRatio estimates the ratio of two effective masses per trial,
// with one draw shared by both channels.
func (s *AnalysisService) BootstrapMassRatio(ctx context.Context, req BootstrapMassRatioRequest) (Population, error) {
	if err := validateChannelWindow(req.Numerator.Channel, req.GlobalT, req.Numerator.TauMin, req.Numerator.TauMax); err != nil {
		return Population{}, err
	}
	if err := validateChannelWindow(req.Denominator.Channel, req.GlobalT, req.Denominator.TauMin, req.Denominator.TauMax); err != nil {
		return Population{}, err
	}
	if err := validateBoot(req.NBoot, req.BlockWidth); err != nil {
		return Population{}, err
	}
	if n, d := req.Numerator.Channel.NConfs, req.Denominator.Channel.NConfs; n != d {
		return Population{}, errors.InvalidInput(fmt.Sprintf("ensemble mismatch: numerator has %d configurations, denominator has %d", n, d))
	}
	log.Printf("[Analysis] bootstrap mass ratio: %s/[%d,%d] over %s/[%d,%d] nboot=%d",
		req.Numerator.Channel.Channel, req.Numerator.TauMin, req.Numerator.TauMax,
		req.Denominator.Channel.Channel, req.Denominator.TauMin, req.Denominator.TauMax, req.NBoot)

	name := fmt.Sprintf("bootstrap-ratio/%s-%s", req.Numerator.Channel.Channel, req.Denominator.Channel.Channel)
	return runTrials(ctx, s.rng, name, req.NBoot, s.workers, func(rng *rand.Rand) (float64, error) {
		draw := resample.Draw(rng, req.Numerator.Channel.NConfs, req.BlockWidth)

		numMu := resample.Subsample(req.Numerator.Channel, draw).Values
		numMasses, err := windowMasses(numMu, req.GlobalT, req.Numerator.TauMin, req.Numerator.TauMax, req.Precision)
		if err != nil {
			return 0, err
		}
		denMu := resample.Subsample(req.Denominator.Channel, draw).Values
		denMasses, err := windowMasses(denMu, req.GlobalT, req.Denominator.TauMin, req.Denominator.TauMax, req.Precision)
		if err != nil {
			return 0, err
		}
		return stats.Mean(numMasses) / stats.Mean(denMasses), nil
	})
}

// BootstrapW0Request configures a standalone w0 scale run.
type BootstrapW0Request struct {
	Flow       *series.FlowSeries
	Observable series.Observable
	NBoot      int
	BlockWidth int
	WRef       float64
}

// BootstrapW0 estimates the w0 reference scale over nBoot flow resamples.
func (s *AnalysisService) BootstrapW0(ctx context.Context, req BootstrapW0Request) (Population, error) {
	if err := validateBoot(req.NBoot, req.BlockWidth); err != nil {
		return Population{}, err
	}
	log.Printf("[Analysis] bootstrap w0: observable=%s nboot=%d wref=%g", req.Observable, req.NBoot, req.WRef)

	return runTrials(ctx, s.rng, "bootstrap-w0", req.NBoot, s.workers, func(rng *rand.Rand) (float64, error) {
		draw := resample.Draw(rng, req.Flow.NConfs, req.BlockWidth)
		return w0FromDraw(req.Flow, req.Observable, draw, req.WRef)
	})
}

// SecondaryBootstrapError resamples an existing population (i.i.d., width 1)
// and reports the standard error of each redraw, for error-on-the-error
// analysis of a persisted sample set.
func (s *AnalysisService) SecondaryBootstrapError(ctx context.Context, samples []float64, nBoot int) (Population, error) {
	if len(samples) == 0 {
		return Population{}, errors.InvalidInput("secondary bootstrap over empty sample set")
	}
	if err := validateBoot(nBoot, 1); err != nil {
		return Population{}, err
	}
	log.Printf("[Analysis] secondary bootstrap error: samples=%d nboot=%d", len(samples), nBoot)

	return runTrials(ctx, s.rng, "bootstrap-error", nBoot, s.workers, func(rng *rand.Rand) (float64, error) {
		sub := make([]float64, 0, len(samples))
		for _, idx := range resample.Draw(rng, len(samples), 1) {
			sub = append(sub, samples[idx])
		}
		return stats.StandardError(sub), nil
	})
}

// FitPlateau fits a constant to an effective-mass table over [t1, t2] by
// inverse-variance weighting. taus, masses, and errs are parallel slices as
// loaded from a scan result.
func (s *AnalysisService) FitPlateau(taus []int, masses, errs []float64, t1, t2 int) (float64, float64, error) {
	if len(taus) != len(masses) || len(taus) != len(errs) {
		return 0, 0, errors.InvalidInput("plateau fit: mismatched table columns")
	}
	if t2 < t1 {
		return 0, 0, errors.InvalidInput(fmt.Sprintf("plateau fit: window [%d,%d] is empty", t1, t2))
	}
	offset := -1
	for i, tau := range taus {
		if tau == t1 {
			offset = i
			break
		}
	}
	if offset < 0 {
		return 0, 0, errors.InvalidInput(fmt.Sprintf("plateau fit: t1=%d not present in the table", t1))
	}
	count := t2 - t1 + 1
	if offset+count > len(taus) {
		return 0, 0, errors.InvalidInput(fmt.Sprintf("plateau fit: window [%d,%d] extends past the table", t1, t2))
	}
	return stats.WeightedMean(masses[offset:offset+count], errs[offset:offset+count])
}

func windowMasses(mu []float64, globalT, tauMin, tauMax int, precision float64) ([]float64, error) {
	masses := make([]float64, 0, tauMax-tauMin+1)
	for tau := tauMin; tau <= tauMax; tau++ {
		m, err := spectroscopy.EffectiveMass(mu, globalT, tau, precision)
		if err != nil {
			return nil, err
		}
		masses = append(masses, m)
	}
	return masses, nil
}

func w0FromDraw(flow *series.FlowSeries, tag series.Observable, draw []int, wRef float64) (float64, error) {
	meas, err := resample.SubsampleFlow(flow, tag, draw)
	if err != nil {
		return 0, err
	}
	w, err := wilsonflow.ComputeW(meas.Values, flow.T)
	if err != nil {
		return 0, err
	}
	return wilsonflow.ComputeW0(w, flow.T, wRef)
}

func validateChannelWindow(ch *series.Series, globalT, tauMin, tauMax int) error {
	if ch == nil {
		return errors.InvalidInput("no correlator channel loaded")
	}
	if err := ch.CheckGlobalT(globalT); err != nil {
		return errors.InvalidInput(err.Error())
	}
	if tauMin < 1 || tauMax > globalT/2-1 || tauMin > tauMax {
		return errors.InvalidInput(fmt.Sprintf("channel %q: tau window [%d,%d] outside valid range [1,%d]",
			ch.Channel, tauMin, tauMax, globalT/2-1))
	}
	return nil
}

func validateBoot(nBoot, blockWidth int) error {
	if nBoot < 1 {
		return errors.InvalidInput(fmt.Sprintf("bootstrap trial count must be positive, got %d", nBoot))
	}
	if blockWidth < 1 {
		return errors.InvalidInput(fmt.Sprintf("bootstrap block width must be at least 1, got %d", blockWidth))
	}
	return nil
}
