package app

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"su2kit/domain/stats"
	"su2kit/ports"
)

// Outcome is the explicit two-variant result of one bootstrap trial: a
// numeric estimate or a solver failure. Failures never carry a value into
// the aggregate statistics.
type Outcome struct {
	Value float64
	Err   error
}

// Failed reports whether the trial's solver did not converge.
func (o Outcome) Failed() bool { return o.Err != nil }

// Population is the set of successful trial estimates together with the
// failure tally. It is itself a valid output product: the boundary layer may
// persist it verbatim for histogramming or secondary error estimation.
type Population struct {
	Samples  []float64
	Failures int
	NBoot    int
}

// FailurePercent is (1 - successes/nBoot) * 100.
func (p Population) FailurePercent() float64 {
	if p.NBoot == 0 {
		return 0
	}
	return float64(p.Failures) * 100 / float64(p.NBoot)
}

// Mean is the point estimate over the success population.
func (p Population) Mean() float64 { return stats.Mean(p.Samples) }

// Error is the sample standard deviation over the success population, the
// bootstrap estimate of the uncertainty.
func (p Population) Error() float64 { return stats.StandardDeviation(p.Samples, true) }

// runTrials fans nBoot independent trials out over at most workers
// goroutines and reduces the outcomes. Each trial is a pure function of the
// immutable source series and its private random stream; solver failures are
// per-trial outcomes, never group errors, so one noisy resample cannot abort
// the run.
func runTrials(ctx context.Context, rng ports.RNGPort, name string, nBoot, workers int, trial func(*rand.Rand) (float64, error)) (Population, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	outcomes := make([]Outcome, nBoot)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < nBoot; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := trial(rng.TrialStream(name, i))
			outcomes[i] = Outcome{Value: v, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Population{}, err
	}

	pop := Population{NBoot: nBoot, Samples: make([]float64, 0, nBoot)}
	for _, o := range outcomes {
		if o.Failed() {
			pop.Failures++
			continue
		}
		pop.Samples = append(pop.Samples, o.Value)
	}
	return pop, nil
}
