package stats

import (
	"fmt"
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, NaN for empty input.
func Mean(xs []float64) float64 {
	m, err := mstats.Mean(xs)
	if err != nil {
		return math.NaN()
	}
	return m
}

// StandardDeviation returns the standard deviation of xs, with the n-1
// divisor when sampleCorrected is set.
func StandardDeviation(xs []float64, sampleCorrected bool) float64 {
	var (
		sd  float64
		err error
	)
	if sampleCorrected {
		sd, err = mstats.StandardDeviationSample(xs)
	} else {
		sd, err = mstats.StandardDeviationPopulation(xs)
	}
	if err != nil {
		return math.NaN()
	}
	return sd
}

// StandardError returns the sample-corrected standard deviation scaled by
// sqrt(n), the error on the mean of xs.
func StandardError(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return StandardDeviation(xs, true) / math.Sqrt(float64(len(xs)))
}

// WeightedMean combines values with inverse-variance weights w_i = 1/err_i^2
// and returns the combined value and its error 1/sqrt(sum of weights).
// With all-equal errors it degenerates to the plain mean with error
// err/sqrt(n).
func WeightedMean(values, errors []float64) (float64, float64, error) {
	if len(values) == 0 {
		return 0, 0, fmt.Errorf("weighted mean of empty input")
	}
	if len(values) != len(errors) {
		return 0, 0, fmt.Errorf("weighted mean: %d values but %d errors", len(values), len(errors))
	}
	weights := make([]float64, len(errors))
	for i, e := range errors {
		if e <= 0 {
			return 0, 0, fmt.Errorf("weighted mean: non-positive error %g at index %d", e, i)
		}
		weights[i] = 1 / (e * e)
	}
	wsum := floats.Sum(weights)
	return stat.Mean(values, weights), 1 / math.Sqrt(wsum), nil
}
