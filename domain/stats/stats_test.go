package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStandardDeviation_Divisors(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 2.0, StandardDeviation(xs, false), 1e-12)

	sample := StandardDeviation(xs, true)
	assert.InDelta(t, 2.0*math.Sqrt(8.0/7.0), sample, 1e-12)
	assert.Greater(t, sample, StandardDeviation(xs, false))
}

func TestStandardError_Identity(t *testing.T) {
	cases := [][]float64{
		{1.5},
		{1, 2, 3},
		{0.1, 0.4, 0.9, 1.6, 2.5},
	}
	for _, xs := range cases {
		want := StandardDeviation(xs, true) / math.Sqrt(float64(len(xs)))
		got := StandardError(xs)
		if math.IsNaN(want) {
			assert.True(t, math.IsNaN(got))
			continue
		}
		assert.InDelta(t, want, got, 1e-15)
	}
}

func TestWeightedMean_EqualErrorsIsPlainMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	errors := []float64{0.3, 0.3, 0.3, 0.3, 0.3}

	v, e, err := WeightedMean(values, errors)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-12)
	assert.InDelta(t, 0.3/math.Sqrt(5), e, 1e-12)
}

func TestWeightedMean_FavorsPreciseValues(t *testing.T) {
	v, e, err := WeightedMean([]float64{1, 10}, []float64{0.01, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 0.01)
	assert.Less(t, e, 0.011)
}

func TestWeightedMean_Preconditions(t *testing.T) {
	_, _, err := WeightedMean(nil, nil)
	assert.Error(t, err)
	_, _, err = WeightedMean([]float64{1}, []float64{0.1, 0.2})
	assert.Error(t, err)
	_, _, err = WeightedMean([]float64{1}, []float64{0})
	assert.Error(t, err)
}

func TestBin_CountsSumAndSpan(t *testing.T) {
	sorted := []float64{0, 0.1, 0.5, 0.9, 1.0, 1.5, 2.0, 3.0, 3.5, 4.0}

	bins, err := Bin(sorted, 4)
	require.NoError(t, err)
	require.Len(t, bins, 4)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(sorted), total)
	assert.Equal(t, 0.0, bins[0].LowerEdge)
	assert.Equal(t, 4.0, bins[3].UpperEdge)
}

func TestBin_LastBinClosed(t *testing.T) {
	bins, err := Bin([]float64{0, 1, 2, 3, 4}, 2)
	require.NoError(t, err)
	// 4.0 sits on the upper edge of the last bin and must still be counted.
	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 3, bins[1].Count)
}

func TestBin_DegenerateRange(t *testing.T) {
	bins, err := Bin([]float64{2, 2, 2}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, bins[0].Count)
}

func TestBin_Preconditions(t *testing.T) {
	_, err := Bin([]float64{3, 1, 2}, 2)
	assert.Error(t, err, "unsorted input must be rejected")
	_, err = Bin(nil, 2)
	assert.Error(t, err)
	_, err = Bin([]float64{1}, 0)
	assert.Error(t, err)
}
