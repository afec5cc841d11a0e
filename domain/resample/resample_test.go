package resample

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"su2kit/domain/series"
)

func TestDraw_LengthAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct{ nconfs, blockWidth int }{
		{1, 1},
		{10, 1},
		{10, 3},
		{10, 4},
		{100, 10},
		{7, 100},
	} {
		draw := Draw(rng, tc.nconfs, tc.blockWidth)
		require.Len(t, draw, tc.nconfs, "nconfs=%d blockWidth=%d", tc.nconfs, tc.blockWidth)
		for _, idx := range draw {
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, tc.nconfs)
		}
	}
}

func TestDraw_BlocksAreContiguous(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const nconfs, width = 12, 4

	draw := Draw(rng, nconfs, width)
	require.Len(t, draw, nconfs)
	// Every aligned chunk of the draw is the in-order interior of one block.
	for i := 0; i < nconfs; i += width {
		start := draw[i]
		assert.Zero(t, start%width, "chunk must start on a block boundary")
		for j := 1; j < width; j++ {
			assert.Equal(t, start+j, draw[i+j])
		}
	}
}

func TestDraw_WidthOneCoversIndicesUniformly(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const nconfs = 20

	counts := make([]int, nconfs)
	for trial := 0; trial < 500; trial++ {
		for _, idx := range Draw(rng, nconfs, 1) {
			counts[idx]++
		}
	}
	// 500 draws of 20 indices: each index expects ~500 hits. A zero (or a
	// wildly skewed) count would mean the sampling is not uniform.
	for idx, c := range counts {
		assert.Greater(t, c, 300, "index %d undersampled", idx)
		assert.Less(t, c, 700, "index %d oversampled", idx)
	}
}

func TestDraw_DegenerateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, Draw(rng, 0, 1))
	assert.Nil(t, Draw(rng, 5, 0))
}

func TestSubsample_RepeatedIndicesRepeatValues(t *testing.T) {
	s, err := series.New("g5", [][]float64{
		{1, 10},
		{2, 20},
		{4, 40},
	})
	require.NoError(t, err)

	m := Subsample(s, []int{0, 0, 2})
	require.Len(t, m.Values, 2)
	require.Len(t, m.Errors, 2)
	assert.InDelta(t, (1.0+1.0+4.0)/3, m.Values[0], 1e-12)
	assert.InDelta(t, (10.0+10.0+40.0)/3, m.Values[1], 1e-12)
	assert.Greater(t, m.Errors[0], 0.0, "errors are always produced")
}

func TestSubsample_IdentityDrawReproducesEnsembleMean(t *testing.T) {
	s, err := series.New("g5", [][]float64{
		{1, 10},
		{3, 30},
	})
	require.NoError(t, err)

	m := Subsample(s, []int{0, 1})
	assert.InDelta(t, 2.0, m.Values[0], 1e-12)
	assert.InDelta(t, 20.0, m.Values[1], 1e-12)
}

func TestSubsampleOnce_MatchesSharedDrawShape(t *testing.T) {
	s, err := series.New("g5", [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
	require.NoError(t, err)

	m := SubsampleOnce(rand.New(rand.NewSource(5)), s, 2)
	assert.Len(t, m.Values, s.EachLen)
	assert.Len(t, m.Errors, s.EachLen)
}

func TestSubsampleFlow_SharedDrawAcrossObservables(t *testing.T) {
	f, err := series.NewFlow(
		[]float64{0.1, 0.2},
		[][]float64{{-1, -2}, {-3, -4}},
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{5, 6}, {7, 8}},
	)
	require.NoError(t, err)

	draw := []int{1, 1}
	m, err := SubsampleFlow(f, series.ObservableT2E, draw)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, m.Values[0], 1e-12)

	m, err = SubsampleFlow(f, series.ObservableT2ESym, draw)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m.Values[0], 1e-12)

	m, err = SubsampleFlow(f, series.ObservableTopCharge, draw)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, m.Values[0], 1e-12)

	_, err = SubsampleFlow(f, series.Observable(42), draw)
	assert.Error(t, err)
}
