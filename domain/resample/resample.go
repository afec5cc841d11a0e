// Package resample implements the block bootstrap over Monte-Carlo
// configurations. Resampling whole contiguous blocks rather than single
// configurations preserves short-range autocorrelation in the ensemble;
// blockWidth 1 degenerates to the ordinary i.i.d. bootstrap.
package resample

import (
	"math/rand"

	"su2kit/domain/series"
	"su2kit/domain/stats"
)

// Draw produces one bootstrap draw of exactly nconfs configuration indices.
// [0, nconfs) is partitioned into contiguous blocks of blockWidth (last block
// truncated); whole blocks are sampled uniformly with replacement and their
// member indices appended in order until the draw is full.
func Draw(rng *rand.Rand, nconfs, blockWidth int) []int {
	if nconfs <= 0 || blockWidth < 1 {
		return nil
	}
	nblocks := (nconfs + blockWidth - 1) / blockWidth
	draw := make([]int, 0, nconfs)
	for len(draw) < nconfs {
		b := rng.Intn(nblocks)
		start := b * blockWidth
		end := start + blockWidth
		if end > nconfs {
			end = nconfs
		}
		for i := start; i < end && len(draw) < nconfs; i++ {
			draw = append(draw, i)
		}
	}
	return draw
}

// Subsample computes the per-time-slice mean and standard error over the
// configurations selected by draw. Repeated indices contribute repeated
// values. Sharing one draw across several series is what yields correct
// correlated uncertainty for combined observables.
func Subsample(s *series.Series, draw []int) series.Measurement {
	return columnStats(s.Values, s.EachLen, draw)
}

// SubsampleOnce draws fresh indices and computes the subsample statistics in
// one step, for single-series estimators that need no draw sharing.
func SubsampleOnce(rng *rand.Rand, s *series.Series, blockWidth int) series.Measurement {
	return Subsample(s, Draw(rng, s.NConfs, blockWidth))
}

// SubsampleFlow computes per-flow-step subsample statistics for one tagged
// flow observable.
func SubsampleFlow(f *series.FlowSeries, tag series.Observable, draw []int) (series.Measurement, error) {
	col, err := f.Column(tag)
	if err != nil {
		return series.Measurement{}, err
	}
	return columnStats(col, len(f.T), draw), nil
}

func columnStats(values [][]float64, ncols int, draw []int) series.Measurement {
	m := series.Measurement{
		Values: make([]float64, ncols),
		Errors: make([]float64, ncols),
	}
	col := make([]float64, len(draw))
	for j := 0; j < ncols; j++ {
		for i, conf := range draw {
			col[i] = values[conf][j]
		}
		m.Values[j] = stats.Mean(col)
		m.Errors[j] = stats.StandardError(col)
	}
	return m
}
