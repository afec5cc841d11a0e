package stats

import (
	"fmt"
	"sort"
)

// HistogramBin is one equal-width bin of a binned sample population.
type HistogramBin struct {
	LowerEdge float64
	UpperEdge float64
	Center    float64
	Count     int
}

// Bin partitions [min, max] of a pre-sorted sample into nBins equal-width
// bins. Bins are inclusive-lower/exclusive-upper except the last, which is
// closed on both ends so the counts always sum to len(sorted).
func Bin(sorted []float64, nBins int) ([]HistogramBin, error) {
	if nBins < 1 {
		return nil, fmt.Errorf("histogram needs at least 1 bin, got %d", nBins)
	}
	if len(sorted) == 0 {
		return nil, fmt.Errorf("histogram of empty input")
	}
	if !sort.Float64sAreSorted(sorted) {
		return nil, fmt.Errorf("histogram input must be sorted")
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	width := (hi - lo) / float64(nBins)

	bins := make([]HistogramBin, nBins)
	for i := range bins {
		bins[i].LowerEdge = lo + float64(i)*width
		bins[i].UpperEdge = lo + float64(i+1)*width
		bins[i].Center = bins[i].LowerEdge + width/2
	}
	bins[nBins-1].UpperEdge = hi

	for _, x := range sorted {
		var idx int
		if width > 0 {
			idx = int((x - lo) / width)
		}
		if idx >= nBins {
			idx = nBins - 1
		}
		bins[idx].Count++
	}
	return bins, nil
}
