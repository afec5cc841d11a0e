package series

import (
	"fmt"
)

// Series holds the folded measurements of one correlator channel as a
// rectangular (configuration x time-slice) table.
type Series struct {
	Channel string
	NConfs  int
	EachLen int
	Values  [][]float64 // [configuration][time-slice]
}

// New builds a Series from already-folded rows and validates rectangularity.
func New(channel string, values [][]float64) (*Series, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("channel %q: no configurations", channel)
	}
	eachLen := len(values[0])
	if eachLen < 2 {
		return nil, fmt.Errorf("channel %q: need at least 2 time-slices, got %d", channel, eachLen)
	}
	for i, row := range values {
		if len(row) != eachLen {
			return nil, fmt.Errorf("channel %q: configuration %d has %d slices, expected %d", channel, i, len(row), eachLen)
		}
	}
	return &Series{
		Channel: channel,
		NConfs:  len(values),
		EachLen: eachLen,
		Values:  values,
	}, nil
}

// NewFolded builds a Series by folding raw periodic rows of length globalT
// into globalT/2+1 symmetrized slices.
func NewFolded(channel string, raw [][]float64) (*Series, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("channel %q: no configurations", channel)
	}
	folded := make([][]float64, len(raw))
	for i, row := range raw {
		f, err := Fold(row)
		if err != nil {
			return nil, fmt.Errorf("channel %q: configuration %d: %w", channel, i, err)
		}
		folded[i] = f
	}
	return New(channel, folded)
}

// Fold symmetrizes one periodic correlator row: slice 0 and slice T/2 map to
// themselves, every other slice t is averaged with its mirror T-t.
func Fold(raw []float64) ([]float64, error) {
	globalT := len(raw)
	if globalT < 2 || globalT%2 != 0 {
		return nil, fmt.Errorf("period must be even and >= 2, got %d", globalT)
	}
	half := globalT / 2
	folded := make([]float64, half+1)
	folded[0] = raw[0]
	folded[half] = raw[half]
	for t := 1; t < half; t++ {
		folded[t] = (raw[t] + raw[globalT-t]) / 2
	}
	return folded, nil
}

// GlobalT recovers the full lattice period implied by the folded length.
func (s *Series) GlobalT() int {
	return 2 * (s.EachLen - 1)
}

// CheckGlobalT verifies the folded series is consistent with the period
// reported by the data file. A mismatch invalidates every estimate, so
// callers treat this as fatal.
func (s *Series) CheckGlobalT(globalT int) error {
	if got := s.GlobalT(); got != globalT {
		return fmt.Errorf("channel %q: folded length %d implies period %d, file reports %d",
			s.Channel, s.EachLen, got, globalT)
	}
	return nil
}

// Thermalise returns the series with the first cut configurations removed.
func (s *Series) Thermalise(cut int) (*Series, error) {
	if cut < 0 {
		return nil, fmt.Errorf("channel %q: negative thermalisation cut %d", s.Channel, cut)
	}
	if cut >= s.NConfs {
		return nil, fmt.Errorf("channel %q: thermalisation cut %d leaves no configurations (have %d)",
			s.Channel, cut, s.NConfs)
	}
	return &Series{
		Channel: s.Channel,
		NConfs:  s.NConfs - cut,
		EachLen: s.EachLen,
		Values:  s.Values[cut:],
	}, nil
}
