package series

import (
	"fmt"
)

// Observable tags the named Wilson-flow quantities carried per configuration.
// The accessor is resolved once by tag; nothing downstream inspects types.
type Observable int

const (
	// ObservableT2E is the plaquette discretization of the
	// flow-time-squared energy density t^2<E(t)>.
	ObservableT2E Observable = iota
	// ObservableT2ESym is the symmetric (clover) discretization of the
	// flow-time-squared energy density.
	ObservableT2ESym
	// ObservableTopCharge is the topological charge measured along the flow.
	ObservableTopCharge
)

// String returns the column label used in measurement files.
func (o Observable) String() string {
	switch o {
	case ObservableT2E:
		return "t2e"
	case ObservableT2ESym:
		return "t2esym"
	case ObservableTopCharge:
		return "tc"
	default:
		return fmt.Sprintf("observable(%d)", int(o))
	}
}

// ParseObservable maps a column label back to its tag.
func ParseObservable(name string) (Observable, error) {
	switch name {
	case "t2e":
		return ObservableT2E, nil
	case "t2esym":
		return ObservableT2ESym, nil
	case "tc":
		return ObservableTopCharge, nil
	default:
		return 0, fmt.Errorf("unknown flow observable %q", name)
	}
}

// FlowSeries holds per-configuration Wilson-flow observables on a shared
// flow-time grid.
type FlowSeries struct {
	T         []float64
	NConfs    int
	T2E       [][]float64 // [configuration][flow-step]
	T2ESym    [][]float64
	TopCharge [][]float64
}

// NewFlow builds a FlowSeries and validates that every configuration of
// every observable matches the grid length.
func NewFlow(t []float64, t2e, t2esym, topCharge [][]float64) (*FlowSeries, error) {
	if len(t) < 2 {
		return nil, fmt.Errorf("flow-time grid needs at least 2 points, got %d", len(t))
	}
	if len(t2esym) == 0 {
		return nil, fmt.Errorf("flow series: no configurations")
	}
	if len(t2e) != len(t2esym) || len(topCharge) != len(t2esym) {
		return nil, fmt.Errorf("flow series: %d t2e, %d t2esym, and %d tc configurations must agree",
			len(t2e), len(t2esym), len(topCharge))
	}
	for i := range t2esym {
		if len(t2e[i]) != len(t) || len(t2esym[i]) != len(t) || len(topCharge[i]) != len(t) {
			return nil, fmt.Errorf("flow series: configuration %d does not span the %d-point grid", i, len(t))
		}
	}
	return &FlowSeries{
		T:         t,
		NConfs:    len(t2esym),
		T2E:       t2e,
		T2ESym:    t2esym,
		TopCharge: topCharge,
	}, nil
}

// Column returns the table for one tagged observable.
func (f *FlowSeries) Column(tag Observable) ([][]float64, error) {
	switch tag {
	case ObservableT2E:
		return f.T2E, nil
	case ObservableT2ESym:
		return f.T2ESym, nil
	case ObservableTopCharge:
		return f.TopCharge, nil
	default:
		return nil, fmt.Errorf("unknown flow observable tag %d", int(tag))
	}
}

// Thermalise drops the first cut configurations from every observable.
func (f *FlowSeries) Thermalise(cut int) (*FlowSeries, error) {
	if cut < 0 {
		return nil, fmt.Errorf("flow series: negative thermalisation cut %d", cut)
	}
	if cut >= f.NConfs {
		return nil, fmt.Errorf("flow series: thermalisation cut %d leaves no configurations (have %d)", cut, f.NConfs)
	}
	return &FlowSeries{
		T:         f.T,
		NConfs:    f.NConfs - cut,
		T2E:       f.T2E[cut:],
		T2ESym:    f.T2ESym[cut:],
		TopCharge: f.TopCharge[cut:],
	}, nil
}

// CheckCompatible verifies a correlator series and a flow series come from
// the same ensemble. Checked once before any trials run; a mismatch is fatal.
func (f *FlowSeries) CheckCompatible(s *Series) error {
	if f.NConfs != s.NConfs {
		return fmt.Errorf("ensemble mismatch: channel %q has %d configurations, flow series has %d",
			s.Channel, s.NConfs, f.NConfs)
	}
	return nil
}
