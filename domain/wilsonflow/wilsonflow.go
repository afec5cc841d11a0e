// Package wilsonflow computes the scale-setting observable
// W(t) = t * d/dt[t^2 <E(t)>] and the reference scale w0 defined by the
// flow time at which W crosses a fixed reference value.
package wilsonflow

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoCrossing reports that W never reaches the reference value inside the
// measured flow-time range. Propagated as a per-trial solver failure, same
// taxonomy as an effective-mass non-convergence.
var ErrNoCrossing = errors.New("W(t) does not cross the reference value on the flow-time grid")

// ComputeW differentiates the per-flow-time mean of t^2<E(t)> on the grid t
// and returns W aligned with each grid point. Central differences on
// interior points, one-sided at the ends; exact for profiles linear in t
// even on a non-uniform grid.
func ComputeW(t2e, t []float64) ([]float64, error) {
	n := len(t)
	if n < 2 {
		return nil, fmt.Errorf("flow-time grid needs at least 2 points, got %d", n)
	}
	if len(t2e) != n {
		return nil, fmt.Errorf("t^2<E> has %d points but grid has %d", len(t2e), n)
	}
	w := make([]float64, n)
	w[0] = t[0] * (t2e[1] - t2e[0]) / (t[1] - t[0])
	w[n-1] = t[n-1] * (t2e[n-1] - t2e[n-2]) / (t[n-1] - t[n-2])
	for i := 1; i < n-1; i++ {
		w[i] = t[i] * (t2e[i+1] - t2e[i-1]) / (t[i+1] - t[i-1])
	}
	return w, nil
}

// ComputeW0 locates the flow time t* with W(t*) = wRef by scanning for the
// bracketing pair of adjacent grid points and interpolating linearly between
// them, and returns w0 = sqrt(t*). W is assumed monotonically increasing
// over the physically relevant range.
func ComputeW0(w, t []float64, wRef float64) (float64, error) {
	if len(w) != len(t) || len(t) < 2 {
		return 0, fmt.Errorf("W has %d points but grid has %d", len(w), len(t))
	}
	for i := 0; i < len(w)-1; i++ {
		if w[i] == wRef {
			return math.Sqrt(t[i]), nil
		}
		if w[i] < wRef && w[i+1] >= wRef {
			tstar := t[i] + (wRef-w[i])*(t[i+1]-t[i])/(w[i+1]-w[i])
			return math.Sqrt(tstar), nil
		}
	}
	if last := len(w) - 1; w[last] == wRef {
		return math.Sqrt(t[last]), nil
	}
	return 0, ErrNoCrossing
}
