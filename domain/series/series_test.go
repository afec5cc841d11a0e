package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold_SymmetrizesPeriodicRow(t *testing.T) {
	raw := []float64{10, 8, 6, 4, 2, 4.5, 6.5, 8.5}

	folded, err := Fold(raw)
	require.NoError(t, err)

	require.Len(t, folded, 5)
	assert.Equal(t, 10.0, folded[0])
	assert.Equal(t, 2.0, folded[4])
	assert.Equal(t, (8.0+8.5)/2, folded[1])
	assert.Equal(t, (6.0+6.5)/2, folded[2])
	assert.Equal(t, (4.0+4.5)/2, folded[3])
}

func TestFold_RejectsOddPeriod(t *testing.T) {
	_, err := Fold([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestNewFolded_GlobalTInvariant(t *testing.T) {
	raw := [][]float64{
		{1, 2, 3, 4, 5, 4, 3, 2},
		{2, 3, 4, 5, 6, 5, 4, 3},
	}
	s, err := NewFolded("g5", raw)
	require.NoError(t, err)

	assert.Equal(t, 2, s.NConfs)
	assert.Equal(t, 5, s.EachLen)
	assert.Equal(t, 8, s.GlobalT())
	assert.NoError(t, s.CheckGlobalT(8))
	assert.Error(t, s.CheckGlobalT(16))
}

func TestNew_RejectsRaggedRows(t *testing.T) {
	_, err := New("g5", [][]float64{{1, 2, 3}, {1, 2}})
	assert.Error(t, err)
}

func TestThermalise(t *testing.T) {
	s, err := New("g5", [][]float64{{1, 2}, {3, 4}, {5, 6}, {7, 8}})
	require.NoError(t, err)

	cut, err := s.Thermalise(2)
	require.NoError(t, err)
	assert.Equal(t, 2, cut.NConfs)
	assert.Equal(t, []float64{5, 6}, cut.Values[0])

	_, err = s.Thermalise(4)
	assert.Error(t, err, "cut leaving no configurations must fail")
	_, err = s.Thermalise(-1)
	assert.Error(t, err)
}

func TestFlowSeries_ColumnAndCompatibility(t *testing.T) {
	grid := []float64{0.1, 0.2, 0.3}
	t2e := [][]float64{{1, 2, 3}, {2, 3, 4}}
	t2esym := [][]float64{{1.1, 2.1, 3.1}, {2.1, 3.1, 4.1}}
	tc := [][]float64{{0, 0, 1}, {1, 0, 0}}

	f, err := NewFlow(grid, t2e, t2esym, tc)
	require.NoError(t, err)
	assert.Equal(t, 2, f.NConfs)

	col, err := f.Column(ObservableT2E)
	require.NoError(t, err)
	assert.Equal(t, t2e, col)
	col, err = f.Column(ObservableT2ESym)
	require.NoError(t, err)
	assert.Equal(t, t2esym, col)
	col, err = f.Column(ObservableTopCharge)
	require.NoError(t, err)
	assert.Equal(t, tc, col)
	_, err = f.Column(Observable(99))
	assert.Error(t, err)

	match, err := New("g5", [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.NoError(t, f.CheckCompatible(match))

	mismatch, err := New("g5", [][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Error(t, f.CheckCompatible(mismatch))
}

func TestFlowSeries_Thermalise(t *testing.T) {
	grid := []float64{0.1, 0.2}
	f, err := NewFlow(grid,
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{1, 2}, {3, 4}, {5, 6}},
		[][]float64{{0, 1}, {1, 0}, {0, 0}})
	require.NoError(t, err)

	cut, err := f.Thermalise(1)
	require.NoError(t, err)
	assert.Equal(t, 2, cut.NConfs)
	assert.Equal(t, []float64{3, 4}, cut.T2ESym[0])

	_, err = f.Thermalise(3)
	assert.Error(t, err)
}

func TestParseObservable(t *testing.T) {
	tag, err := ParseObservable("t2e")
	require.NoError(t, err)
	assert.Equal(t, ObservableT2E, tag)

	tag, err = ParseObservable("t2esym")
	require.NoError(t, err)
	assert.Equal(t, ObservableT2ESym, tag)

	tag, err = ParseObservable("tc")
	require.NoError(t, err)
	assert.Equal(t, ObservableTopCharge, tag)

	_, err = ParseObservable("plaquette")
	assert.Error(t, err)
}

func TestNewFlow_ObservableCountsMustAgree(t *testing.T) {
	grid := []float64{0.1, 0.2}
	_, err := NewFlow(grid,
		[][]float64{{1, 2}},
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{0, 1}, {1, 0}})
	assert.Error(t, err, "a file missing t2e rows for some configurations must be rejected")
}
