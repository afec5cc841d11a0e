package hmc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"su2kit/app"
	"su2kit/domain/stats"
)

func TestMassPoints_RoundTrip(t *testing.T) {
	points := []app.MassPoint{
		{Tau: 5, Mass: 0.5012, Error: 0.003, FailurePercent: 0},
		{Tau: 6, Mass: 0.4998, Error: 0.004, FailurePercent: 1.2},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMassPoints(&buf, points))
	assert.True(t, strings.HasPrefix(buf.String(), "Tau,Effective Mass,Error,Failed Samples (%)\n"))

	got, err := ReadMassPoints(&buf)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestReadMassPoints_WrongHeader(t *testing.T) {
	_, err := ReadMassPoints(strings.NewReader("Tau,Mass,Error,Failures\n1,0.5,0.1,0\n"))
	assert.Error(t, err)
}

func TestSamples_RoundTrip(t *testing.T) {
	samples := []float64{0.5, 0.25, 1.0 / 3.0}

	var buf bytes.Buffer
	require.NoError(t, WriteSamples(&buf, samples))

	got, err := ReadSamples(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, got, "formatting must preserve full float64 precision")
}

func TestReadSamples_Empty(t *testing.T) {
	_, err := ReadSamples(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteFit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFit(&buf, 0.5, 0.01))
	assert.Equal(t, "Effective Mass Fit,Error\n0.5,0.01\n", buf.String())
}

func TestWriteHistogram(t *testing.T) {
	bins := []stats.HistogramBin{
		{Center: 0.25, Count: 3},
		{Center: 0.75, Count: 7},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteHistogram(&buf, bins))
	assert.Equal(t, "Bin Center,Count\n0.25,3\n0.75,7\n", buf.String())
}
