package hmc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"su2kit/app"
	"su2kit/domain/stats"
	"su2kit/internal/errors"
)

// Column headers of the tabular outputs. Kept stable: downstream plotting
// scripts key on them.
var (
	MassHeader      = []string{"Tau", "Effective Mass", "Error", "Failed Samples (%)"}
	FitHeader       = []string{"Effective Mass Fit", "Error"}
	SampleHeader    = []string{"Sample"}
	HistogramHeader = []string{"Bin Center", "Count"}
)

// WriteMassPoints writes an effective-mass scan as CSV rows keyed by tau.
func WriteMassPoints(w io.Writer, points []app.MassPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MassHeader); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			strconv.Itoa(p.Tau),
			formatFloat(p.Mass),
			formatFloat(p.Error),
			formatFloat(p.FailurePercent),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadMassPoints reads rows previously written by WriteMassPoints.
func ReadMassPoints(r io.Reader) ([]app.MassPoint, error) {
	records, err := readTable(r, MassHeader)
	if err != nil {
		return nil, err
	}
	points := make([]app.MassPoint, 0, len(records))
	for i, record := range records {
		tau, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, errors.DataFormat(fmt.Sprintf("row %d: bad tau %q", i+1, record[0]))
		}
		mass, err1 := strconv.ParseFloat(record[1], 64)
		massErr, err2 := strconv.ParseFloat(record[2], 64)
		failures, err3 := strconv.ParseFloat(record[3], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, errors.DataFormat(fmt.Sprintf("row %d: bad numeric value", i+1))
		}
		points = append(points, app.MassPoint{Tau: tau, Mass: mass, Error: massErr, FailurePercent: failures})
	}
	return points, nil
}

// WriteFit writes a single plateau-fit row.
func WriteFit(w io.Writer, mass, fitErr float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(FitHeader); err != nil {
		return err
	}
	if err := cw.Write([]string{formatFloat(mass), formatFloat(fitErr)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSamples writes a raw bootstrap population, one sample per row.
func WriteSamples(w io.Writer, samples []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		if err := cw.Write([]string{formatFloat(s)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSamples reads a raw bootstrap population.
func ReadSamples(r io.Reader) ([]float64, error) {
	records, err := readTable(r, SampleHeader)
	if err != nil {
		return nil, err
	}
	samples := make([]float64, 0, len(records))
	for i, record := range records {
		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, errors.DataFormat(fmt.Sprintf("row %d: bad sample %q", i+1, record[0]))
		}
		samples = append(samples, v)
	}
	return samples, nil
}

// WriteHistogram writes binned counts as (bin center, count) rows.
func WriteHistogram(w io.Writer, bins []stats.HistogramBin) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistogramHeader); err != nil {
		return err
	}
	for _, b := range bins {
		if err := cw.Write([]string{formatFloat(b.Center), strconv.Itoa(b.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func readTable(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read result table")
	}
	if len(records) == 0 {
		return nil, errors.DataFormat("result table is empty")
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, errors.DataFormat(fmt.Sprintf("unexpected column %q, want %q", records[0][i], name))
		}
	}
	return records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
