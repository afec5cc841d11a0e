// Package hmc loads correlator and Wilson-flow measurement files produced by
// the simulation code and turns them into the in-memory series consumed by
// the analysis services.
//
// Correlator files are whitespace-separated text: a "global_t <N>" line, then
// one line per (channel, configuration) holding the channel label followed by
// the N raw time-slice values, in Monte-Carlo order. Lines starting with '#'
// are ignored.
//
// Wilson-flow files hold a "t <grid...>" line followed by alternating
// per-configuration observable lines labelled "t2e", "t2esym", and "tc",
// each spanning the grid.
package hmc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"su2kit/domain/series"
	"su2kit/internal/errors"
)

// LoadGlobalT reads the lattice time extent from a correlator file header.
func LoadGlobalT(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open correlator file %s", path)
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for scanner.Scan() {
		fields := dataFields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "global_t" {
			if len(fields) != 2 {
				return 0, errors.DataFormat(fmt.Sprintf("%s: malformed global_t line", path))
			}
			globalT, err := strconv.Atoi(fields[1])
			if err != nil || globalT < 2 || globalT%2 != 0 {
				return 0, errors.DataFormat(fmt.Sprintf("%s: global_t must be a positive even integer, got %q", path, fields[1]))
			}
			return globalT, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, errors.Wrapf(err, "read correlator file %s", path)
	}
	return 0, errors.DataFormat(fmt.Sprintf("%s: no global_t line", path))
}

// LoadChannelFolded reads every configuration of one channel and folds the
// periodic rows into globalT/2+1 symmetrized slices.
func LoadChannelFolded(path, channel string) (*series.Series, error) {
	globalT, err := LoadGlobalT(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open correlator file %s", path)
	}
	defer f.Close()

	var raw [][]float64
	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := dataFields(scanner.Text())
		if len(fields) == 0 || fields[0] != channel {
			continue
		}
		if len(fields)-1 != globalT {
			return nil, errors.DataFormat(fmt.Sprintf("%s:%d: channel %q row has %d values, expected %d",
				path, line, channel, len(fields)-1, globalT))
		}
		row, err := parseFloats(fields[1:])
		if err != nil {
			return nil, errors.DataFormat(fmt.Sprintf("%s:%d: %v", path, line, err))
		}
		raw = append(raw, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read correlator file %s", path)
	}
	if len(raw) == 0 {
		return nil, errors.DataFormat(fmt.Sprintf("%s: no configurations for channel %q", path, channel))
	}

	s, err := series.NewFolded(channel, raw)
	if err != nil {
		return nil, errors.Wrapf(err, "fold channel %q from %s", channel, path)
	}
	return s, nil
}

// LoadFlow reads a Wilson-flow observable file.
func LoadFlow(path string) (*series.FlowSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open wilson-flow file %s", path)
	}
	defer f.Close()

	var (
		grid   []float64
		t2e    [][]float64
		t2esym [][]float64
		tc     [][]float64
	)
	scanner := newLineScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := dataFields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		row, err := parseFloats(fields[1:])
		if err != nil {
			return nil, errors.DataFormat(fmt.Sprintf("%s:%d: %v", path, line, err))
		}
		switch fields[0] {
		case "t":
			if grid != nil {
				return nil, errors.DataFormat(fmt.Sprintf("%s:%d: duplicate flow-time grid", path, line))
			}
			grid = row
		case "t2e":
			t2e = append(t2e, row)
		case "t2esym":
			t2esym = append(t2esym, row)
		case "tc":
			tc = append(tc, row)
		default:
			return nil, errors.DataFormat(fmt.Sprintf("%s:%d: unknown flow row label %q", path, line, fields[0]))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read wilson-flow file %s", path)
	}
	if grid == nil {
		return nil, errors.DataFormat(fmt.Sprintf("%s: no flow-time grid", path))
	}

	fs, err := series.NewFlow(grid, t2e, t2esym, tc)
	if err != nil {
		return nil, errors.Wrapf(err, "assemble flow series from %s", path)
	}
	return fs, nil
}

func newLineScanner(f *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<22)
	return scanner
}

func dataFields(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return strings.Fields(trimmed)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", field)
		}
		out[i] = v
	}
	return out, nil
}
