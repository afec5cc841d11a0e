package series

// Measurement is the output of one resampling draw applied to a series: a
// per-column point value and its standard error. Errors are always filled
// even when a downstream solver only consumes the values.
type Measurement struct {
	Values []float64
	Errors []float64
}
