package ganglion

import "github.com/synaptecltd/ganglion/mathfuncs"

// Returns the pulse train sampled at t for the selected frequency.
// For the biphasic shape each sample is -1, 0 or +1.
func synthesizeWaveform(shape mathfuncs.PulseShape, t []float64, freq, pulseDur float64) []float64 {
	tsform := make([]float64, len(t))
	for i, ti := range t {
		tsform[i] = shape(ti, freq, pulseDur)
	}
	return tsform
}
