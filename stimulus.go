package ganglion

import (
	"fmt"
	"math"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Stimulus describes the electrical drive for a set of candidate frequencies.
// It is read-only to the cascade: derived signals live in a per-call workspace.
type Stimulus struct {
	FreqList []float64 // candidate stimulation frequencies in Hz
	Amp      []float64 // amplitude scale factor per entry of FreqList
	T        []float64 // sample times in seconds, strictly increasing with step Tsample
	Tsample  float64   // sampling period in seconds
	PulseDur float64   // pulse (phase) duration in seconds
	Shape    string    // name of the pulse shape, empty for the biphasic default
}

// NewStimulus returns a Stimulus sampled over [0, duration] at period tsample.
func NewStimulus(freqList, amp []float64, duration, tsample, pulseDur float64) (*Stimulus, error) {
	t, err := mathfuncs.TimeGrid(0, duration, tsample)
	if err != nil {
		return nil, fmt.Errorf("time grid: %w", ErrInvalidSampling)
	}

	stim := &Stimulus{
		FreqList: freqList,
		Amp:      amp,
		T:        t,
		Tsample:  tsample,
		PulseDur: pulseDur,
	}
	if err := stim.Validate(); err != nil {
		return nil, err
	}
	return stim, nil
}

// Validate checks the sampling description and the frequency/amplitude tables.
// Frequencies themselves are checked when one is selected.
func (s *Stimulus) Validate() error {
	if !(s.Tsample > 0) || math.IsInf(s.Tsample, 0) {
		return fmt.Errorf("Tsample=%v must be positive: %w", s.Tsample, ErrInvalidSampling)
	}
	if len(s.T) == 0 {
		return fmt.Errorf("time vector is empty: %w", ErrInvalidSampling)
	}
	for i := 1; i < len(s.T); i++ {
		if !(s.T[i] > s.T[i-1]) {
			return fmt.Errorf("time vector not increasing at sample %d: %w", i, ErrInvalidSampling)
		}
	}
	if len(s.FreqList) != len(s.Amp) {
		return fmt.Errorf("%d frequencies, %d amplitudes: %w", len(s.FreqList), len(s.Amp), ErrLengthMismatch)
	}
	if _, err := mathfuncs.GetPulseShapeFromName(s.Shape); err != nil {
		return fmt.Errorf("shape %q: %w", s.Shape, err)
	}
	return nil
}

// Returns the frequency and amplitude at the 0-based index freqNum.
func (s *Stimulus) selectFrequency(freqNum int) (freq, amp float64, err error) {
	if freqNum < 0 || freqNum >= len(s.FreqList) || freqNum >= len(s.Amp) {
		return 0, 0, fmt.Errorf("index %d outside %d frequencies: %w", freqNum, len(s.FreqList), ErrInvalidFrequency)
	}

	freq = s.FreqList[freqNum]
	if !(freq > 0) || math.IsInf(freq, 0) {
		return 0, 0, fmt.Errorf("frequency %v Hz at index %d: %w", freq, freqNum, ErrInvalidFrequency)
	}
	return freq, s.Amp[freqNum], nil
}
