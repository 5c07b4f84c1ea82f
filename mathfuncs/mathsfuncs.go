package mathfuncs

import (
	"errors"
	"math"
	"sort"

	"github.com/teknico/sigourney/fast"
)

// A stimulation pulse shape y=f(t,freq,pulseDur). Takes the stimulation frequency in Hz
// and the pulse duration in seconds, and returns the normalised drive at time t.
type PulseShape func(t, freq, pulseDur float64) float64

// DefaultPulseShape is used when a stimulus does not name a shape.
const DefaultPulseShape = "biphasic"

// A map between string name and PulseShape pairs
var pulseShapes = map[string]PulseShape{
	"biphasic":     biphasicPulse,
	"anodic_first": anodicFirstPulse,
	"monophasic":   monophasicPulse,
	"sine":         sinePulse,
}

// Returns the names of all registered pulse shapes in sorted order.
func GetPulseShapeNames() []string {
	names := make([]string, 0, len(pulseShapes))
	for name := range pulseShapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Returns the named pulse shape. Defaults to biphasic if name is empty.
func GetPulseShapeFromName(name string) (PulseShape, error) {
	if name == "" {
		name = DefaultPulseShape
	}
	shape, ok := pulseShapes[name]
	if !ok {
		return nil, errors.New("pulse shape not found")
	}

	return shape, nil
}

// SawtoothPhase returns freq*(t mod 1/freq), the position within the current
// stimulation cycle scaled by frequency. The result lies in [0, 1) for any t.
func SawtoothPhase(t, freq float64) float64 {
	period := 1 / freq
	m := math.Mod(t, period)
	if m < 0 {
		m += period
	}
	return freq * m
}

// Returns a cathodic-first biphasic pulse train: -1 during the first pulseDur of
// each cycle, +1 during the second pulseDur, and 0 for the rest of the cycle.
// The phase boundaries themselves are 0.
func biphasicPulse(t, freq, pulseDur float64) float64 {
	s := SawtoothPhase(t, freq)
	width := pulseDur * freq

	on, off := 0.0, 0.0
	if s > width && s < 2*width {
		on = 1
	}
	if s < width {
		off = 1
	}
	return on - off
}

// Returns the biphasic pulse train with reversed polarity (+1 phase first).
func anodicFirstPulse(t, freq, pulseDur float64) float64 {
	return -biphasicPulse(t, freq, pulseDur)
}

// Returns a cathodic monophasic pulse train: -1 during the first pulseDur of each cycle.
func monophasicPulse(t, freq, pulseDur float64) float64 {
	if SawtoothPhase(t, freq) < pulseDur*freq {
		return -1
	}
	return 0
}

// Returns a unit sinusoid at freq. pulseDur is ignored.
func sinePulse(t, freq, _ float64) float64 {
	return fast.Sin(wrapAngle(2 * math.Pi * SawtoothPhase(t, freq)))
}

// Maps an angle in [0, 2*pi) onto [-pi, pi].
func wrapAngle(a float64) float64 {
	if a > math.Pi {
		return a - 2*math.Pi
	}
	return a
}
