// Package config loads simulation runs for the ganglion cascade from yaml files.
//
// A run names the model parameters, the stimulus and the frequency index to simulate.
// Kernels are given either as explicit samples or as gamma kernels generated on the
// stimulus sampling grid:
//
//	freq_num: 0
//	params:
//	  ek: 8.73
//	  tau2k: 0.04525
//	  g1: {type: gamma, order: 1, tau: 0.00042, duration: 0.0084}
//	  g3: {type: samples, values: [0, 0.5, 0.25]}
//	stimulus:
//	  freq_list: [5, 10, 20]
//	  amp: [1, 2, 0.5]
//	  tsample: 0.00001
//	  duration: 0.5
//	  pulse_dur: 0.00045
//
// Fields that are left out take the values from DefaultRun.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/synaptecltd/ganglion"
	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Run describes one simulation of the cascade.
type Run struct {
	FreqNum  int            `mapstructure:"freq_num"` // 0-based index into Stimulus.FreqList and Stimulus.Amp
	Params   ParamsConfig   `mapstructure:"params"`
	Stimulus StimulusConfig `mapstructure:"stimulus"`
}

// ParamsConfig maps onto ganglion.Params, with kernels described rather than sampled.
type ParamsConfig struct {
	E         float64 `mapstructure:"e"`         // gain of the fast charge accumulation feedback
	Ek        float64 `mapstructure:"ek"`        // gain of the slow charge accumulation feedback
	Tau2k     float64 `mapstructure:"tau2k"`     // time constant of the slow adaptation kernel in seconds
	Asymptote float64 `mapstructure:"asymptote"` // maximum level of the saturating nonlinearity
	Shift     float64 `mapstructure:"shift"`     // midpoint of the saturating nonlinearity
	Slope     float64 `mapstructure:"slope"`     // steepness of the saturating nonlinearity

	G1 Kernel `mapstructure:"g1"` // ganglion cell impulse response, default gamma order 1, tau 0.42 ms
	G2 Kernel `mapstructure:"g2"` // fast adaptation kernel, default gamma order 1, tau 45.25 ms
	G3 Kernel `mapstructure:"g3"` // slow smoothing kernel, default gamma order 3, tau 26.25 ms
}

// StimulusConfig maps onto ganglion.Stimulus. The time vector is either given
// explicitly in T or generated over [0, Duration].
type StimulusConfig struct {
	FreqList []float64 `mapstructure:"freq_list"` // candidate stimulation frequencies in Hz
	Amp      []float64 `mapstructure:"amp"`       // amplitude scale factor per frequency
	Tsample  float64   `mapstructure:"tsample"`   // sampling period in seconds
	Duration float64   `mapstructure:"duration"`  // stimulus length in seconds, used when T is empty
	T        []float64 `mapstructure:"t"`         // explicit sample times in seconds
	PulseDur float64   `mapstructure:"pulse_dur"` // pulse duration in seconds
	Shape    string    `mapstructure:"shape"`     // pulse shape name, empty for biphasic
}

// Time constants of the reference temporal model in seconds.
const (
	DefaultTau1 = 0.42 / 1000
	DefaultTau2 = 45.25 / 1000
	DefaultTau3 = 26.25 / 1000
)

// DefaultRun returns the reference temporal model parameters with a 20 Hz,
// 0.45 ms biphasic pulse train sampled at 0.01 ms for 0.5 s.
func DefaultRun() *Run {
	return &Run{
		FreqNum: 0,
		Params: ParamsConfig{
			E:         8.73,
			Ek:        8.73,
			Tau2k:     DefaultTau2,
			Asymptote: 14,
			Shift:     16,
			Slope:     3,
		},
		Stimulus: StimulusConfig{
			FreqList: []float64{20},
			Amp:      []float64{1},
			Tsample:  0.01 / 1000,
			Duration: 0.5,
			PulseDur: 0.45 / 1000,
		},
	}
}

// Returns the default kernels of the reference temporal model.
func defaultKernels() (g1, g2, g3 Kernel) {
	// parameters are fixed and valid, so errors cannot occur
	k1, _ := NewGammaKernel(GammaParams{Order: 1, Tau: DefaultTau1, Duration: 20 * DefaultTau1})
	k2, _ := NewGammaKernel(GammaParams{Order: 1, Tau: DefaultTau2})
	k3, _ := NewGammaKernel(GammaParams{Order: 3, Tau: DefaultTau3})
	return k1, k2, k3
}

// Decode parses a yaml run description over the defaults.
func Decode(data []byte) (*Run, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	run := DefaultRun()
	if err := decodeStrict(stringifyKeys(raw), run); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	g1, g2, g3 := defaultKernels()
	if run.Params.G1 == nil {
		run.Params.G1 = g1
	}
	if run.Params.G2 == nil {
		run.Params.G2 = g2
	}
	if run.Params.G3 == nil {
		run.Params.G3 = g3
	}
	return run, nil
}

// Load reads and decodes the yaml run description at path.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Decode(data)
}

// Build samples the kernels on the stimulus grid and returns validated parameters and stimulus.
func (r *Run) Build() (*ganglion.Params, *ganglion.Stimulus, error) {
	sc := r.Stimulus

	t := sc.T
	if len(t) == 0 {
		if !(sc.Duration > 0) {
			return nil, nil, fmt.Errorf("config: stimulus needs t or a positive duration: %w", ganglion.ErrInvalidSampling)
		}
		grid, err := mathfuncs.TimeGrid(0, sc.Duration, sc.Tsample)
		if err != nil {
			return nil, nil, fmt.Errorf("config: stimulus grid: %w", ganglion.ErrInvalidSampling)
		}
		t = grid
	}

	stim := &ganglion.Stimulus{
		FreqList: sc.FreqList,
		Amp:      sc.Amp,
		T:        t,
		Tsample:  sc.Tsample,
		PulseDur: sc.PulseDur,
		Shape:    sc.Shape,
	}
	if err := stim.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: stimulus: %w", err)
	}

	pc := r.Params
	params := &ganglion.Params{
		E:         pc.E,
		Ek:        pc.Ek,
		Tau2k:     pc.Tau2k,
		Asymptote: pc.Asymptote,
		Shift:     pc.Shift,
		Slope:     pc.Slope,
	}
	var err error
	if params.G1, err = sampleKernel("g1", pc.G1, sc.Tsample); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if pc.G2 != nil {
		if params.G2, err = sampleKernel("g2", pc.G2, sc.Tsample); err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
	}
	if params.G3, err = sampleKernel("g3", pc.G3, sc.Tsample); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	if err := params.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: params: %w", err)
	}

	return params, stim, nil
}
