package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Kernel is the interface for all kernel descriptions (explicit samples, gamma, etc).
type Kernel interface {
	TypeAsString() string                       // Returns the kernel type as a string
	Samples(tsample float64) ([]float64, error) // Returns the kernel sampled at period tsample
}

// Describes a kernel by its samples. The samples must already be at the stimulus sampling period.
type samplesKernel struct {
	values []float64
}

// Parameters used to request a samples kernel.
type SamplesParams struct {
	Values []float64 `mapstructure:"values"` // kernel samples, must be non-empty
}

// Returns a samplesKernel pointer with the requested values, checking for invalid values.
func NewSamplesKernel(params SamplesParams) (*samplesKernel, error) {
	if len(params.Values) == 0 {
		return nil, errors.New("samples kernel must have at least one value")
	}
	if !mathfuncs.AllFinite(params.Values) {
		return nil, errors.New("samples kernel values must be finite")
	}
	return &samplesKernel{values: slices.Clone(params.Values)}, nil
}

func (k *samplesKernel) TypeAsString() string {
	return "samples"
}

// Returns a copy of the kernel samples; tsample is not used.
func (k *samplesKernel) Samples(_ float64) ([]float64, error) {
	return slices.Clone(k.values), nil
}

// Describes a gamma (leaky integrator cascade) kernel, generated on the sampling grid when used.
type gammaKernel struct {
	order    int     // number of cascaded integrators, at least 1
	tau      float64 // time constant in seconds
	duration float64 // span of the kernel in seconds
}

// Parameters used to request a gamma kernel. These map onto the fields of gammaKernel.
type GammaParams struct {
	Order    int     `mapstructure:"order"`    // number of cascaded integrators, default 1
	Tau      float64 `mapstructure:"tau"`      // time constant in seconds
	Duration float64 `mapstructure:"duration"` // span of the kernel in seconds, 0 defaults to 8*Tau
}

// Returns a gammaKernel pointer with the requested parameters, checking for invalid values.
func NewGammaKernel(params GammaParams) (*gammaKernel, error) {
	k := &gammaKernel{}

	if err := k.SetOrder(params.Order); err != nil {
		return nil, err
	}
	if err := k.SetTau(params.Tau); err != nil {
		return nil, err
	}
	if err := k.SetDuration(params.Duration); err != nil {
		return nil, err
	}

	return k, nil
}

func (k *gammaKernel) TypeAsString() string {
	return "gamma"
}

// Returns the gamma kernel sampled over [0, duration) at tsample.
func (k *gammaKernel) Samples(tsample float64) ([]float64, error) {
	grid, err := mathfuncs.HalfOpenGrid(0, k.duration, tsample)
	if err != nil {
		return nil, err
	}
	return mathfuncs.Gamma(k.order, k.tau, grid)
}

// Setters

// Sets the number of cascaded integrators. 0 defaults to 1.
func (k *gammaKernel) SetOrder(order int) error {
	if order == 0 {
		order = 1
	}
	if order < 1 {
		return errors.New("order must be at least 1")
	}
	k.order = order
	return nil
}

// Sets the time constant in seconds if tau > 0.
func (k *gammaKernel) SetTau(tau float64) error {
	if !(tau > 0) {
		return errors.New("tau must be greater than 0")
	}
	k.tau = tau
	return nil
}

// Sets the span of the kernel in seconds if duration >= 0. If duration=0,
// the kernel spans 8 time constants. Must be called after SetTau.
func (k *gammaKernel) SetDuration(duration float64) error {
	if duration < 0 {
		return errors.New("duration must be greater than or equal to 0")
	}
	if duration == 0 {
		duration = 8 * k.tau
	}
	k.duration = duration
	return nil
}

// Getters

func (k *gammaKernel) GetOrder() int {
	return k.order
}

func (k *gammaKernel) GetTau() float64 {
	return k.tau
}

func (k *gammaKernel) GetDuration() float64 {
	return k.duration
}

// Returns kernel sampled at tsample, naming the kernel in any error.
func sampleKernel(name string, k Kernel, tsample float64) ([]float64, error) {
	if k == nil {
		return nil, fmt.Errorf("kernel %s is not set", name)
	}
	samples, err := k.Samples(tsample)
	if err != nil {
		return nil, fmt.Errorf("kernel %s (%s): %w", name, k.TypeAsString(), err)
	}
	return samples, nil
}
