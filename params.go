package ganglion

import (
	"fmt"
	"math"
	"slices"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// SlowAdaptationWindow is the span in seconds over which the slow adaptation kernel is sampled.
const SlowAdaptationWindow = 0.30

// Params holds the fitted model parameters for one simulation run.
// Kernels must be sampled at the same period as the stimulus they are applied to.
type Params struct {
	E     float64 // gain of the fast charge accumulation feedback
	Ek    float64 // gain of the slow charge accumulation feedback
	Tau2k float64 // time constant of the slow adaptation kernel in seconds

	G1 []float64 // ganglion cell impulse response
	G2 []float64 // fast adaptation decay kernel, may be empty to skip the fast path
	G3 []float64 // slow smoothing kernel

	Asymptote float64 // maximum level of the saturating nonlinearity
	Shift     float64 // midpoint of the saturating nonlinearity
	Slope     float64 // steepness of the saturating nonlinearity
}

// Validate checks the parameters for values that would make the cascade undefined.
// It cannot detect kernels sampled at the wrong period.
func (p *Params) Validate() error {
	if err := validateKernel("G1", p.G1, false); err != nil {
		return err
	}
	if err := validateKernel("G2", p.G2, true); err != nil {
		return err
	}
	if err := validateKernel("G3", p.G3, false); err != nil {
		return err
	}

	if !(p.Tau2k > 0) || math.IsInf(p.Tau2k, 0) {
		return fmt.Errorf("Tau2k=%v must be positive: %w", p.Tau2k, ErrInvalidParams)
	}
	if p.Slope == 0 || !mathfuncs.AllFinite([]float64{p.E, p.Ek, p.Asymptote, p.Shift, p.Slope}) {
		return fmt.Errorf("gains and nonlinearity must be finite with non-zero slope: %w", ErrInvalidParams)
	}
	return nil
}

// Clone returns a deep copy of p, so the copy shares no kernel storage with p.
func (p *Params) Clone() *Params {
	c := *p
	c.G1 = slices.Clone(p.G1)
	c.G2 = slices.Clone(p.G2)
	c.G3 = slices.Clone(p.G3)
	return &c
}

func validateKernel(name string, kernel []float64, allowEmpty bool) error {
	if len(kernel) == 0 && !allowEmpty {
		return fmt.Errorf("%s is empty: %w", name, ErrInvalidKernel)
	}
	if !mathfuncs.AllFinite(kernel) {
		return fmt.Errorf("%s has non-finite samples: %w", name, ErrInvalidKernel)
	}
	return nil
}
