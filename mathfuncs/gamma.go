package mathfuncs

import (
	"errors"
	"math"
)

var (
	// ErrInvalidOrder indicates a gamma kernel order below 1.
	ErrInvalidOrder = errors.New("mathfuncs: gamma order must be at least 1")

	// ErrInvalidTimeConstant indicates a non-positive or non-finite time constant.
	ErrInvalidTimeConstant = errors.New("mathfuncs: time constant must be positive and finite")

	// ErrInvalidStep indicates a non-positive or non-finite grid step.
	ErrInvalidStep = errors.New("mathfuncs: step must be positive and finite")
)

// Gamma returns the impulse response of an order-n cascade of leaky integrators
// with time constant tau, sampled at t:
//
//	y = (t/tau)^(n-1) * exp(-t/tau) / (tau * (n-1)!)
//
// When t starts at 0 the first sample is forced to 0, so the kernel is strictly causal.
func Gamma(order int, tau float64, t []float64) ([]float64, error) {
	if order < 1 {
		return nil, ErrInvalidOrder
	}
	if !(tau > 0) || math.IsInf(tau, 0) {
		return nil, ErrInvalidTimeConstant
	}

	norm := tau * math.Gamma(float64(order)) // tau * (n-1)!
	y := make([]float64, len(t))
	for i, ti := range t {
		if i == 0 && ti == 0 {
			continue
		}
		x := ti / tau
		y[i] = math.Pow(x, float64(order-1)) * math.Exp(-x) / norm
	}
	return y, nil
}

// TimeGrid returns start, start+step, ... up to and including stop (within rounding).
// A grid over [0, 0.3] with step 1e-3 has 301 samples.
func TimeGrid(start, stop, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, ErrInvalidStep
	}
	if stop < start {
		return []float64{}, nil
	}

	n := int(math.Floor((stop-start)/step*(1+1e-12))) + 1
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	return grid, nil
}

// HalfOpenGrid returns start, start+step, ... strictly below stop (within rounding),
// the sampling used for kernels that span a fixed duration.
// A grid over [0, 0.21) with step 1e-3 has 210 samples.
func HalfOpenGrid(start, stop, step float64) ([]float64, error) {
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, ErrInvalidStep
	}
	if !(stop > start) {
		return []float64{}, nil
	}

	n := int(math.Ceil((stop - start) / step * (1 - 1e-12)))
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = start + float64(i)*step
	}
	return grid, nil
}
