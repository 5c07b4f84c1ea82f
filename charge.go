package ganglion

import (
	"fmt"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Returns the adaptation signal produced by charge delivered during the positive
// phase of tsform. The charge is the running integral of the rectified drive; it is
// filtered by kernel, scaled by gain*tsample, and truncated to len(tsform).
func accumulateCharge(method mathfuncs.ConvolutionMethod, tsform, kernel []float64, gain, tsample float64) []float64 {
	charge := mathfuncs.CumSum(mathfuncs.Rectify(tsform), tsample)
	return mathfuncs.ConvolveTruncatedUsing(method, charge, kernel, len(tsform), gain*tsample)
}

// Returns the order-1 gamma kernel with time constant tau sampled over
// [0, SlowAdaptationWindow] at tsample. Its length does not depend on the stimulus length.
func slowAdaptationKernel(tau, tsample float64) ([]float64, error) {
	grid, err := mathfuncs.TimeGrid(0, SlowAdaptationWindow, tsample)
	if err != nil {
		return nil, fmt.Errorf("slow adaptation grid: %w", err)
	}
	kernel, err := mathfuncs.Gamma(1, tau, grid)
	if err != nil {
		return nil, fmt.Errorf("slow adaptation kernel: %w", err)
	}
	return kernel, nil
}
