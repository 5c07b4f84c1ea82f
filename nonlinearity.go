package ganglion

import (
	"gonum.org/v1/gonum/floats"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Returns the linear response R1 of the ganglion cell: the adaptation-corrected
// drive filtered by g1, truncated to the drive length, and scaled by amp.
func linearResponse(method mathfuncs.ConvolutionMethod, tsform, chargeAcc, g1 []float64, tsample, amp float64) []float64 {
	drive := make([]float64, len(tsform))
	floats.SubTo(drive, tsform, chargeAcc)
	return mathfuncs.ConvolveTruncatedUsing(method, drive, g1, len(drive), tsample*amp)
}

// degenerateTolerance is the rectified peak, relative to the largest magnitude of the
// linear response, at or below which the response counts as having no positive samples.
// FFT convolution leaves rounding residue of this order where the exact result is zero.
const degenerateTolerance = 1e-12

// staticNonlinearity rectifies the linear response, normalises it by its peak and
// scales the normalised shape by a logistic function of that peak. A response with
// no positive samples cannot be normalised and is reported as degenerate.
type staticNonlinearity struct {
	Asymptote float64
	Shift     float64
	Slope     float64
}

// Returns the saturated response along with the rectified peak and the scale factor.
// For a degenerate response the output is all zeros and scale is 0.
func (n staticNonlinearity) apply(linear []float64) (out []float64, peak, scale float64, degenerate bool) {
	rectified := mathfuncs.Rectify(linear)
	peak = mathfuncs.Max(rectified)
	if peak <= degenerateTolerance*mathfuncs.MaxAbs(linear) {
		return make([]float64, len(linear)), 0, 0, true
	}

	scale = mathfuncs.Logistic(peak, n.Asymptote, n.Shift, n.Slope)
	floats.Scale(scale/peak, rectified)
	return rectified, peak, scale, false
}

// Returns the final response: r filtered by g3 and truncated to len(r).
func smoothResponse(method mathfuncs.ConvolutionMethod, r, g3 []float64, tsample float64) []float64 {
	return mathfuncs.ConvolveTruncatedUsing(method, r, g3, len(r), tsample)
}
