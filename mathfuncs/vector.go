package mathfuncs

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rectify returns a copy of s with negative values replaced by 0.
func Rectify(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

// CumSum returns the running sum of s multiplied by scale, i.e. the discrete integral
// of s when scale is the sampling period.
func CumSum(s []float64, scale float64) []float64 {
	out := make([]float64, len(s))
	if len(s) == 0 {
		return out
	}
	floats.CumSum(out, s)
	floats.Scale(scale, out)
	return out
}

// Max returns the largest value in s, or 0 for an empty slice.
func Max(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

// MaxAbs returns the largest magnitude in s, or 0 for an empty slice.
func MaxAbs(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, math.Inf(1))
}

// Returns the logistic y = asymptote / (1 + exp(-(x-shift)/slope)).
func Logistic(x, asymptote, shift, slope float64) float64 {
	return asymptote / (1 + math.Exp(-(x-shift)/slope))
}

// AllFinite reports whether s contains no NaN or infinite values.
func AllFinite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
