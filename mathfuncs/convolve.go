package mathfuncs

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// FFTThreshold is the product of signal and kernel lengths above which
// ConvolveAuto switches from direct summation to FFT convolution.
const FFTThreshold = 1 << 22

// ConvolutionMethod selects how ConvolveTruncatedUsing computes a convolution.
type ConvolutionMethod int

const (
	ConvolveAuto   ConvolutionMethod = iota // direct up to FFTThreshold, FFT above
	ConvolveDirect                          // direct summation
	ConvolveFFT                             // frequency domain
)

func (m ConvolutionMethod) String() string {
	switch m {
	case ConvolveAuto:
		return "auto"
	case ConvolveDirect:
		return "direct"
	case ConvolveFFT:
		return "fft"
	default:
		return fmt.Sprintf("ConvolutionMethod(%d)", int(m))
	}
}

// Convolve returns the full discrete linear convolution of a and b,
// of length len(a)+len(b)-1. Returns nil if either input is empty.
func Convolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	return convolveHead(a, b, len(a)+len(b)-1)
}

// FFTConvolve returns the same result as Convolve, computed in the frequency domain.
// Values agree with Convolve to within floating point rounding.
func FFTConvolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	n := len(a) + len(b) - 1
	size := nextPowerOfTwo(n)

	fft := fourier.NewFFT(size)
	pa := make([]float64, size)
	copy(pa, a)
	pb := make([]float64, size)
	copy(pb, b)

	ca := fft.Coefficients(nil, pa)
	cb := fft.Coefficients(nil, pb)
	for i := range ca {
		ca[i] *= cb[i]
	}

	// gonum's inverse transform is unnormalised
	seq := fft.Sequence(nil, ca)[:n]
	floats.Scale(1/float64(size), seq)
	return seq
}

// ConvolveTruncated convolves signal with kernel, keeps the first n samples of the
// result and multiplies them by scale. The convolution tail beyond n is discarded,
// and the result is zero padded if the full convolution is shorter than n.
func ConvolveTruncated(signal, kernel []float64, n int, scale float64) []float64 {
	return ConvolveTruncatedUsing(ConvolveAuto, signal, kernel, n, scale)
}

// ConvolveTruncatedUsing is ConvolveTruncated with an explicit convolution method.
func ConvolveTruncatedUsing(method ConvolutionMethod, signal, kernel []float64, n int, scale float64) []float64 {
	out := make([]float64, n)
	if len(signal) == 0 || len(kernel) == 0 || n == 0 {
		return out
	}

	useFFT := method == ConvolveFFT || (method == ConvolveAuto && len(signal)*len(kernel) > FFTThreshold)
	if useFFT {
		copy(out, FFTConvolve(signal, kernel))
	} else {
		copy(out, convolveHead(signal, kernel, n))
	}
	floats.Scale(scale, out)
	return out
}

// Returns the first n samples (at most len(a)+len(b)-1) of the convolution of a and b.
func convolveHead(a, b []float64, n int) []float64 {
	full := len(a) + len(b) - 1
	if n > full {
		n = full
	}
	out := make([]float64, n)
	for i, x := range a {
		if i >= n {
			break
		}
		if x == 0 {
			continue
		}
		last := len(b)
		if i+last > n {
			last = n - i
		}
		floats.AddScaled(out[i:i+last], x, b[:last])
	}
	return out
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
