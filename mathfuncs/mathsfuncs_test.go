package mathfuncs_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Tests for the named pulse shapes
func TestPulseShapes(t *testing.T) {
	testCases := []struct {
		name     string  // name of the shape, defined in the pulseShapes map
		t        float64 // time in seconds
		freq     float64 // stimulation frequency in Hz
		pulseDur float64 // pulse duration in seconds
		expected float64 // expected value of the shape at time t
		isError  bool    // true if an error is expected
	}{
		{name: "not_a_shape", isError: true},
		{name: "biphasic", t: 0.005, freq: 10, pulseDur: 0.01, expected: -1},    // s=0.05 < 0.1
		{name: "biphasic", t: 0.015, freq: 10, pulseDur: 0.01, expected: 1},     // 0.1 < s=0.15 < 0.2
		{name: "biphasic", t: 0.05, freq: 10, pulseDur: 0.01, expected: 0},      // s=0.5, between pulses
		{name: "biphasic", t: 0.105, freq: 10, pulseDur: 0.01, expected: -1},    // second cycle
		{name: "biphasic", t: 0.115, freq: 10, pulseDur: 0.01, expected: 1},     // second cycle
		{name: "biphasic", t: 0.05, freq: 10, pulseDur: 0.1, expected: -1},      // pulseDur*freq = 1, s < 1 always
		{name: "anodic_first", t: 0.005, freq: 10, pulseDur: 0.01, expected: 1}, // polarity reversed
		{name: "anodic_first", t: 0.015, freq: 10, pulseDur: 0.01, expected: -1},
		{name: "monophasic", t: 0.005, freq: 10, pulseDur: 0.01, expected: -1},
		{name: "monophasic", t: 0.015, freq: 10, pulseDur: 0.01, expected: 0},
		{name: "", t: 0.015, freq: 10, pulseDur: 0.01, expected: 1}, // empty name defaults to biphasic
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shape, err := mathfuncs.GetPulseShapeFromName(tc.name)

			if tc.isError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, shape(tc.t, tc.freq, tc.pulseDur))
		})
	}
}

func TestSinePulse(t *testing.T) {
	shape, err := mathfuncs.GetPulseShapeFromName("sine")
	require.NoError(t, err)

	freq := 1.0 + rand.Float64()*99.0 // frequency between 1 and 100 Hz
	period := 1 / freq

	// fast.Sin is an approximation, so only bounds and signs are checked
	assert.InDelta(t, 1.0, shape(period/4, freq, 0), 0.05)
	assert.InDelta(t, -1.0, shape(3*period/4, freq, 0), 0.05)
	assert.Greater(t, shape(period/8, freq, 0), 0.0)
	assert.Less(t, shape(5*period/8, freq, 0), 0.0)
}

func TestGetPulseShapeNames(t *testing.T) {
	assert.Equal(t, []string{"anodic_first", "biphasic", "monophasic", "sine"}, mathfuncs.GetPulseShapeNames())
}

func TestSawtoothPhase(t *testing.T) {
	freq := 20.0
	for i := 0; i < 1000; i++ {
		x := (rand.Float64() - 0.5) * 10 // time between -5 and 5 seconds
		s := mathfuncs.SawtoothPhase(x, freq)
		assert.True(t, s >= 0 && s < 1, "phase %f out of range at t=%f", s, x)
	}
	assert.InDelta(t, 0.5, mathfuncs.SawtoothPhase(0.025, freq), 1e-9)
	assert.InDelta(t, 0.5, mathfuncs.SawtoothPhase(-0.025, freq), 1e-9)
}

func TestConvolve(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     []float64
		expected []float64
	}{
		{name: "empty", a: nil, b: []float64{1}, expected: nil},
		{name: "identity", a: []float64{1, 2, 3}, b: []float64{1}, expected: []float64{1, 2, 3}},
		{name: "delay", a: []float64{1, 2, 3}, b: []float64{0, 1}, expected: []float64{0, 1, 2, 3}},
		{name: "moving_sum", a: []float64{1, 2, 3}, b: []float64{1, 1}, expected: []float64{1, 3, 5, 3}},
		{name: "commutes", a: []float64{1, 1}, b: []float64{1, 2, 3}, expected: []float64{1, 3, 5, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mathfuncs.Convolve(tc.a, tc.b))
			if tc.expected == nil {
				assert.Nil(t, mathfuncs.FFTConvolve(tc.a, tc.b))
				return
			}
			assert.InDeltaSlice(t, tc.expected, mathfuncs.FFTConvolve(tc.a, tc.b), 1e-12)
		})
	}
}

func TestFFTConvolveMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	a := make([]float64, 777)
	b := make([]float64, 129)
	for i := range a {
		a[i] = rng.NormFloat64()
	}
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	direct := mathfuncs.Convolve(a, b)
	viaFFT := mathfuncs.FFTConvolve(a, b)
	require.Len(t, viaFFT, len(a)+len(b)-1)
	assert.InDeltaSlice(t, direct, viaFFT, 1e-9)
}

func TestConvolveTruncated(t *testing.T) {
	signal := []float64{0, 1, 0, 0, 2}
	ts := 1e-3

	t.Run("identity kernel scales by sampling period", func(t *testing.T) {
		out := mathfuncs.ConvolveTruncated(signal, []float64{1}, len(signal), ts)
		assert.InDeltaSlice(t, []float64{0, ts, 0, 0, 2 * ts}, out, 1e-15)
	})

	t.Run("kernel longer than signal keeps signal length", func(t *testing.T) {
		kernel := []float64{1, 1, 1, 1, 1, 1, 1, 1}
		out := mathfuncs.ConvolveTruncated(signal, kernel, len(signal), 1)
		assert.Equal(t, []float64{0, 1, 1, 1, 3}, out)
	})

	t.Run("short convolution is zero padded", func(t *testing.T) {
		out := mathfuncs.ConvolveTruncated([]float64{1}, []float64{1}, 3, 1)
		assert.Equal(t, []float64{1, 0, 0}, out)
	})

	t.Run("fft path agrees with direct path", func(t *testing.T) {
		kernel := []float64{0.5, 0.25, 0.125}
		direct := mathfuncs.ConvolveTruncated(signal, kernel, len(signal), ts)

		viaFFT := mathfuncs.ConvolveTruncatedUsing(mathfuncs.ConvolveFFT, signal, kernel, len(signal), ts)
		assert.InDeltaSlice(t, direct, viaFFT, 1e-15)

		forced := mathfuncs.ConvolveTruncatedUsing(mathfuncs.ConvolveDirect, signal, kernel, len(signal), ts)
		assert.Equal(t, direct, forced)
	})

	t.Run("method names", func(t *testing.T) {
		assert.Equal(t, "auto", mathfuncs.ConvolveAuto.String())
		assert.Equal(t, "fft", mathfuncs.ConvolveFFT.String())
		assert.Equal(t, "ConvolutionMethod(7)", mathfuncs.ConvolutionMethod(7).String())
	})
}

func TestGamma(t *testing.T) {
	ts := 1e-5
	tau := 0.02625

	grid, err := mathfuncs.TimeGrid(0, 20*tau, ts)
	require.NoError(t, err)

	for _, order := range []int{1, 2, 3} {
		kernel, err := mathfuncs.Gamma(order, tau, grid)
		require.NoError(t, err)
		require.Len(t, kernel, len(grid))

		assert.Equal(t, 0.0, kernel[0], "kernel must be causal")

		// a gamma density integrates to 1
		sum := 0.0
		for _, v := range kernel {
			sum += v
		}
		assert.InDelta(t, 1.0, sum*ts, 1e-3, "order %d", order)
	}

	// order 1 is a plain exponential decay
	kernel, err := mathfuncs.Gamma(1, tau, []float64{0, tau})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1)/tau, kernel[1], 1e-9)

	_, err = mathfuncs.Gamma(0, tau, grid)
	assert.ErrorIs(t, err, mathfuncs.ErrInvalidOrder)
	_, err = mathfuncs.Gamma(1, 0, grid)
	assert.ErrorIs(t, err, mathfuncs.ErrInvalidTimeConstant)
	_, err = mathfuncs.Gamma(1, math.NaN(), grid)
	assert.ErrorIs(t, err, mathfuncs.ErrInvalidTimeConstant)
}

func TestTimeGrid(t *testing.T) {
	testCases := []struct {
		stop, step float64
		length     int
	}{
		{stop: 0.30, step: 1e-3, length: 301},
		{stop: 0.30, step: 1e-5, length: 30001},
		{stop: 0.30, step: 7e-3, length: 43},
		{stop: 0, step: 1e-3, length: 1},
	}
	for _, tc := range testCases {
		grid, err := mathfuncs.TimeGrid(0, tc.stop, tc.step)
		require.NoError(t, err)
		assert.Len(t, grid, tc.length)
		assert.InDelta(t, float64(tc.length-1)*tc.step, grid[len(grid)-1], 1e-12)
	}

	_, err := mathfuncs.TimeGrid(0, 1, 0)
	assert.ErrorIs(t, err, mathfuncs.ErrInvalidStep)
}

func TestHalfOpenGrid(t *testing.T) {
	testCases := []struct {
		stop, step float64
		length     int
	}{
		{stop: 0.21, step: 1e-3, length: 210},
		{stop: 0.362, step: 1e-5, length: 36200},
		{stop: 0.0084, step: 1e-4, length: 84},
		{stop: 0.30, step: 7e-3, length: 43},
		{stop: 1e-3, step: 1e-2, length: 1},
		{stop: 0, step: 1e-3, length: 0},
	}
	for _, tc := range testCases {
		grid, err := mathfuncs.HalfOpenGrid(0, tc.stop, tc.step)
		require.NoError(t, err)
		assert.Len(t, grid, tc.length, "stop %v step %v", tc.stop, tc.step)
		if tc.length > 0 {
			assert.Less(t, grid[len(grid)-1], tc.stop)
		}
	}

	_, err := mathfuncs.HalfOpenGrid(0, 1, math.Inf(1))
	assert.ErrorIs(t, err, mathfuncs.ErrInvalidStep)
}

func TestVectorHelpers(t *testing.T) {
	s := []float64{-1, 2, -3, 4}

	assert.Equal(t, []float64{0, 2, 0, 4}, mathfuncs.Rectify(s))
	assert.Equal(t, []float64{-1, 2, -3, 4}, s, "input must not be modified")
	assert.Equal(t, []float64{-0.5, 0.5, -1, 1}, mathfuncs.CumSum(s, 0.5))
	assert.Equal(t, 4.0, mathfuncs.Max(s))
	assert.Equal(t, 0.0, mathfuncs.Max(nil))
	assert.Equal(t, 4.0, mathfuncs.MaxAbs([]float64{-1, 2, -4}))
	assert.Equal(t, 0.0, mathfuncs.MaxAbs(nil))
	assert.True(t, mathfuncs.AllFinite(s))
	assert.False(t, mathfuncs.AllFinite([]float64{1, math.Inf(1)}))

	// logistic is half the asymptote at the shift point
	assert.InDelta(t, 7.0, mathfuncs.Logistic(16, 14, 16, 3), 1e-12)
	assert.Less(t, mathfuncs.Logistic(10, 14, 16, 3), mathfuncs.Logistic(20, 14, 16, 3))
}
