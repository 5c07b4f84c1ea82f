package ganglion

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/synaptecltd/ganglion/mathfuncs"
)

// Model computes ganglion cell responses for a fixed parameter set.
// A Model holds no per-call state and is safe for concurrent use.
type Model struct {
	params *Params
	logger *slog.Logger
	method mathfuncs.ConvolutionMethod
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for per-run records. The default discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConvolutionMethod fixes how the cascade convolves. The default,
// mathfuncs.ConvolveAuto, picks by signal and kernel length.
func WithConvolutionMethod(method mathfuncs.ConvolutionMethod) Option {
	return func(m *Model) {
		m.method = method
	}
}

// NewModel returns a Model for a validated copy of p.
func NewModel(p *Params, opts ...Option) (*Model, error) {
	if p == nil {
		return nil, fmt.Errorf("nil params: %w", ErrInvalidParams)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		params: p.Clone(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Params returns a copy of the model parameters.
func (m *Model) Params() *Params {
	return m.params.Clone()
}

// Response is the result of one cascade run along with its intermediate stages.
type Response struct {
	ID      uuid.UUID // identifies the run in log records
	FreqNum int       // 0-based index into the stimulus frequency table
	Freq    float64   // selected stimulation frequency in Hz
	Amp     float64   // amplitude scale factor applied to the linear response

	Waveform      []float64 // synthesised pulse train
	FastChargeAcc []float64 // fast-path adaptation signal from G2 and E, nil when G2 is empty
	ChargeAcc     []float64 // slow-path adaptation signal subtracted from the waveform
	Linear        []float64 // linear response R1

	Peak        float64 // peak of the rectified linear response
	ScaleFactor float64 // logistic scale factor derived from Peak, 0 when Degenerate
	Degenerate  bool    // true when the rectified response had no positive samples

	Output []float64 // final response R4, one value per stimulus sample
}

// workspace holds the signals derived during a single run, keeping them off the
// caller's Stimulus.
type workspace struct {
	freq          float64
	amp           float64
	tsform        []float64
	fastChargeAcc []float64
	chargeAcc     []float64
}

// Response runs the cascade for the frequency at 0-based index freqNum of stim.
// stim is not modified and no reference to it is retained.
func (m *Model) Response(stim *Stimulus, freqNum int) (*Response, error) {
	if stim == nil {
		return nil, fmt.Errorf("nil stimulus: %w", ErrInvalidSampling)
	}
	if err := stim.Validate(); err != nil {
		return nil, err
	}
	freq, amp, err := stim.selectFrequency(freqNum)
	if err != nil {
		return nil, err
	}
	shape, err := mathfuncs.GetPulseShapeFromName(stim.Shape)
	if err != nil {
		return nil, err
	}
	g2k, err := slowAdaptationKernel(m.params.Tau2k, stim.Tsample)
	if err != nil {
		return nil, err
	}

	p := m.params
	ts := stim.Tsample
	ws := &workspace{freq: freq, amp: amp}

	ws.tsform = synthesizeWaveform(shape, stim.T, ws.freq, stim.PulseDur)
	if len(p.G2) > 0 {
		ws.fastChargeAcc = accumulateCharge(m.method, ws.tsform, p.G2, p.E, ts)
	}
	ws.chargeAcc = accumulateCharge(m.method, ws.tsform, g2k, p.Ek, ts)

	linear := linearResponse(m.method, ws.tsform, ws.chargeAcc, p.G1, ts, ws.amp)
	nl := staticNonlinearity{Asymptote: p.Asymptote, Shift: p.Shift, Slope: p.Slope}
	saturated, peak, scale, degenerate := nl.apply(linear)

	resp := &Response{
		ID:            uuid.New(),
		FreqNum:       freqNum,
		Freq:          ws.freq,
		Amp:           ws.amp,
		Waveform:      ws.tsform,
		FastChargeAcc: ws.fastChargeAcc,
		ChargeAcc:     ws.chargeAcc,
		Linear:        linear,
		Peak:          peak,
		ScaleFactor:   scale,
		Degenerate:    degenerate,
	}

	if degenerate {
		resp.Output = saturated
		m.logger.Warn("degenerate response, returning zeros",
			"id", resp.ID, "freq", freq, "amp", amp)
		return resp, nil
	}

	resp.Output = smoothResponse(m.method, saturated, p.G3, ts)
	m.logger.Debug("computed response",
		"id", resp.ID, "freq", freq, "amp", amp, "samples", len(resp.Output),
		"peak", peak, "scale", scale)
	return resp, nil
}

// ComputeResponse returns the predicted response R4 of a ganglion cell with
// parameters p to stimulus stim at the frequency with 0-based index freqNum.
// The result has one value per sample of stim.T.
func ComputeResponse(p *Params, stim *Stimulus, freqNum int) ([]float64, error) {
	m, err := NewModel(p)
	if err != nil {
		return nil, err
	}
	resp, err := m.Response(stim, freqNum)
	if err != nil {
		return nil, err
	}
	return resp.Output, nil
}
