package ganglion

import "errors"

var (
	// ErrInvalidFrequency indicates a frequency index outside FreqList or Amp,
	// or a selected frequency that is not a positive finite number.
	ErrInvalidFrequency = errors.New("ganglion: invalid stimulation frequency")

	// ErrInvalidSampling indicates a non-positive sampling period or a time vector
	// that is empty or not strictly increasing.
	ErrInvalidSampling = errors.New("ganglion: invalid sampling")

	// ErrLengthMismatch indicates FreqList and Amp of different lengths.
	ErrLengthMismatch = errors.New("ganglion: FreqList and Amp lengths differ")

	// ErrInvalidKernel indicates an empty kernel or one with non-finite samples.
	ErrInvalidKernel = errors.New("ganglion: invalid kernel")

	// ErrInvalidParams indicates a model parameter outside its valid range.
	ErrInvalidParams = errors.New("ganglion: invalid parameters")
)
