package playback

import "errors"

var (
	// ErrIncompatibleSamplingRate is returned when a sound's rate differs
	// from the rate already registered.
	ErrIncompatibleSamplingRate = errors.New("playback: incompatible sampling rate")
	// ErrInvalidSamplingRate is returned for non-positive or non-finite rates.
	ErrInvalidSamplingRate = errors.New("playback: invalid sampling rate")
	// ErrUnsupportedFormat is returned for output formats other than 16-bit PCM.
	ErrUnsupportedFormat = errors.New("playback: unsupported output format")
	// ErrEmptyBuffer is returned when a source is given no samples.
	ErrEmptyBuffer = errors.New("playback: empty sample buffer")
)
