package playback

import "fmt"

// BytesPerSample is the size of one 16-bit PCM sample.
const BytesPerSample = 2

// Format describes the PCM stream expected by the audio sink.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// MonoFormat returns a 16-bit mono format at sampleRate.
func MonoFormat(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: 1, BitDepth: 16}
}

// Validate reports whether f can be produced. Only 16-bit samples are
// supported. With more than one channel the mono signal is copied into every
// channel.
func (f Format) Validate() error {
	if f.BitDepth != 16 {
		return fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, f.BitDepth)
	}
	if f.Channels < 1 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	if f.SampleRate < 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, f.SampleRate)
	}
	return nil
}

// FrameSize returns the number of bytes per frame.
func (f Format) FrameSize() int {
	return f.Channels * BytesPerSample
}
