// Package sound loads WAV files into mono sample buffers and keeps every
// loaded sound on one sampling rate.
package sound

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-audition/dsp/resample"
)

// ErrInvalidFile is returned for input that is not a PCM WAV file.
var ErrInvalidFile = errors.New("sound: invalid WAV file")

// Sound is a decoded mono signal with samples in [-1, 1].
type Sound struct {
	Name       string
	Samples    []float64
	SampleRate float64
	// Channels and BitDepth describe the source file; Samples is always mono.
	Channels int
	BitDepth int
}

// Load decodes the WAV file at path.
func Load(path string) (*Sound, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = filepath.Base(path)

	return s, nil
}

// Decode reads a WAV stream. Multichannel files are mixed down to mono by
// averaging the channels.
func Decode(r io.ReadSeeker) (*Sound, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not read PCM buffer: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidFile, bitDepth)
	}

	channels := buf.Format.NumChannels
	if channels < 1 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidFile, channels, buf.Format.SampleRate)
	}

	return &Sound{
		Samples:    mixdown(buf.Data, channels, bitDepth),
		SampleRate: float64(buf.Format.SampleRate),
		Channels:   channels,
		BitDepth:   bitDepth,
	}, nil
}

func mixdown(data []int, channels, bitDepth int) []float64 {
	scale := 1 / (math.Pow(2, float64(bitDepth-1)) * float64(channels))

	frames := len(data) / channels
	out := make([]float64, frames)
	for i := range out {
		sum := 0
		for ch := range channels {
			sum += data[i*channels+ch]
		}
		out[i] = float64(sum) * scale
	}

	return out
}

// Duration returns the length in seconds.
func (s *Sound) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}

// MaxAmplitude returns the largest absolute sample value.
func (s *Sound) MaxAmplitude() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	return math.Max(floats.Max(s.Samples), -floats.Min(s.Samples))
}

// Resampled returns a copy of s converted to rate. A sound already at rate is
// returned as is.
func (s *Sound) Resampled(rate float64, opts ...resample.Option) (*Sound, error) {
	if rate == s.SampleRate {
		return s, nil
	}

	samples, err := resample.Convert(s.Samples, s.SampleRate, rate, opts...)
	if err != nil {
		return nil, fmt.Errorf("resample %s: %w", s.Name, err)
	}

	out := *s
	out.Samples = samples
	out.SampleRate = rate

	return &out, nil
}

// WriteWAV encodes 16-bit little-endian interleaved PCM as a WAV stream.
func WriteWAV(w io.WriteSeeker, pcm []byte, sampleRate, channels int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, channels, 1)

	data := make([]int, len(pcm)/2)
	for i := range data {
		data[i] = int(int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("data writing error: %w", err)
	}

	return enc.Close()
}
