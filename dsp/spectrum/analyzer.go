package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-audition/dsp/fft"
	"github.com/cwbudde/algo-audition/dsp/window"
)

// ErrFrameSize is returned when a frame does not match the analyzer size.
var ErrFrameSize = errors.New("spectrum: frame length does not match analyzer size")

// Result holds the one-sided spectrum of a frame: bins 0..N/2 inclusive.
type Result struct {
	Bins      []complex128
	Magnitude []float64
	DB        []float64
	Phase     []float64

	size int
}

// Freq returns the centre frequency in Hz of bin at sampleRate.
func (r Result) Freq(bin int, sampleRate float64) float64 {
	if r.size == 0 {
		return 0
	}
	return float64(bin) * sampleRate / float64(r.size)
}

// Size returns the transform size that produced r.
func (r Result) Size() int { return r.size }

// Analyzer frames, windows and transforms signal excerpts of a fixed size.
//
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	size    int
	win     window.Type
	coeffs  []float64
	gain    float64
	engine  *fft.Engine
	bins    []complex128
	framing []float64
}

// NewAnalyzer returns an analyzer for frames of size samples tapered by win.
// Magnitudes are normalized so a full-scale on-bin sinusoid reads 1.
func NewAnalyzer(size int, win window.Type) (*Analyzer, error) {
	engine, err := fft.New(size, fft.Forward)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	coeffs := window.Generate(win, size, window.WithPeriodic())
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		gain = 1
	}

	return &Analyzer{
		size:    size,
		win:     win,
		coeffs:  coeffs,
		gain:    gain,
		engine:  engine,
		framing: make([]float64, size),
	}, nil
}

// Size returns the frame size.
func (a *Analyzer) Size() int { return a.size }

// Window returns the window type applied to frames.
func (a *Analyzer) Window() window.Type { return a.win }

// Frame copies size samples centred on center out of samples, zero-padding
// past either edge. The returned slice is owned by the caller.
func (a *Analyzer) Frame(samples []float64, center int) []float64 {
	out := make([]float64, a.size)
	start := center - a.size/2
	for i := range out {
		idx := start + i
		if idx >= 0 && idx < len(samples) {
			out[i] = samples[idx]
		}
	}
	return out
}

// Analyze windows frame and returns its one-sided spectrum. frame is not
// modified.
func (a *Analyzer) Analyze(frame []float64) (Result, error) {
	if len(frame) != a.size {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrFrameSize, len(frame), a.size)
	}

	copy(a.framing, frame)
	if err := window.ApplyCoefficientsInPlace(a.framing, a.coeffs); err != nil {
		return Result{}, fmt.Errorf("spectrum: %w", err)
	}

	a.bins = a.engine.Execute(a.bins, a.framing)

	half := a.size/2 + 1
	bins := make([]complex128, half)
	copy(bins, a.bins[:half])

	mag := Magnitude(bins)
	norm := 2 / (float64(a.size) * a.gain)
	for i := range mag {
		mag[i] *= norm
	}
	mag[0] /= 2
	if a.size%2 == 0 && half > 1 {
		mag[half-1] /= 2
	}

	return Result{
		Bins:      bins,
		Magnitude: mag,
		DB:        MagnitudeDB(mag, 1, DefaultFloorDB),
		Phase:     Phase(bins),
		size:      a.size,
	}, nil
}
