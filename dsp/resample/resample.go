package resample

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-audition/dsp/window"
)

var (
	// ErrInvalidRatio indicates an invalid up/down ratio.
	ErrInvalidRatio = errors.New("resample: invalid ratio")
	// ErrInvalidRate indicates an invalid input/output sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation and passband flatness.
	QualityBest
)

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	TapsPerPhase int
	CutoffScale  float64
	KaiserBeta   float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5}
	}
}

type config struct {
	quality Quality
	maxDen  int
}

// Option configures a Converter.
type Option func(*config)

// WithQuality selects a predefined anti-aliasing quality mode.
func WithQuality(q Quality) Option {
	return func(cfg *config) {
		cfg.quality = q
	}
}

// WithMaxDenominator caps denominator size for rate-ratio approximation.
func WithMaxDenominator(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxDen = n
		}
	}
}

// Converter resamples by the rational factor up/down.
type Converter struct {
	up, down int
	quality  Quality
	taps     []float64
	center   int
}

// NewRational creates a converter for ratio up/down.
func NewRational(up, down int, opts ...Option) (*Converter, error) {
	if up <= 0 || down <= 0 {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidRatio, up, down)
	}

	cfg := config{quality: QualityBalanced, maxDen: 4096}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g := gcd(up, down)
	up /= g
	down /= g

	taps, center := design(up, down, QualityProfile(cfg.quality))

	return &Converter{up: up, down: down, quality: cfg.quality, taps: taps, center: center}, nil
}

// NewForRates creates a converter by approximating outRate/inRate as a ratio.
func NewForRates(inRate, outRate float64, opts ...Option) (*Converter, error) {
	if !validRate(inRate) || !validRate(outRate) {
		return nil, fmt.Errorf("%w: %g -> %g Hz", ErrInvalidRate, inRate, outRate)
	}

	cfg := config{maxDen: 4096}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	up, down := approximateRatio(outRate/inRate, cfg.maxDen)

	return NewRational(up, down, opts...)
}

func validRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}

// Convert resamples input from inRate to outRate in one call. Equal rates
// return a copy of input.
func Convert(input []float64, inRate, outRate float64, opts ...Option) ([]float64, error) {
	c, err := NewForRates(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}
	return c.Process(input), nil
}

// design returns a Kaiser-windowed sinc of odd length, normalized to a DC
// gain of up, and its centre index.
func design(up, down int, p Profile) ([]float64, int) {
	half := p.TapsPerPhase / 2 * up
	n := 2*half + 1

	fc := 0.5 / float64(max(up, down)) * p.CutoffScale
	taps := window.Generate(window.TypeKaiser, n, window.WithAlpha(p.KaiserBeta))

	sum := 0.0
	for i := range taps {
		taps[i] *= 2 * fc * sinc(2*fc*float64(i-half))
		sum += taps[i]
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, half
}

// Process resamples input. The output has ceil(len(input)*up/down) samples.
func (c *Converter) Process(input []float64) []float64 {
	if len(input) == 0 {
		return nil
	}

	if c.up == 1 && c.down == 1 {
		out := make([]float64, len(input))
		copy(out, input)
		return out
	}

	nOut := c.OutputLen(len(input))
	out := make([]float64, nOut)

	for m := range out {
		// Position in the upsampled domain, shifted by the filter delay.
		j := m*c.down + c.center
		hi := min(j/c.up, len(input)-1)
		lo := max(ceilDiv(j-len(c.taps)+1, c.up), 0)

		var y float64
		for i := lo; i <= hi; i++ {
			y += c.taps[j-i*c.up] * input[i]
		}
		out[m] = y
	}

	return out
}

// OutputLen returns the number of samples Process produces for inputLen.
func (c *Converter) OutputLen(inputLen int) int {
	if inputLen <= 0 {
		return 0
	}
	return ceilDiv(inputLen*c.up, c.down)
}

// Ratio returns reduced up/down conversion factors.
func (c *Converter) Ratio() (up, down int) {
	return c.up, c.down
}

// Quality returns the configured quality mode.
func (c *Converter) Quality() Quality {
	return c.quality
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}
	return (a + b - 1) / b
}

func approximateRatio(v float64, maxDen int) (num, den int) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1, 1
	}

	p0, q0 := 1.0, 0.0
	p1, q1 := math.Floor(v), 1.0
	x := v

	for {
		frac := x - math.Floor(x)
		if frac < 1e-12 {
			break
		}

		x = 1 / frac
		a := math.Floor(x)

		p2, q2 := a*p1+p0, a*q1+q0
		if q2 > float64(maxDen) {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2
	}

	num = int(math.Round(p1))
	den = int(math.Round(q1))
	if num <= 0 || den <= 0 {
		return 1, 1
	}

	g := gcd(num, den)

	return num / g, den / g
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}
