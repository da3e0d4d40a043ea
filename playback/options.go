package playback

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/measure/level"
)

// DefaultFilterOrder is the Butterworth order used for band selection.
const DefaultFilterOrder = 4

type options struct {
	meter            *level.Window
	logger           *zap.Logger
	filterOrder      int
	fade             Fade
	compensateEnergy bool
	amplitudeScale   float64
	polarityInverted bool
	delay            int
}

func defaultOptions() options {
	return options{
		logger:         zap.NewNop(),
		filterOrder:    DefaultFilterOrder,
		fade:           DefaultFade(),
		amplitudeScale: 1,
	}
}

// Option configures a Source.
type Option func(*options)

// WithMeter shares meter with the source. Without it the source creates its
// own 0.1 s window.
func WithMeter(meter *level.Window) Option {
	return func(o *options) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// WithLogger sets the logger used for filter fallbacks.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithFilterOrder sets the Butterworth order. Odd or non-positive orders are
// ignored.
func WithFilterOrder(order int) Option {
	return func(o *options) {
		if order > 0 && order%2 == 0 {
			o.filterOrder = order
		}
	}
}

// WithFade configures the click-avoidance taper.
func WithFade(f Fade) Option {
	return func(o *options) {
		o.fade = f
	}
}

// WithEnergyCompensation rescales filtered audio to the energy of the
// unfiltered sound.
func WithEnergyCompensation(enabled bool) Option {
	return func(o *options) {
		o.compensateEnergy = enabled
	}
}

// WithAmplitudeScale sets the linear output gain.
func WithAmplitudeScale(scale float64) Option {
	return func(o *options) {
		o.amplitudeScale = scale
	}
}

// WithPolarityInverted flips the output sign.
func WithPolarityInverted(inverted bool) Option {
	return func(o *options) {
		o.polarityInverted = inverted
	}
}

// WithDelay shifts the sound later by samples slots; negative values start
// playback earlier in the buffer.
func WithDelay(samples int) Option {
	return func(o *options) {
		o.delay = samples
	}
}
