package playback

import (
	"math"

	"github.com/cwbudde/algo-audition/dsp/window"
)

// DefaultFadeHalfDuration is the taper length in seconds at each end of the
// played segment.
const DefaultFadeHalfDuration = 0.05

// Fade configures the click-avoidance taper at both ends of the played
// segment.
type Fade struct {
	Enabled      bool
	HalfDuration float64
}

// DefaultFade returns a disabled fade with the default half duration.
func DefaultFade() Fade {
	return Fade{HalfDuration: DefaultFadeHalfDuration}
}

// Ramp returns the rising taper for a segment of segLen samples at
// sampleRate, or nil when the fade is disabled. Its length is
// round(HalfDuration*sampleRate), at most segLen/2.
func (f Fade) Ramp(segLen int, sampleRate float64) []float64 {
	if !f.Enabled || f.HalfDuration <= 0 || segLen <= 0 {
		return nil
	}

	n := int(math.Round(f.HalfDuration * sampleRate))
	n = min(n, segLen/2)

	return window.HalfHann(n)
}

// gainAt returns the taper gain for offset samples into a segment of segLen.
func gainAt(ramp []float64, offset, segLen int) float64 {
	n := len(ramp)
	if n == 0 {
		return 1
	}
	if offset < n {
		return ramp[offset]
	}
	if tail := segLen - 1 - offset; tail < n {
		return ramp[tail]
	}
	return 1
}
