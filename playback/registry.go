package playback

import (
	"fmt"
	"math"
	"sync"
)

// Registry holds the one sampling rate every loaded sound must share. The
// zero value is ready to use and has no rate established.
type Registry struct {
	mu   sync.Mutex
	rate float64
}

// Register establishes rate on first use and afterwards accepts only the same
// rate. Registering 0 is a no-op.
func (r *Registry) Register(rate float64) error {
	if rate == 0 {
		return nil
	}
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %g Hz", ErrInvalidSamplingRate, rate)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.rate {
	case 0:
		r.rate = rate
		return nil
	case rate:
		return nil
	default:
		return fmt.Errorf("%w: got %g Hz, registered %g Hz", ErrIncompatibleSamplingRate, rate, r.rate)
	}
}

// Rate returns the established rate, or 0.
func (r *Registry) Rate() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rate
}

// Reset forgets the established rate.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.rate = 0
	r.mu.Unlock()
}
