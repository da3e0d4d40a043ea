package design

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSpec is returned for filter specifications that cannot be designed.
var ErrInvalidSpec = errors.New("design: invalid filter specification")

// Kind selects the filter response.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
)

func (k Kind) String() string {
	switch k {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec describes a Butterworth filter. Cutoff is normalized to the sampling
// rate (cutoffHz / sampleRate) and must lie strictly inside (0, 0.5).
type Spec struct {
	Order  int
	Cutoff float64
	Kind   Kind
}

// Validate reports why s cannot be designed, or nil.
func (s Spec) Validate() error {
	if s.Order <= 0 || s.Order%2 != 0 {
		return fmt.Errorf("%w: order must be a positive even integer, got %d", ErrInvalidSpec, s.Order)
	}
	if math.IsNaN(s.Cutoff) || s.Cutoff <= 0 || s.Cutoff >= 0.5 {
		return fmt.Errorf("%w: normalized cutoff must be in (0, 0.5), got %g", ErrInvalidSpec, s.Cutoff)
	}
	if s.Kind != Lowpass && s.Kind != Highpass {
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidSpec, s.Kind)
	}
	return nil
}

// Coefficients is a transfer function num(z^-1)/den(z^-1) with den[0] == 1.
type Coefficients struct {
	Numerator   []float64
	Denominator []float64
}

// Order returns the filter order implied by the denominator length.
func (c Coefficients) Order() int {
	if len(c.Denominator) == 0 {
		return 0
	}
	return len(c.Denominator) - 1
}
