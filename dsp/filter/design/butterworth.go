package design

import (
	"math"

	"github.com/cwbudde/algo-audition/dsp/filter/biquad"
)

// Butterworth designs s and returns the expanded transfer function.
func Butterworth(s Spec) (Coefficients, error) {
	sections, err := ButterworthSections(s)
	if err != nil {
		return Coefficients{}, err
	}

	num, den := biquad.Expand(sections)

	return Coefficients{Numerator: num, Denominator: den}, nil
}

// ButterworthSections designs s as Order/2 cascaded biquads, ordered from the
// lowest-Q section to the highest.
func ButterworthSections(s Spec) ([]biquad.Coefficients, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, s.Order/2)
	for i := s.Order/2 - 1; i >= 0; i-- {
		q := butterworthQ(s.Order, i)
		if s.Kind == Lowpass {
			sections = append(sections, lowpassSection(s.Cutoff, q))
		} else {
			sections = append(sections, highpassSection(s.Cutoff, q))
		}
	}

	return sections, nil
}

// butterworthQ returns the quality factor of the index-th pole pair.
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

// lowpassSection is the pre-warped bilinear transform of
// 1 / (s^2 + s/q + 1) at normalized cutoff fc.
func lowpassSection(fc, q float64) biquad.Coefficients {
	w0 := 2 * math.Pi * fc
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := 1 - cw
	return normalize(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// highpassSection is the pre-warped bilinear transform of
// s^2 / (s^2 + s/q + 1) at normalized cutoff fc.
func highpassSection(fc, q float64) biquad.Coefficients {
	w0 := 2 * math.Pi * fc
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := -(1 + cw)
	return normalize(-b1/2, b1, -b1/2, 1+alpha, -2*cw, 1-alpha)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
