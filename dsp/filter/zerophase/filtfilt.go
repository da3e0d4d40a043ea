package zerophase

import (
	"fmt"

	"github.com/cwbudde/algo-audition/dsp/core"
	"github.com/cwbudde/algo-audition/dsp/filter/biquad"
	"github.com/cwbudde/algo-audition/dsp/filter/design"
)

// FiltFilt returns signal filtered forward and backward by c. The result has
// the same length as signal; signal itself is not modified.
func FiltFilt(signal []float64, c design.Coefficients) ([]float64, error) {
	b, a, err := normalized(c.Numerator, c.Denominator)
	if err != nil {
		return nil, err
	}

	if len(signal) == 0 {
		return []float64{}, nil
	}

	n := max(len(a), len(b))
	ext, pad := oddExtend(signal, 3*(n-1))

	zi := steadyState(b, a)
	run := func(buf []float64) {
		state := scaled(zi, buf[0])
		lfilter(b, a, buf, state)
	}

	run(ext)
	core.Reverse(ext)
	run(ext)
	core.Reverse(ext)

	out := ext[pad : pad+len(signal)]
	if !core.AllFinite(out) {
		return nil, fmt.Errorf("%w: output is not finite (order %d)", ErrFilterApply, n-1)
	}

	return out, nil
}

// FiltFiltSections is FiltFilt over a cascade of second-order sections.
func FiltFiltSections(signal []float64, sections []biquad.Coefficients) ([]float64, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: empty section cascade", ErrFilterApply)
	}
	if len(signal) == 0 {
		return []float64{}, nil
	}

	chain := biquad.NewChain(sections)
	ext, pad := oddExtend(signal, 3*(2*len(sections)))

	run := func(buf []float64) {
		chain.Prime(buf[0])
		chain.Process(buf)
	}

	run(ext)
	core.Reverse(ext)
	run(ext)
	core.Reverse(ext)

	out := ext[pad : pad+len(signal)]
	if !core.AllFinite(out) {
		return nil, fmt.Errorf("%w: output is not finite (%d sections)", ErrFilterApply, len(sections))
	}

	return out, nil
}

// normalized pads b and a to equal length and divides by a[0].
func normalized(num, den []float64) (b, a []float64, err error) {
	if len(num) == 0 || len(den) == 0 {
		return nil, nil, fmt.Errorf("%w: empty coefficients", ErrFilterApply)
	}
	if den[0] == 0 {
		return nil, nil, fmt.Errorf("%w: leading denominator coefficient is zero", ErrFilterApply)
	}
	if !core.AllFinite(num) || !core.AllFinite(den) {
		return nil, nil, fmt.Errorf("%w: coefficients are not finite", ErrFilterApply)
	}

	n := max(len(num), len(den))
	b = make([]float64, n)
	a = make([]float64, n)
	for i, v := range num {
		b[i] = v / den[0]
	}
	for i, v := range den {
		a[i] = v / den[0]
	}

	return b, a, nil
}

// oddExtend returns x with pad samples of odd reflection on both sides.
// pad is reduced to len(x)-1 for short signals.
func oddExtend(x []float64, pad int) ([]float64, int) {
	pad = core.ClampInt(pad, 0, len(x)-1)

	out := make([]float64, len(x)+2*pad)
	first, last := x[0], x[len(x)-1]
	for i := 0; i < pad; i++ {
		out[i] = 2*first - x[pad-i]
		out[pad+len(x)+i] = 2*last - x[len(x)-2-i]
	}
	copy(out[pad:], x)

	return out, pad
}

// lfilter runs a Direct Form II transposed IIR filter over buf in place.
// b and a have equal length with a[0] == 1; z holds len(b)-1 states.
func lfilter(b, a, buf, z []float64) {
	n := len(b)
	if n == 1 {
		for i, x := range buf {
			buf[i] = b[0] * x
		}
		return
	}

	for i, x := range buf {
		y := b[0]*x + z[0]
		for k := 1; k < n-1; k++ {
			z[k-1] = b[k]*x - a[k]*y + z[k]
		}
		z[n-2] = b[n-1]*x - a[n-1]*y
		buf[i] = y
	}
}

// steadyState returns the lfilter state reached after a long unit step, so
// that filtering a constant signal starting from level*zi has no transient.
func steadyState(b, a []float64) []float64 {
	n := len(b)
	if n < 2 {
		return nil
	}

	zi := make([]float64, n-1)

	asum := 1.0
	csum := 0.0
	for k := 1; k < n; k++ {
		asum += a[k]
		csum += b[k] - a[k]*b[0]
	}
	zi[0] = csum / asum

	asum, csum = 1, 0
	for k := 1; k < n-1; k++ {
		asum += a[k]
		csum += b[k] - a[k]*b[0]
		zi[k] = asum*zi[0] - csum
	}

	return zi
}

func scaled(zi []float64, level float64) []float64 {
	out := make([]float64, len(zi))
	for i, v := range zi {
		out[i] = v * level
	}
	return out
}
