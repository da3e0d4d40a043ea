package biquad

// Expand multiplies a cascade out into one transfer function
// num(z^-1)/den(z^-1), with den[0] == 1. First-order sections (B2 == A2 == 0)
// still contribute three taps; trailing zero taps are trimmed.
func Expand(sections []Coefficients) (num, den []float64) {
	num = []float64{1}
	den = []float64{1}

	for _, s := range sections {
		num = polyMul(num, s.Numerator())
		den = polyMul(den, s.Denominator())
	}

	return trimTrailingZeros(num), trimTrailingZeros(den)
}

func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}
	return out
}

func trimTrailingZeros(p []float64) []float64 {
	n := len(p)
	for n > 1 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}
