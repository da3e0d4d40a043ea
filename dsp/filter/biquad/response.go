package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(e^jw) at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	num := complex(c.B0, 0) + z1*(complex(c.B1, 0)+z1*complex(c.B2, 0))
	den := 1 + z1*(complex(c.A1, 0)+z1*complex(c.A2, 0))
	return num / den
}

// Response is the product of the section responses at freqHz.
func (ch *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range ch.stages {
		h *= ch.stages[i].c.Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns 20*log10|H| of the cascade at freqHz.
func (ch *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(ch.Response(freqHz, sampleRate)))
}
