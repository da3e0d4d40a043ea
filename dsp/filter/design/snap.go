package design

// SnapMarginHz is the distance from 0 Hz and from Nyquist within which a
// cutoff is moved onto the boundary.
const SnapMarginHz = 10.0

// SnapCutoff moves freqHz to 0 when it is below SnapMarginHz and to Nyquist
// when it is above Nyquist - SnapMarginHz. Designs with cutoffs that close to
// the edges are not numerically stable.
func SnapCutoff(freqHz, sampleRate float64) float64 {
	nyquist := sampleRate / 2
	if freqHz < SnapMarginHz {
		return 0
	}
	if freqHz > nyquist-SnapMarginHz {
		return nyquist
	}
	return freqHz
}

// Band is a frequency selection in Hz after snapping.
type Band struct {
	Low, High float64
}

// PlanBand orders and snaps a frequency selection and decides which filters
// apply. High-pass applies when the low edge is strictly inside (0, Nyquist),
// low-pass when the high edge is. Neither applies unless Low < High.
func PlanBand(low, high, sampleRate float64) (b Band, doLowpass, doHighpass bool) {
	if low > high {
		low, high = high, low
	}

	b = Band{Low: SnapCutoff(low, sampleRate), High: SnapCutoff(high, sampleRate)}
	if b.Low >= b.High {
		return b, false, false
	}

	nyquist := sampleRate / 2
	doLowpass = b.High > 0 && b.High < nyquist
	doHighpass = b.Low > 0 && b.Low < nyquist

	return b, doLowpass, doHighpass
}
