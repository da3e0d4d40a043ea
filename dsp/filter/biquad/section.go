package biquad

// Coefficients holds one second-order section with a0 normalized to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Numerator returns [B0, B1, B2].
func (c Coefficients) Numerator() []float64 { return []float64{c.B0, c.B1, c.B2} }

// Denominator returns [1, A1, A2].
func (c Coefficients) Denominator() []float64 { return []float64{1, c.A1, c.A2} }

// DCGain returns H(1), the gain for a constant input.
func (c Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// Section runs Coefficients in transposed direct form II.
type Section struct {
	c Coefficients
	z [2]float64
}

// NewSection returns a Section at rest.
func NewSection(c Coefficients) *Section {
	return &Section{c: c}
}

// Coefficients returns the section's coefficients.
func (s *Section) Coefficients() Coefficients { return s.c }

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	c := &s.c
	y := c.B0*x + s.z[0]
	s.z[0] = c.B1*x - c.A1*y + s.z[1]
	s.z[1] = c.B2*x - c.A2*y
	return y
}

// Process filters buf in place.
func (s *Section) Process(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Prime sets the state reached after a constant input level has run
// for a long time, so that a signal starting at level has no transient.
func (s *Section) Prime(level float64) {
	g := s.c.DCGain()
	s.z[0] = level * (g - s.c.B0)
	s.z[1] = level * (s.c.B2 - s.c.A2*g)
}

// Reset clears the state.
func (s *Section) Reset() { s.z = [2]float64{} }

// State returns the two delay elements.
func (s *Section) State() [2]float64 { return s.z }
