package biquad

// Chain is a cascade of sections run in order.
type Chain struct {
	stages []Section
}

// NewChain builds a cascade at rest, one Section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	stages := make([]Section, len(coeffs))
	for i, c := range coeffs {
		stages[i].c = c
	}
	return &Chain{stages: stages}
}

// Len returns the number of sections.
func (ch *Chain) Len() int { return len(ch.stages) }

// Stage returns the i-th section.
func (ch *Chain) Stage(i int) *Section { return &ch.stages[i] }

// Process filters buf in place through every section.
func (ch *Chain) Process(buf []float64) {
	for i := range ch.stages {
		ch.stages[i].Process(buf)
	}
}

// Prime puts every section in the steady state for a constant input level.
// Each section sees level scaled by the DC gain of the sections before it.
func (ch *Chain) Prime(level float64) {
	for i := range ch.stages {
		ch.stages[i].Prime(level)
		level *= ch.stages[i].c.DCGain()
	}
}

// Reset clears every section.
func (ch *Chain) Reset() {
	for i := range ch.stages {
		ch.stages[i].Reset()
	}
}
