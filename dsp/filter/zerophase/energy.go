package zerophase

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// MatchEnergy scales filtered in place so that its energy equals the energy
// of reference. It returns the applied gain; a silent filtered buffer is left
// unchanged with gain 1.
func MatchEnergy(filtered, reference []float64) float64 {
	ef := floats.Dot(filtered, filtered)
	if ef == 0 {
		return 1
	}

	gain := math.Sqrt(floats.Dot(reference, reference) / ef)
	vecmath.ScaleBlock(filtered, filtered, gain)

	return gain
}
