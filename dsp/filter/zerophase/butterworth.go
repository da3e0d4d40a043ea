package zerophase

import (
	"fmt"

	"github.com/cwbudde/algo-audition/dsp/filter/design"
)

// Butterworth designs spec as a biquad cascade and runs it forward and
// backward over signal. Design failures wrap ErrFilterDesign; failures while
// filtering wrap ErrFilterApply.
func Butterworth(signal []float64, spec design.Spec) ([]float64, error) {
	sections, err := design.ButterworthSections(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFilterDesign, spec.Kind, err)
	}

	return FiltFiltSections(signal, sections)
}
