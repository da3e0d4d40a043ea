package zerophase

import "errors"

var (
	// ErrFilterDesign marks a failure to obtain usable filter coefficients.
	ErrFilterDesign = errors.New("zerophase: filter design failed")
	// ErrFilterApply marks a failure while running the filter, such as
	// malformed coefficients or numerically unstable output.
	ErrFilterApply = errors.New("zerophase: filter application failed")
)
