// Package biquad runs cascades of second-order IIR sections.
//
// A [Section] filters in transposed direct form II and can be primed to the
// steady state of a constant input. A [Chain] cascades sections, reports the
// cascade's frequency response, and [Expand] multiplies it out into a single
// transfer function.
//
// Butterworth coefficient design lives in dsp/filter/design.
package biquad
