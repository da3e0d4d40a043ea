// Package design provides Butterworth low-pass and high-pass coefficient
// design for zero-phase auditioning filters.
//
// Designs are built as cascades of second-order sections using the bilinear
// transform with frequency pre-warping, so the -3 dB point of the digital
// filter sits exactly at the requested cutoff. [Butterworth] expands the
// cascade into a single numerator/denominator pair; [ButterworthSections]
// returns the cascade itself for numerically robust high-order filtering.
package design
