// Package spectrum turns time-domain frames into one-sided magnitude, power,
// dB and phase views.
//
// Transforms are delegated to [fft.Engine]; this package handles framing,
// windowing, and the per-bin conversions.
package spectrum
