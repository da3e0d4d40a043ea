// Package zerophase applies IIR filters forward and backward over a whole
// buffer so that the phase responses cancel.
//
// The effective magnitude response is the square of the designed filter's
// response, and the full signal must be in memory. Signal edges are extended
// by odd reflection and the filter state is started in its step-response
// steady state, which keeps edge transients small.
package zerophase
