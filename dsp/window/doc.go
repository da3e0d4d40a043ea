// Package window generates tapering windows for spectral analysis and
// fade envelopes.
package window
