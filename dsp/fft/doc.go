// Package fft wraps a fixed-size discrete Fourier transform over real frames.
//
// An [Engine] owns a transform plan for one frame size and one [Direction].
// Frames are read as zero-imaginary complex input and produce N complex bins
// in standard DFT order: bin 0 is DC, bin N/2 is Nyquist for even N, and the
// upper half mirrors the lower half as complex conjugates for real input.
//
// Plans come from algo-fft. Sizes the planner rejects are served by a direct
// O(N²) DFT so that every N > 0 is usable.
package fft
