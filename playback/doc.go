// Package playback streams a selected time and frequency region of a sound
// as 16-bit little-endian PCM.
//
// A [Source] is armed from a control goroutine with a time range, a
// frequency range and an output [Format]. Band limiting is done up front
// with a zero-phase Butterworth filter, so the pull side ([Source.Produce],
// [Source.Read]) only scales, delays and quantizes samples. It never fails:
// anything outside the armed segment is silence.
//
// A [Registry] guards the single sampling rate shared by all sounds of a
// process, and a level.Window shared between sources reports the peak of
// the last 0.1 s of output.
package playback
