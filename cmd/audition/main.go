// Command audition plays, renders and inspects excerpts of WAV recordings,
// optionally band-limited by a zero-phase Butterworth filter.
//
// Usage:
//
//	audition play [flags] FILE
//	audition render [flags] FILE OUT.wav
//	audition spectrum [flags] FILE
//	audition info FILE...
//	audition windows
//	audition config
//
// Examples:
//
//	audition play --start 1.2 --stop 2.5 speech.wav
//	audition play --fmin 300 --fmax 3400 --avoid-clicks speech.wav
//	audition render --fmax 1000 --gain-db -6 in.wav out.wav
//	audition spectrum --at 0.5 --size 4096 --window blackman-harris in.wav
package main

func main() {
	Execute()
}
