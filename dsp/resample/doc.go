// Package resample converts whole signals between sampling rates with a
// windowed-sinc polyphase filter.
//
// The conversion is offline and delay compensated: output sample m sits at
// the same instant as input time m*inRate/outRate, so time ranges keep their
// meaning across rates.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
