package core

import "testing"

func TestWithSampleRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{name: "valid", rate: 16000, want: 16000},
		{name: "zero ignored", rate: 0, want: 44100},
		{name: "negative ignored", rate: -8000, want: 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProcessorConfig()
			WithSampleRate(tt.rate)(&cfg)
			if cfg.SampleRate != tt.want {
				t.Fatalf("sample rate = %v, want %v", cfg.SampleRate, tt.want)
			}
		})
	}
}
