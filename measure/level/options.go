package level

import "github.com/cwbudde/algo-audition/dsp/core"

// DefaultDuration is the default window length in seconds.
const DefaultDuration = 0.1

// DefaultFloorDB is the level reported by [Window.PeakDB] for silence.
const DefaultFloorDB = -60.0

// Config defines configuration for a level window.
type Config struct {
	core.ProcessorConfig
	Duration float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Duration:        DefaultDuration,
	}
}

// WithSampleRate sets the rate used to convert the entry count into time.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithDuration sets the window length in seconds.
func WithDuration(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 {
			cfg.Duration = seconds
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
