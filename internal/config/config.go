// Package config loads audition settings from flags, environment and a YAML
// file through viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-audition/dsp/window"
	"github.com/cwbudde/algo-audition/playback"
)

// EnvPrefix prefixes environment variables, e.g. AUDITION_LOG_LEVEL.
const EnvPrefix = "AUDITION"

// FileName is the config file base name searched for in the config paths.
const FileName = "audition"

// Config represents the application configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Playback PlaybackConfig `mapstructure:"playback" yaml:"playback"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
}

// LogConfig contains logger settings
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// PlaybackConfig contains the auditioning settings
type PlaybackConfig struct {
	ButterworthOrder        int     `mapstructure:"butterworth_order" yaml:"butterworth_order"`
	AvoidClicks             bool    `mapstructure:"avoid_clicks" yaml:"avoid_clicks"`
	AvoidClicksHalfDuration float64 `mapstructure:"avoid_clicks_half_duration" yaml:"avoid_clicks_half_duration"`
	CompensateEnergy        bool    `mapstructure:"compensate_energy" yaml:"compensate_energy"`
	OutputSampleRate        int     `mapstructure:"output_sample_rate" yaml:"output_sample_rate"`
	Channels                int     `mapstructure:"channels" yaml:"channels"`
}

// AnalysisConfig contains spectrum view settings
type AnalysisConfig struct {
	FFTSize int    `mapstructure:"fft_size" yaml:"fft_size"`
	Window  string `mapstructure:"window" yaml:"window"`
}

// Default returns a Config with all default values set
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Playback: PlaybackConfig{
			ButterworthOrder:        playback.DefaultFilterOrder,
			AvoidClicksHalfDuration: playback.DefaultFadeHalfDuration,
			Channels:                1,
		},
		Analysis: AnalysisConfig{
			FFTSize: 2048,
			Window:  window.TypeHann.String(),
		},
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)

	v.SetDefault("playback.butterworth_order", d.Playback.ButterworthOrder)
	v.SetDefault("playback.avoid_clicks", d.Playback.AvoidClicks)
	v.SetDefault("playback.avoid_clicks_half_duration", d.Playback.AvoidClicksHalfDuration)
	v.SetDefault("playback.compensate_energy", d.Playback.CompensateEnergy)
	v.SetDefault("playback.output_sample_rate", d.Playback.OutputSampleRate)
	v.SetDefault("playback.channels", d.Playback.Channels)

	v.SetDefault("analysis.fft_size", d.Analysis.FFTSize)
	v.SetDefault("analysis.window", d.Analysis.Window)
}

// Setup prepares v to read configFile, or to search the default locations
// when configFile is empty, and to honour AUDITION_* variables.
func Setup(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
		v.AddConfigPath("./configs")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
}

// Read loads the config file if one is found. A missing file in the search
// paths is not an error; an explicitly named file that cannot be read is.
func Read(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func Validate(cfg *Config) error {
	var err error

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level))
	}

	p := cfg.Playback
	if p.ButterworthOrder <= 0 || p.ButterworthOrder%2 != 0 {
		err = multierr.Append(err, fmt.Errorf("playback.butterworth_order must be a positive even number, got %d", p.ButterworthOrder))
	}
	if p.AvoidClicksHalfDuration < 0 {
		err = multierr.Append(err, fmt.Errorf("playback.avoid_clicks_half_duration cannot be negative, got %g", p.AvoidClicksHalfDuration))
	}
	if p.OutputSampleRate < 0 {
		err = multierr.Append(err, fmt.Errorf("playback.output_sample_rate cannot be negative, got %d", p.OutputSampleRate))
	}
	if p.Channels < 1 {
		err = multierr.Append(err, fmt.Errorf("playback.channels must be positive, got %d", p.Channels))
	}

	if cfg.Analysis.FFTSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("analysis.fft_size must be positive, got %d", cfg.Analysis.FFTSize))
	}
	if _, werr := window.ParseType(cfg.Analysis.Window); werr != nil {
		err = multierr.Append(err, fmt.Errorf("analysis.window: %w", werr))
	}

	return err
}

// WriteYAML encodes cfg as YAML.
func WriteYAML(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return enc.Close()
}

// Fade returns the click-avoidance settings.
func (p PlaybackConfig) Fade() playback.Fade {
	return playback.Fade{
		Enabled:      p.AvoidClicks,
		HalfDuration: p.AvoidClicksHalfDuration,
	}
}

// SourceOptions returns the playback options derived from p.
func (p PlaybackConfig) SourceOptions() []playback.Option {
	return []playback.Option{
		playback.WithFilterOrder(p.ButterworthOrder),
		playback.WithFade(p.Fade()),
		playback.WithEnergyCompensation(p.CompensateEnergy),
	}
}

// Format returns the output format for a sound at soundRate.
func (p PlaybackConfig) Format(soundRate float64) playback.Format {
	rate := p.OutputSampleRate
	if rate == 0 {
		rate = int(soundRate + 0.5)
	}

	return playback.Format{SampleRate: rate, Channels: p.Channels, BitDepth: 16}
}
