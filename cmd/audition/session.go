package main

import (
	"fmt"
	"math"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/dsp/core"
	"github.com/cwbudde/algo-audition/internal/config"
	"github.com/cwbudde/algo-audition/internal/sound"
	"github.com/cwbudde/algo-audition/playback"
)

// excerpt holds the per-invocation selection shared by play and render.
type excerpt struct {
	start  float64
	stop   float64
	fmin   float64
	fmax   float64
	gainDB float64
	delay  int
	invert bool
}

func (e *excerpt) register(fs *pflag.FlagSet) {
	fs.Float64Var(&e.start, "start", 0, "excerpt start in seconds")
	fs.Float64Var(&e.stop, "stop", 0, "excerpt stop in seconds (0 with --start 0 plays everything)")
	fs.Float64Var(&e.fmin, "fmin", 0, "lower band edge in Hz (0 disables the high-pass)")
	fs.Float64Var(&e.fmax, "fmax", 0, "upper band edge in Hz (0 or Nyquist disables the low-pass)")
	fs.Float64Var(&e.gainDB, "gain-db", 0, "output gain in dB")
	fs.IntVar(&e.delay, "delay", 0, "delay in samples (negative skips ahead)")
	fs.BoolVar(&e.invert, "invert", false, "invert polarity")
}

func (e *excerpt) timeRange() playback.TimeRange {
	return playback.TimeRange{Start: e.start, Stop: e.stop}
}

// frequencyRange maps an unset upper edge to "no low-pass".
func (e *excerpt) frequencyRange() playback.FrequencyRange {
	high := e.fmax
	if high <= 0 {
		high = math.Inf(1)
	}
	return playback.FrequencyRange{Low: e.fmin, High: high}
}

// session is one armed source and the sound it plays.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	lib    *sound.Library
	path   string
	sel    *excerpt

	src    *playback.Source
	format playback.Format
	plan   playback.Plan
}

func newSession(cfg *config.Config, logger *zap.Logger, path string, sel *excerpt) (*session, error) {
	s := &session{
		cfg:    cfg,
		logger: logger,
		lib:    sound.NewLibrary(&playback.Registry{}, logger),
		path:   path,
		sel:    sel,
	}

	snd, err := s.load(s.lib.Add)
	if err != nil {
		return nil, err
	}

	opts := append(cfg.Playback.SourceOptions(),
		playback.WithLogger(logger),
		playback.WithAmplitudeScale(core.DBToLinear(sel.gainDB)),
		playback.WithPolarityInverted(sel.invert),
		playback.WithDelay(sel.delay),
	)

	s.src, err = playback.NewSource(snd.Samples, snd.SampleRate, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.arm(); err != nil {
		return nil, err
	}

	return s, nil
}

// load decodes the file through add and converts it to the output rate.
func (s *session) load(add func(string) (*sound.Sound, error)) (*sound.Sound, error) {
	snd, err := add(s.path)
	if err != nil {
		return nil, err
	}

	s.format = s.cfg.Playback.Format(snd.SampleRate)
	if rate := float64(s.format.SampleRate); rate != snd.SampleRate {
		s.logger.Info("resampling",
			zap.String("file", snd.Name),
			zap.Float64("from_hz", snd.SampleRate),
			zap.Float64("to_hz", rate),
		)
		if snd, err = snd.Resampled(rate); err != nil {
			return nil, err
		}
	}

	return snd, nil
}

func (s *session) arm() error {
	plan, err := s.src.Arm(s.sel.timeRange(), s.sel.frequencyRange(), s.format)
	if err != nil {
		return fmt.Errorf("arm %s: %w", s.path, err)
	}
	if plan.FilterErr != nil {
		s.logger.Warn("playing unfiltered", zap.Error(plan.FilterErr))
	}

	s.plan = plan

	return nil
}

// reload decodes the file again and re-arms with the same selection.
func (s *session) reload() error {
	snd, err := s.load(s.lib.Reload)
	if err != nil {
		return err
	}

	if err := s.src.Load(snd.Samples, snd.SampleRate); err != nil {
		return err
	}

	return s.arm()
}

// render drains the armed source into PCM, blockFrames at a time.
func render(src *playback.Source, blockFrames int) []byte {
	var out []byte
	for !src.Finished() {
		out = append(out, src.Produce(blockFrames)...)
	}
	return out
}
