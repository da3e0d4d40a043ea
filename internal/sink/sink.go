// Package sink drives a playback stream into an audio output device.
package sink

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 10 * time.Millisecond
	DefaultTail         = 100 * time.Millisecond
)

// ErrNoDevice is returned when a Sink has no device to play on.
var ErrNoDevice = errors.New("sink: no output device")

// Player is a started or stopped output stream on a device.
type Player interface {
	Play()
	IsPlaying() bool
	Close() error
}

// Device opens players that pull PCM from a reader.
type Device interface {
	NewPlayer(r io.Reader) Player
}

// Stream is a PCM producer that knows when it has nothing left to play.
type Stream interface {
	io.Reader
	Finished() bool
	Stop()
}

// Sink plays streams on a device, one at a time.
type Sink struct {
	dev    Device
	logger *zap.Logger
	poll   time.Duration
	tail   time.Duration
}

// Option configures a Sink.
type Option func(*Sink)

// WithLogger sets the logger used for playback events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPollInterval sets how often the stream is checked for completion.
func WithPollInterval(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.poll = d
		}
	}
}

// WithTail sets how long the player keeps running after the stream
// finishes, so buffered audio reaches the speaker.
func WithTail(d time.Duration) Option {
	return func(s *Sink) {
		if d >= 0 {
			s.tail = d
		}
	}
}

// New returns a Sink on dev.
func New(dev Device, opts ...Option) *Sink {
	s := &Sink{
		dev:    dev,
		logger: zap.NewNop(),
		poll:   DefaultPollInterval,
		tail:   DefaultTail,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Play blocks until stream finishes or ctx is done. On cancellation the
// stream is stopped and ctx.Err is returned.
func (s *Sink) Play(ctx context.Context, stream Stream) error {
	if s.dev == nil {
		return ErrNoDevice
	}

	p := s.dev.NewPlayer(stream)
	defer func() {
		if err := p.Close(); err != nil {
			s.logger.Warn("closing player", zap.Error(err))
		}
	}()

	p.Play()
	s.logger.Debug("playback started")

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for !stream.Finished() {
		select {
		case <-ctx.Done():
			stream.Stop()
			s.logger.Debug("playback cancelled")
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if s.tail > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.tail):
		}
	}

	s.logger.Debug("playback finished")

	return nil
}
