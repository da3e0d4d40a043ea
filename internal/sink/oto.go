package sink

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/oto/v2"

	"github.com/cwbudde/algo-audition/playback"
)

// OtoDevice is a Device backed by the system audio output. A process can
// hold only one.
type OtoDevice struct {
	ctx    *oto.Context
	format playback.Format
}

// OpenOto opens the system output for format and waits until it is ready.
func OpenOto(format playback.Format) (*OtoDevice, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: output rate %d", playback.ErrUnsupportedFormat, format.SampleRate)
	}

	ctx, ready, err := oto.NewContext(format.SampleRate, format.Channels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("open audio output: %w", err)
	}
	<-ready

	return &OtoDevice{ctx: ctx, format: format}, nil
}

// NewPlayer implements Device.
func (d *OtoDevice) NewPlayer(r io.Reader) Player {
	return d.ctx.NewPlayer(r)
}

// Format returns the format the device was opened with.
func (d *OtoDevice) Format() playback.Format {
	return d.format
}
