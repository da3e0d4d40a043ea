package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/dsp/core"
	"github.com/cwbudde/algo-audition/dsp/filter/design"
	"github.com/cwbudde/algo-audition/dsp/filter/zerophase"
	"github.com/cwbudde/algo-audition/measure/level"
)

// State is the lifecycle phase of a Source.
type State int

const (
	// Idle sources produce silence.
	Idle State = iota
	// Armed sources have a segment selected and have not been read yet.
	Armed
	// Streaming sources are being read by a sink.
	Streaming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Streaming:
		return "streaming"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// TimeRange selects a segment in seconds. The zero value selects the whole
// sound.
type TimeRange struct {
	Start, Stop float64
}

// FrequencyRange selects a band in Hz. Edges at 0 or Nyquist (after snapping)
// leave that side unfiltered.
type FrequencyRange struct {
	Low, High float64
}

// Plan describes an armed session.
type Plan struct {
	// Duration is the played length in seconds, (End-Start+1)/sampleRate.
	Duration float64
	// Start and End are inclusive sample indices into the sound.
	Start, End int
	// Band is the frequency range after ordering and snapping.
	Band design.Band
	// Filtered reports whether the session plays band-limited audio.
	Filtered bool
	// FilterErr is set when filtering was requested but failed. The session
	// then plays the unfiltered sound.
	FilterErr error
}

// Source produces PCM for one sound. Arm, Stop and the setters are meant
// for a control goroutine; Produce, ProduceInto and Read for the sink
// goroutine. All methods are safe for concurrent use.
type Source struct {
	// ctl serializes Arm and Load so filtering runs outside mu.
	ctl sync.Mutex
	mu  sync.Mutex

	opts       options
	raw        []float64
	sampleRate float64
	meter      *level.Window

	active []float64
	format Format
	ramp   []float64
	start  int
	end    int
	pos    int
	state  State

	levels []float64
}

// NewSource returns an idle source over samples. The slice is referenced,
// not copied, and must not be modified while the source uses it.
func NewSource(samples []float64, sampleRate float64, opts ...Option) (*Source, error) {
	if err := checkSound(samples, sampleRate); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.meter == nil {
		o.meter = level.New(level.WithSampleRate(sampleRate))
	} else {
		o.meter.SetSampleRate(sampleRate)
	}

	return &Source{
		opts:       o,
		raw:        samples,
		sampleRate: sampleRate,
		meter:      o.meter,
		format:     MonoFormat(int(math.Round(sampleRate))),
	}, nil
}

func checkSound(samples []float64, sampleRate float64) error {
	if len(samples) == 0 {
		return ErrEmptyBuffer
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %g Hz", ErrInvalidSamplingRate, sampleRate)
	}
	return nil
}

// Load replaces the sound and stops any running session.
func (s *Source) Load(samples []float64, sampleRate float64) error {
	if err := checkSound(samples, sampleRate); err != nil {
		return err
	}

	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	s.raw = samples
	s.sampleRate = sampleRate
	s.reset()
	s.mu.Unlock()

	s.meter.SetSampleRate(sampleRate)
	s.meter.Reset()

	return nil
}

// Arm selects the segment and band to play and prepares the output format.
// Filtering happens here, before the session becomes visible to readers. A
// filter failure is reported in Plan.FilterErr, not as an error.
func (s *Source) Arm(tr TimeRange, fr FrequencyRange, format Format) (Plan, error) {
	if err := format.Validate(); err != nil {
		return Plan{}, err
	}

	s.ctl.Lock()
	defer s.ctl.Unlock()

	s.mu.Lock()
	raw, fs, opts := s.raw, s.sampleRate, s.opts
	s.mu.Unlock()

	active, plan := selectBand(raw, fs, fr, opts)
	plan.Start, plan.End = resolveRange(tr, fs, len(raw))
	plan.Duration = float64(plan.End-plan.Start+1) / fs

	s.mu.Lock()
	s.active = active
	s.format = format
	s.start = plan.Start
	s.end = plan.End
	s.pos = plan.Start
	s.ramp = opts.fade.Ramp(plan.End-plan.Start+1, fs)
	s.state = Armed
	s.mu.Unlock()

	s.meter.SetSampleRate(fs)
	s.meter.Reset()

	opts.logger.Debug("armed playback",
		zap.Int("start", plan.Start),
		zap.Int("end", plan.End),
		zap.Float64("duration", plan.Duration),
		zap.Bool("filtered", plan.Filtered),
		zap.Int("channels", format.Channels),
	)

	return plan, nil
}

func selectBand(raw []float64, fs float64, fr FrequencyRange, opts options) ([]float64, Plan) {
	var plan Plan

	band, doLowpass, doHighpass := design.PlanBand(fr.Low, fr.High, fs)
	plan.Band = band

	if !doLowpass && !doHighpass {
		return raw, plan
	}

	out := raw
	var err error

	if doLowpass {
		out, err = zerophase.Butterworth(out, design.Spec{
			Order:  opts.filterOrder,
			Cutoff: band.High / fs,
			Kind:   design.Lowpass,
		})
	}

	if err == nil && doHighpass {
		out, err = zerophase.Butterworth(out, design.Spec{
			Order:  opts.filterOrder,
			Cutoff: band.Low / fs,
			Kind:   design.Highpass,
		})
	}

	if err != nil {
		plan.FilterErr = fmt.Errorf("playback: band %g-%g Hz: %w", band.Low, band.High, err)
		opts.logger.Warn("filtering failed, playing unfiltered sound",
			zap.Float64("low_hz", band.Low),
			zap.Float64("high_hz", band.High),
			zap.Int("order", opts.filterOrder),
			zap.Error(err),
		)

		return raw, plan
	}

	if opts.compensateEnergy {
		gain := zerophase.MatchEnergy(out, raw)
		opts.logger.Debug("energy compensated", zap.Float64("gain", gain))
	}

	plan.Filtered = true

	return out, plan
}

func resolveRange(tr TimeRange, fs float64, n int) (start, end int) {
	if tr.Start > tr.Stop {
		tr.Start, tr.Stop = tr.Stop, tr.Start
	}

	if tr.Start == 0 && tr.Stop == 0 {
		return 0, n - 1
	}

	index := func(t float64) int {
		return core.ClampInt(int(0.5+t*fs), 0, n-1)
	}

	return index(tr.Start), index(tr.Stop)
}

// Stop ends the session. Later reads produce silence until the next Arm.
func (s *Source) Stop() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
}

func (s *Source) reset() {
	s.pos = 0
	s.start = 0
	s.end = 0
	s.ramp = nil
	s.state = Idle
}

// Produce returns k frames of PCM in the current format.
func (s *Source) Produce(k int) []byte {
	if k <= 0 {
		return []byte{}
	}

	s.mu.Lock()
	frameSize := s.format.FrameSize()
	s.mu.Unlock()

	out := make([]byte, k*frameSize)
	s.ProduceInto(out)

	return out
}

// ProduceInto fills whole frames of dst and returns the number of bytes
// written. Slots outside the armed segment, or after Stop, are silence.
func (s *Source) ProduceInto(dst []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	frameSize := s.format.FrameSize()
	frames := len(dst) / frameSize

	active := s.state != Idle
	if s.state == Armed && frames > 0 {
		s.state = Streaming
	}

	sign := 1.0
	if s.opts.polarityInverted {
		sign = -1
	}
	scale := s.opts.amplitudeScale * sign
	segLen := s.end - s.start + 1

	s.levels = core.EnsureLen(s.levels, frames)

	for f := range frames {
		var a float64

		if s.state != Idle && s.pos <= s.end {
			idx := s.pos - s.opts.delay
			if idx >= 0 && idx < len(s.active) {
				a = scale * gainAt(s.ramp, s.pos-s.start, segLen) * s.active[idx]
			}
			s.pos++
		}

		s.levels[f] = a

		v := uint16(quantize(a))
		o := f * frameSize
		for ch := 0; ch < frameSize; ch += BytesPerSample {
			binary.LittleEndian.PutUint16(dst[o+ch:], v)
		}
	}

	if s.state != Idle && s.pos > s.end {
		s.state = Idle
	}

	if active {
		s.meter.PushBlock(s.levels)
	}

	return frames * frameSize
}

// Read implements io.Reader over ProduceInto. It returns io.ErrShortBuffer
// when p is non-empty but shorter than one frame; otherwise it never fails
// and the stream is endless silence once the segment has been played.
func (s *Source) Read(p []byte) (int, error) {
	if len(p) > 0 && len(p) < s.Format().FrameSize() {
		return 0, io.ErrShortBuffer
	}
	return s.ProduceInto(p), nil
}

func quantize(a float64) int16 {
	if math.IsNaN(a) {
		return 0
	}
	return int16(core.Clamp(math.Floor(a*math.MaxInt16), math.MinInt16, math.MaxInt16))
}

// Finished reports whether the source has nothing left to play: it was
// never armed, was stopped, or has played past the end of its segment.
func (s *Source) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == Idle
}

// State returns the lifecycle phase.
func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Position returns the playback cursor as a sample index into the sound.
// Once the segment has played it is End+1, one past the last sample.
func (s *Source) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pos
}

// Progress returns the fraction of the armed segment already played.
func (s *Source) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Idle && s.pos == 0 && s.end == 0 {
		return 0
	}

	segLen := s.end - s.start + 1
	return core.Clamp(float64(s.pos-s.start)/float64(segLen), 0, 1)
}

// Format returns the output format of the current session.
func (s *Source) Format() Format {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.format
}

// SampleRate returns the sampling rate of the loaded sound.
func (s *Source) SampleRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sampleRate
}

// Meter returns the level window fed by this source.
func (s *Source) Meter() *level.Window {
	return s.meter
}

// SetAmplitudeScale sets the linear output gain.
func (s *Source) SetAmplitudeScale(scale float64) {
	s.mu.Lock()
	s.opts.amplitudeScale = scale
	s.mu.Unlock()
}

// SetPolarityInverted flips the output sign.
func (s *Source) SetPolarityInverted(inverted bool) {
	s.mu.Lock()
	s.opts.polarityInverted = inverted
	s.mu.Unlock()
}

// SetDelay sets the delay in samples.
func (s *Source) SetDelay(samples int) {
	s.mu.Lock()
	s.opts.delay = samples
	s.mu.Unlock()
}

// SetFade changes the taper used by the next Arm.
func (s *Source) SetFade(f Fade) {
	s.mu.Lock()
	s.opts.fade = f
	s.mu.Unlock()
}
