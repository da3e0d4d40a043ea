package level

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-audition/dsp/core"
)

type entry struct {
	seq   uint64
	value float64
}

// Window is a FIFO of recent absolute amplitudes. After every push it holds
// at most duration*sampleRate entries, oldest evicted first.
//
// Window is safe for concurrent use.
type Window struct {
	mu sync.Mutex

	sampleRate float64
	duration   float64
	capacity   int

	next  uint64
	count int

	// Candidates for the maximum, values strictly decreasing from front to back.
	peaks []entry
}

// New returns an empty window.
func New(opts ...Option) *Window {
	cfg := ApplyOptions(opts...)

	w := &Window{
		sampleRate: cfg.SampleRate,
		duration:   cfg.Duration,
	}
	w.capacity = capacityFor(w.sampleRate, w.duration)

	return w
}

func capacityFor(sampleRate, duration float64) int {
	return int(math.Floor(sampleRate*duration + 1e-9))
}

// Push appends |v| and evicts entries older than the window. NaN counts as
// silence.
func (w *Window) Push(v float64) {
	w.mu.Lock()
	w.push(math.Abs(v))
	w.mu.Unlock()
}

// PushBlock appends the absolute value of every sample in block.
func (w *Window) PushBlock(block []float64) {
	w.mu.Lock()
	for _, v := range block {
		w.push(math.Abs(v))
	}
	w.mu.Unlock()
}

func (w *Window) push(v float64) {
	if math.IsNaN(v) {
		v = 0
	}

	seq := w.next
	w.next++
	w.count++

	n := len(w.peaks)
	for n > 0 && w.peaks[n-1].value <= v {
		n--
	}
	w.peaks = append(w.peaks[:n], entry{seq: seq, value: v})

	w.evict()
}

func (w *Window) evict() {
	for w.count > w.capacity {
		oldest := w.next - uint64(w.count)
		w.count--

		if len(w.peaks) > 0 && w.peaks[0].seq == oldest {
			w.peaks = w.peaks[1:]
		}
	}

	if w.count == 0 {
		w.peaks = w.peaks[:0]
	}
}

// Peak returns the largest absolute amplitude in the window, 0 when empty.
func (w *Window) Peak() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.peaks) == 0 {
		return 0
	}
	return w.peaks[0].value
}

// PeakDB returns [Window.Peak] in dBFS, never below DefaultFloorDB.
func (w *Window) PeakDB() float64 {
	return core.LinearToDBFloor(w.Peak(), DefaultFloorDB)
}

// Len returns the number of entries currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.count
}

// SampleRate returns the rate used for the time bound.
func (w *Window) SampleRate() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.sampleRate
}

// Duration returns the window length in seconds.
func (w *Window) Duration() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.duration
}

// SetSampleRate changes the time base, evicting entries that no longer fit.
// Non-positive rates are ignored.
func (w *Window) SetSampleRate(sampleRate float64) {
	if sampleRate <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.sampleRate = sampleRate
	w.capacity = capacityFor(sampleRate, w.duration)
	w.evict()
}

// Reset empties the window.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.count = 0
	w.peaks = w.peaks[:0]
}
