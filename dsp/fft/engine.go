package fft

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Direction selects the transform direction of an [Engine].
type Direction int

const (
	Forward Direction = iota
	Inverse
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Inverse:
		return "inverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ErrInvalidSize is returned when a frame size is not positive.
var ErrInvalidSize = errors.New("fft: frame size must be > 0")

// Transform is a sized real-input DFT.
type Transform interface {
	Size() int
	Direction() Direction
	Resize(n int) error
	Execute(dst []complex128, in []float64) []complex128
}

// Engine is the production [Transform].
//
// Engine is not safe for concurrent use: Execute reuses internal scratch.
type Engine struct {
	dir  Direction
	size int

	plan    *algofft.Plan[complex128]
	twiddle []complex128 // direct DFT table, only set when plan is nil

	scratch []complex128
}

var _ Transform = (*Engine)(nil)

// New returns an engine sized for n-point frames.
func New(n int, dir Direction) (*Engine, error) {
	e := NewUnsized(dir)
	if err := e.Resize(n); err != nil {
		return nil, err
	}
	return e, nil
}

// NewUnsized returns an engine that must be sized with Resize before use.
func NewUnsized(dir Direction) *Engine {
	return &Engine{dir: dir}
}

// Size returns the configured frame size, or 0 when unsized.
func (e *Engine) Size() int { return e.size }

// Direction returns the transform direction.
func (e *Engine) Direction() Direction { return e.dir }

// Planned reports whether the engine runs on an algo-fft plan rather than
// the direct DFT fallback.
func (e *Engine) Planned() bool { return e.plan != nil }

// Resize discards the current plan and buffers and prepares n-point frames.
func (e *Engine) Resize(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	e.size = n
	e.plan = nil
	e.twiddle = nil
	e.scratch = make([]complex128, n)

	plan, err := algofft.NewPlan64(n)
	if err == nil {
		e.plan = plan
		return nil
	}

	e.buildTwiddle()
	return nil
}

// Execute transforms the first Size() samples of in and returns the Size()
// bins, reusing dst when it has enough capacity.
//
// It panics when the engine is unsized or when in is shorter than Size().
func (e *Engine) Execute(dst []complex128, in []float64) []complex128 {
	if e.size == 0 {
		panic("fft: Execute on unsized engine")
	}
	if len(in) < e.size {
		panic(fmt.Sprintf("fft: input length %d shorter than frame size %d", len(in), e.size))
	}

	for i := range e.scratch {
		e.scratch[i] = complex(in[i], 0)
	}

	return e.run(dst, e.scratch)
}

// ExecuteComplex transforms the first Size() values of in. Inverse output is
// scaled by 1/N so that a forward/inverse pair is the identity.
func (e *Engine) ExecuteComplex(dst, in []complex128) []complex128 {
	if e.size == 0 {
		panic("fft: ExecuteComplex on unsized engine")
	}
	if len(in) < e.size {
		panic(fmt.Sprintf("fft: input length %d shorter than frame size %d", len(in), e.size))
	}

	copy(e.scratch, in[:e.size])

	return e.run(dst, e.scratch)
}

func (e *Engine) run(dst, src []complex128) []complex128 {
	if cap(dst) >= e.size {
		dst = dst[:e.size]
	} else {
		dst = make([]complex128, e.size)
	}

	if e.plan != nil {
		var err error
		if e.dir == Forward {
			err = e.plan.Forward(dst, src)
		} else {
			err = e.plan.Inverse(dst, src)
		}
		if err == nil {
			return dst
		}
		// A plan that fails at run time is replaced by the direct transform.
		e.plan = nil
		e.buildTwiddle()
	}

	e.direct(dst, src)

	return dst
}

// buildTwiddle fills the direct transform's roots of unity. Resize has
// already checked that size is positive.
func (e *Engine) buildTwiddle() {
	e.twiddle = make([]complex128, e.size)
	for m := range e.twiddle {
		s, c := math.Sincos(-2 * math.Pi * float64(m) / float64(e.size))
		e.twiddle[m] = complex(c, s)
	}
}

func (e *Engine) direct(dst, src []complex128) {
	n := e.size
	for k := 0; k < n; k++ {
		var acc complex128
		for t := 0; t < n; t++ {
			w := e.twiddle[(k*t)%n]
			if e.dir == Inverse {
				w = complex(real(w), -imag(w))
			}
			acc += src[t] * w
		}
		dst[k] = acc
	}

	if e.dir == Inverse {
		scale := complex(1/float64(n), 0)
		for k := range dst {
			dst[k] *= scale
		}
	}
}
