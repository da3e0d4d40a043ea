package fft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-audition/internal/testutil"
)

func requireBinsNear(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for k := range got {
		if cmplx.Abs(got[k]-want[k]) > eps {
			t.Fatalf("bin %d: got %v, want %v", k, got[k], want[k])
		}
	}
}

func TestZeroFrameGivesZeroSpectrum(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 12, 64, 100} {
		e, err := New(n, Forward)
		if err != nil {
			t.Fatalf("New(%d): %v", n, err)
		}
		out := e.Execute(nil, make([]float64, n))
		if len(out) != n {
			t.Fatalf("n=%d: len = %d", n, len(out))
		}
		for k, v := range out {
			if v != 0 {
				t.Fatalf("n=%d: bin %d = %v, want 0", n, k, v)
			}
		}
	}
}

func TestForwardMatchesReference(t *testing.T) {
	for _, n := range []int{4, 12, 15, 256} {
		x := testutil.DeterministicNoise(int64(n), 1, n)
		e, err := New(n, Forward)
		if err != nil {
			t.Fatalf("New(%d): %v", n, err)
		}
		requireBinsNear(t, e.Execute(nil, x), dspfft.FFTReal(x), 1e-9)
	}
}

func TestDirectTransformMatchesReference(t *testing.T) {
	for _, n := range []int{1, 5, 12, 33} {
		x := testutil.DeterministicNoise(int64(n)+100, 1, n)
		want := dspfft.FFTReal(x)

		for _, dir := range []Direction{Forward, Inverse} {
			e := NewUnsized(dir)
			if err := e.Resize(n); err != nil {
				t.Fatalf("Resize(%d): %v", n, err)
			}
			e.plan = nil
			e.buildTwiddle()

			got := e.Execute(nil, x)
			if dir == Inverse {
				// x is real, so N times the inverse is the conjugate spectrum.
				for k := range got {
					got[k] = cmplx.Conj(got[k]) * complex(float64(n), 0)
				}
			}
			requireBinsNear(t, got, want, 1e-9)
		}
	}
}

func TestForwardConjugateSymmetry(t *testing.T) {
	const n = 32
	x := testutil.DeterministicSine(3000, 16000, 0.8, n)
	e, err := New(n, Forward)
	if err != nil {
		t.Fatal(err)
	}
	X := e.Execute(nil, x)
	if math.Abs(imag(X[0])) > 1e-12 || math.Abs(imag(X[n/2])) > 1e-9 {
		t.Fatalf("DC/Nyquist bins not real: %v %v", X[0], X[n/2])
	}
	for k := 1; k < n/2; k++ {
		if cmplx.Abs(X[k]-cmplx.Conj(X[n-k])) > 1e-9 {
			t.Fatalf("bin %d not conjugate of bin %d", k, n-k)
		}
	}
}

func TestExecuteReadsOnlyFrameSize(t *testing.T) {
	e, err := New(4, Forward)
	if err != nil {
		t.Fatal(err)
	}
	out := e.Execute(nil, []float64{1, 1, 1, 1, 99, 99})
	if cmplx.Abs(out[0]-4) > 1e-12 {
		t.Fatalf("DC = %v, want 4", out[0])
	}
}

func TestExecuteReusesDst(t *testing.T) {
	e, err := New(8, Forward)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]complex128, 0, 16)
	out := e.Execute(dst, testutil.Impulse(8, 0))
	if &out[0] != &dst[:1][0] {
		t.Fatal("Execute did not reuse dst capacity")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for _, n := range []int{8, 10} {
		fwd, err := New(n, Forward)
		if err != nil {
			t.Fatal(err)
		}
		inv, err := New(n, Inverse)
		if err != nil {
			t.Fatal(err)
		}
		x := testutil.DeterministicNoise(7, 0.5, n)
		back := inv.ExecuteComplex(nil, fwd.Execute(nil, x))
		for i := range x {
			if math.Abs(real(back[i])-x[i]) > 1e-9 || math.Abs(imag(back[i])) > 1e-9 {
				t.Fatalf("n=%d sample %d: got %v, want %v", n, i, back[i], x[i])
			}
		}
	}
}

func TestResize(t *testing.T) {
	e := NewUnsized(Forward)
	if e.Size() != 0 {
		t.Fatalf("unsized Size() = %d", e.Size())
	}
	for _, n := range []int{0, -3} {
		if err := e.Resize(n); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("Resize(%d) err = %v, want ErrInvalidSize", n, err)
		}
	}
	if e.Size() != 0 {
		t.Fatalf("failed Resize changed Size() to %d", e.Size())
	}
	if err := e.Resize(16); err != nil {
		t.Fatal(err)
	}
	if err := e.Resize(6); err != nil {
		t.Fatal(err)
	}
	if got := len(e.Execute(nil, make([]float64, 6))); got != 6 {
		t.Fatalf("after resize len = %d, want 6", got)
	}
}

func TestExecutePanics(t *testing.T) {
	tests := []struct {
		name string
		run  func()
	}{
		{name: "unsized", run: func() { NewUnsized(Forward).Execute(nil, []float64{1}) }},
		{name: "short input", run: func() {
			e, _ := New(8, Forward)
			e.Execute(nil, make([]float64, 4))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.run()
		})
	}
}

func TestDirectionString(t *testing.T) {
	if Forward.String() != "forward" || Inverse.String() != "inverse" {
		t.Fatalf("unexpected names %q %q", Forward, Inverse)
	}
}
