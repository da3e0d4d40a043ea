package zerophase

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-audition/dsp/fft"
	"github.com/cwbudde/algo-audition/dsp/filter/design"
	"github.com/cwbudde/algo-audition/internal/testutil"
)

const sampleRate = 8000.0

func mustDesign(t *testing.T, order int, cutoffHz float64, kind design.Kind) design.Coefficients {
	t.Helper()
	c, err := design.Butterworth(design.Spec{Order: order, Cutoff: cutoffHz / sampleRate, Kind: kind})
	if err != nil {
		t.Fatalf("design: %v", err)
	}
	return c
}

// energyAbove sums |X[k]|^2 over bins above cutoffHz (one-sided).
func energyAbove(t *testing.T, x []float64, cutoffHz float64) float64 {
	t.Helper()
	e, err := fft.New(len(x), fft.Forward)
	if err != nil {
		t.Fatal(err)
	}
	bins := e.Execute(nil, x)
	sum := 0.0
	for k := 0; k <= len(x)/2; k++ {
		if float64(k)*sampleRate/float64(len(x)) > cutoffHz {
			a := cmplx.Abs(bins[k])
			sum += a * a
		}
	}
	return sum
}

func TestFiltFiltPreservesLengthAndInput(t *testing.T) {
	x := testutil.DeterministicNoise(1, 1, 300)
	orig := append([]float64(nil), x...)

	y, err := FiltFilt(x, mustDesign(t, 4, 1000, design.Lowpass))
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != len(x) {
		t.Fatalf("len = %d, want %d", len(y), len(x))
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
	testutil.RequireFinite(t, y)
}

func TestFiltFiltLowpassAttenuatesAboveCutoff(t *testing.T) {
	const n = 1024
	x := testutil.Mix(
		testutil.DeterministicSine(250, sampleRate, 0.5, n),
		testutil.DeterministicSine(3000, sampleRate, 0.5, n),
	)

	y, err := FiltFilt(x, mustDesign(t, 4, 1000, design.Lowpass))
	if err != nil {
		t.Fatal(err)
	}

	before := energyAbove(t, x, 1000)
	after := energyAbove(t, y, 1000)
	if after > 1e-3*before {
		t.Fatalf("energy above cutoff: before %g, after %g", before, after)
	}
}

func TestFiltFiltConstantPassesLowpassUnchanged(t *testing.T) {
	x := make([]float64, 200)
	for i := range x {
		x[i] = 0.3
	}
	y, err := FiltFilt(x, mustDesign(t, 4, 500, design.Lowpass))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, y, x, 1e-9)
}

func TestFiltFiltHighpassRemovesOffset(t *testing.T) {
	const n = 2048
	x := testutil.DeterministicSine(2000, sampleRate, 0.5, n)
	for i := range x {
		x[i] += 0.5
	}

	y, err := FiltFilt(x, mustDesign(t, 4, 500, design.Highpass))
	if err != nil {
		t.Fatal(err)
	}

	mean := 0.0
	for _, v := range y[n/4 : 3*n/4] {
		mean += v
	}
	mean /= float64(n / 2)
	if math.Abs(mean) > 1e-3 {
		t.Fatalf("mean after highpass = %v, want ~0", mean)
	}
}

func TestFiltFiltIsZeroPhase(t *testing.T) {
	// A symmetric pulse stays symmetric around its centre.
	x := make([]float64, 201)
	x[100] = 1
	y, err := FiltFilt(x, mustDesign(t, 4, 800, design.Lowpass))
	if err != nil {
		t.Fatal(err)
	}
	for k := 1; k < 60; k++ {
		if math.Abs(y[100-k]-y[100+k]) > 1e-7 {
			t.Fatalf("asymmetric response at offset %d: %v vs %v", k, y[100-k], y[100+k])
		}
	}
	if y[100] < y[99] || y[100] < y[101] {
		t.Fatal("peak moved away from the pulse position")
	}
}

func TestFiltFiltSectionsMatchesTransferFunction(t *testing.T) {
	spec := design.Spec{Order: 4, Cutoff: 700 / sampleRate, Kind: design.Lowpass}
	tf, err := design.Butterworth(spec)
	if err != nil {
		t.Fatal(err)
	}
	sos, err := design.ButterworthSections(spec)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(9, 1, 500)
	a, err := FiltFilt(x, tf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FiltFiltSections(x, sos)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, a, b, 1e-8)
}

func TestFiltFiltSectionsStartsWithoutTransient(t *testing.T) {
	tests := []struct {
		name string
		kind design.Kind
		want float64
	}{
		{"lowpass keeps offset", design.Lowpass, -0.6},
		{"highpass removes offset", design.Highpass, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sos, err := design.ButterworthSections(design.Spec{Order: 6, Cutoff: 400 / sampleRate, Kind: tt.kind})
			if err != nil {
				t.Fatal(err)
			}

			x := make([]float64, 64)
			for i := range x {
				x[i] = -0.6
			}
			y, err := FiltFiltSections(x, sos)
			if err != nil {
				t.Fatal(err)
			}
			for i, v := range y {
				if math.Abs(v-tt.want) > 1e-9 {
					t.Fatalf("sample %d = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestFiltFiltShortSignals(t *testing.T) {
	c := mustDesign(t, 2, 1000, design.Lowpass)

	y, err := FiltFilt(nil, c)
	if err != nil || len(y) != 0 {
		t.Fatalf("empty signal: y=%v err=%v", y, err)
	}

	for _, n := range []int{1, 2, 5} {
		y, err := FiltFilt(testutil.DeterministicNoise(int64(n), 1, n), c)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(y) != n {
			t.Fatalf("n=%d: len = %d", n, len(y))
		}
		testutil.RequireFinite(t, y)
	}
}

func TestFiltFiltErrors(t *testing.T) {
	x := testutil.DeterministicNoise(4, 1, 4000)
	tests := []struct {
		name string
		c    design.Coefficients
	}{
		{name: "empty numerator", c: design.Coefficients{Denominator: []float64{1}}},
		{name: "zero leading denominator", c: design.Coefficients{Numerator: []float64{1}, Denominator: []float64{0, 1}}},
		{name: "nan coefficient", c: design.Coefficients{Numerator: []float64{math.NaN()}, Denominator: []float64{1}}},
		{name: "unstable", c: design.Coefficients{Numerator: []float64{1}, Denominator: []float64{1, -2.5, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FiltFilt(x, tt.c); !errors.Is(err, ErrFilterApply) {
				t.Fatalf("err = %v, want ErrFilterApply", err)
			}
		})
	}

	if _, err := FiltFiltSections(x, nil); !errors.Is(err, ErrFilterApply) {
		t.Fatalf("empty cascade err = %v, want ErrFilterApply", err)
	}
}

func TestMatchEnergy(t *testing.T) {
	ref := []float64{1, -1, 1, -1}
	filtered := []float64{0.5, -0.5, 0.5, -0.5}

	gain := MatchEnergy(filtered, ref)
	if math.Abs(gain-2) > 1e-12 {
		t.Fatalf("gain = %v, want 2", gain)
	}
	testutil.RequireSliceNearlyEqual(t, filtered, ref, 1e-12)

	silent := []float64{0, 0}
	if g := MatchEnergy(silent, ref); g != 1 || silent[0] != 0 {
		t.Fatalf("silent buffer changed: gain %v, %v", g, silent)
	}
}

func TestButterworthClassifiesErrors(t *testing.T) {
	sig := testutil.DeterministicSine(440, 8000, 0.5, 256)

	_, err := Butterworth(sig, design.Spec{Order: 3, Cutoff: 0.1, Kind: design.Lowpass})
	if !errors.Is(err, ErrFilterDesign) || !errors.Is(err, design.ErrInvalidSpec) {
		t.Fatalf("err=%v want ErrFilterDesign wrapping ErrInvalidSpec", err)
	}

	out, err := Butterworth(sig, design.Spec{Order: 4, Cutoff: 0.1, Kind: design.Lowpass})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(sig) {
		t.Fatalf("len=%d want=%d", len(out), len(sig))
	}
}
