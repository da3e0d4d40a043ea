package window

import (
	"errors"
	"math"
	"testing"
)

var allTypes = []Type{
	TypeRectangular,
	TypeHann,
	TypeHamming,
	TypeBlackman,
	TypeBlackmanHarris4Term,
	TypeFlatTop,
	TypeKaiser,
	TypeTukey,
}

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}

			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("not symmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
	if w := Generate(TypeHann, -3); w != nil {
		t.Fatalf("expected nil for negative length, got %v", w)
	}
}

func TestGenerateSingleSample(t *testing.T) {
	w := Generate(TypeHann, 1)
	if len(w) != 1 || math.Abs(w[0]-1) > 1e-12 {
		t.Fatalf("single-sample hann = %v, want [1]", w)
	}
}

func TestPeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if w[0] != 0 {
		t.Fatalf("w[0]=%v, want 0", w[0])
	}
	if math.Abs(w[4]-1) > 1e-12 {
		t.Fatalf("w[4]=%v, want 1", w[4])
	}
	if w[7] == 0 {
		t.Fatal("periodic window must not end at zero")
	}
}

func TestSlope(t *testing.T) {
	left := Generate(TypeHann, 9, WithSlope(SlopeLeft))
	if left[0] != 0 {
		t.Fatalf("left slope first = %v, want 0", left[0])
	}
	for i := 4; i < len(left); i++ {
		if left[i] != 1 {
			t.Fatalf("left slope [%d] = %v, want 1", i, left[i])
		}
	}

	right := Generate(TypeHann, 9, WithSlope(SlopeRight))
	for i := 0; i <= 4; i++ {
		if right[i] != 1 {
			t.Fatalf("right slope [%d] = %v, want 1", i, right[i])
		}
	}
	if math.Abs(right[8]) > 1e-12 {
		t.Fatalf("right slope last = %v, want 0", right[8])
	}
}

func TestTukeyLimits(t *testing.T) {
	rect := Generate(TypeTukey, 16, WithAlpha(0))
	for i, v := range rect {
		if v != 1 {
			t.Fatalf("tukey(0)[%d] = %v, want 1", i, v)
		}
	}

	hann := Generate(TypeHann, 16)
	full := Generate(TypeTukey, 16, WithAlpha(1))
	for i := range hann {
		if math.Abs(hann[i]-full[i]) > 1e-12 {
			t.Fatalf("tukey(1)[%d] = %v, want %v", i, full[i], hann[i])
		}
	}
}

func TestKaiserPeak(t *testing.T) {
	w := Generate(TypeKaiser, 33, WithAlpha(8))
	if math.Abs(w[16]-1) > 1e-9 {
		t.Fatalf("kaiser centre = %v, want 1", w[16])
	}
	if w[0] >= w[8] {
		t.Fatalf("kaiser edges should be below the shoulder: %v >= %v", w[0], w[8])
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 1, 1, 1}
	Apply(TypeHann, buf)
	want := []float64{0, 0.75, 0.75, 0}
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	Apply(TypeHann, nil)
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	samples := []float64{2, 4}
	if err := ApplyCoefficientsInPlace(samples, []float64{0.5, 0.25}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if samples[0] != 1 || samples[1] != 1 {
		t.Fatalf("samples = %v, want [1 1]", samples)
	}

	if err := ApplyCoefficientsInPlace(samples, []float64{1}); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("err = %v, want errMismatchedLength", err)
	}
}

func TestHalfHann(t *testing.T) {
	if HalfHann(0) != nil {
		t.Fatal("expected nil for n=0")
	}

	w := HalfHann(64)
	if w[0] != 0 {
		t.Fatalf("first = %v, want 0", w[0])
	}
	for i := 1; i < len(w); i++ {
		if w[i] <= w[i-1] {
			t.Fatalf("not strictly rising at %d", i)
		}
		if w[i] >= 1 {
			t.Fatalf("w[%d] = %v, must stay below 1", i, w[i])
		}
	}
}

func TestCoherentGain(t *testing.T) {
	g, err := CoherentGain(Generate(TypeHann, 4096, WithPeriodic()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(g-0.5) > 1e-9 {
		t.Fatalf("hann coherent gain = %v, want 0.5", g)
	}

	if _, err := CoherentGain(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("err = %v, want errEmptyCoeffs", err)
	}
	if _, err := CoherentGain([]float64{1, -1}); !errors.Is(err, errZeroCoherentGain) {
		t.Fatalf("err = %v, want errZeroCoherentGain", err)
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range allTypes {
		got, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", typ.String(), err)
		}
		if got != typ {
			t.Fatalf("ParseType(%q) = %v, want %v", typ.String(), got, typ)
		}
	}

	if got, err := ParseType("  HANN "); err != nil || got != TypeHann {
		t.Fatalf("ParseType case-folding failed: %v %v", got, err)
	}

	if _, err := ParseType("bartlett"); !errors.Is(err, errUnknownType) {
		t.Fatalf("err = %v, want errUnknownType", err)
	}

	if s := Type(99).String(); s != "Type(99)" {
		t.Fatalf("String() = %q", s)
	}
}
