package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audition/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("err=%v want ErrInvalidRatio", err)
	}
	if _, err := NewRational(1, 0); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("err=%v want ErrInvalidRatio", err)
	}
	if _, err := NewForRates(0, 48000); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err=%v want ErrInvalidRate", err)
	}
	if _, err := NewForRates(44100, math.NaN()); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("err=%v want ErrInvalidRate", err)
	}
}

func TestRatioReduction(t *testing.T) {
	c, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	up, down := c.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestApproximateRatio(t *testing.T) {
	tests := []struct {
		in, out  float64
		up, down int
	}{
		{in: 44100, out: 48000, up: 160, down: 147},
		{in: 48000, out: 24000, up: 1, down: 2},
		{in: 22050, out: 44100, up: 2, down: 1},
		{in: 8000, out: 11025, up: 441, down: 320},
	}

	for _, tc := range tests {
		up, down := approximateRatio(tc.out/tc.in, 4096)
		if up != tc.up || down != tc.down {
			t.Fatalf("%g->%g: ratio=%d/%d want %d/%d", tc.in, tc.out, up, down, tc.up, tc.down)
		}
	}
}

func TestOutputLength(t *testing.T) {
	c, err := NewForRates(44100, 48000)
	if err != nil {
		t.Fatalf("NewForRates: %v", err)
	}

	for _, n := range []int{1, 147, 441, 1000} {
		got := len(c.Process(make([]float64, n)))
		if want := c.OutputLen(n); got != want {
			t.Fatalf("n=%d: len=%d want=%d", n, got, want)
		}
		if want := int(math.Ceil(float64(n) * 160 / 147)); got != want {
			t.Fatalf("n=%d: len=%d want=%d", n, got, want)
		}
	}

	if c.Process(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}

func TestEqualRatesCopy(t *testing.T) {
	in := []float64{1, 2, 3}
	out, err := Convert(in, 44100, 44100)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)

	out[0] = 9
	if in[0] != 1 {
		t.Fatal("Convert aliased its input")
	}
}

func TestUpsampledSineIsAligned(t *testing.T) {
	const (
		inRate  = 44100.0
		outRate = 48000.0
		freq    = 1000.0
	)

	in := testutil.DeterministicSine(freq, inRate, 0.5, 4410)
	out, err := Convert(in, inRate, outRate)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	want := testutil.DeterministicSine(freq, outRate, 0.5, len(out))
	for i := 200; i < len(out)-200; i++ {
		if d := math.Abs(out[i] - want[i]); d > 2e-3 {
			t.Fatalf("sample %d: got %v want %v", i, out[i], want[i])
		}
	}
}

func TestDownsampleRejectsAliases(t *testing.T) {
	in := testutil.DeterministicSine(18000, 48000, 0.5, 4800)
	out, err := Convert(in, 48000, 24000)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	for i := 100; i < len(out)-100; i++ {
		if math.Abs(out[i]) > 0.01 {
			t.Fatalf("sample %d = %v, alias not suppressed", i, out[i])
		}
	}
}

func TestQualityProfiles(t *testing.T) {
	for _, q := range []Quality{QualityFast, QualityBalanced, QualityBest} {
		c, err := NewRational(2, 1, WithQuality(q))
		if err != nil {
			t.Fatalf("NewRational: %v", err)
		}
		if c.Quality() != q {
			t.Fatalf("Quality=%v want=%v", c.Quality(), q)
		}
		if want := QualityProfile(q).TapsPerPhase*2 + 1; len(c.taps) != want {
			t.Fatalf("taps=%d want=%d", len(c.taps), want)
		}
	}
}
