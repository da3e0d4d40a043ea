package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audition/dsp/window"
	"github.com/cwbudde/algo-audition/internal/testutil"
)

func TestAnalyzeZeroFrame(t *testing.T) {
	a, err := NewAnalyzer(64, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	res, err := a.Analyze(make([]float64, 64))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if len(res.Magnitude) != 33 {
		t.Fatalf("bins=%d want=33", len(res.Magnitude))
	}

	for i, m := range res.Magnitude {
		if m != 0 {
			t.Fatalf("Magnitude[%d]=%v want=0", i, m)
		}
		if res.DB[i] != DefaultFloorDB {
			t.Fatalf("DB[%d]=%v want floor", i, res.DB[i])
		}
	}
}

func TestAnalyzeOnBinSine(t *testing.T) {
	const (
		size = 256
		sr   = 8000.0
		bin  = 16
	)

	freq := float64(bin) * sr / size
	sig := testutil.DeterministicSine(freq, sr, 0.5, size)

	for _, win := range []window.Type{window.TypeRectangular, window.TypeHann, window.TypeBlackman} {
		t.Run(win.String(), func(t *testing.T) {
			a, err := NewAnalyzer(size, win)
			if err != nil {
				t.Fatalf("NewAnalyzer: %v", err)
			}

			res, err := a.Analyze(sig)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}

			peak := 0
			for i, m := range res.Magnitude {
				if m > res.Magnitude[peak] {
					peak = i
				}
			}

			if peak != bin {
				t.Fatalf("peak bin=%d want=%d", peak, bin)
			}

			if math.Abs(res.Magnitude[bin]-0.5) > 1e-9 {
				t.Fatalf("peak magnitude=%f want=0.5", res.Magnitude[bin])
			}

			if got := res.Freq(bin, sr); math.Abs(got-freq) > 1e-9 {
				t.Fatalf("Freq=%f want=%f", got, freq)
			}
		})
	}
}

func TestAnalyzeDC(t *testing.T) {
	a, err := NewAnalyzer(32, window.TypeRectangular)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	frame := make([]float64, 32)
	for i := range frame {
		frame[i] = 0.25
	}

	res, err := a.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if math.Abs(res.Magnitude[0]-0.25) > 1e-12 {
		t.Fatalf("DC magnitude=%f want=0.25", res.Magnitude[0])
	}

	if frame[0] != 0.25 {
		t.Fatal("Analyze modified its input")
	}
}

func TestAnalyzeFrameSizeMismatch(t *testing.T) {
	a, err := NewAnalyzer(16, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	if _, err := a.Analyze(make([]float64, 8)); !errors.Is(err, ErrFrameSize) {
		t.Fatalf("err=%v want ErrFrameSize", err)
	}
}

func TestNewAnalyzerInvalidSize(t *testing.T) {
	if _, err := NewAnalyzer(0, window.TypeHann); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestFrameZeroPads(t *testing.T) {
	a, err := NewAnalyzer(4, window.TypeHann)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}

	samples := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		center int
		want   []float64
	}{
		{center: 0, want: []float64{0, 0, 1, 2}},
		{center: 2, want: []float64{1, 2, 3, 4}},
		{center: 4, want: []float64{3, 4, 5, 0}},
		{center: 10, want: []float64{0, 0, 0, 0}},
	}

	for _, tc := range tests {
		got := a.Frame(samples, tc.center)
		testutil.RequireSliceNearlyEqual(t, got, tc.want, 0)
	}
}
