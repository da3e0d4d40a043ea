package testutil

import "testing"

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{3, 4}); got != 25 {
		t.Fatalf("Energy = %v, want 25", got)
	}
}
