package simulation

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestShocks_RejectsInvalidInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, _, err := Shocks(10, 10, 1.5, 0.01, rng); err == nil {
		t.Fatalf("expected error for rho=1.5")
	}
	if _, _, err := Shocks(0, 10, 0.5, 0.01, rng); err == nil {
		t.Fatalf("expected error for zero paths")
	}
	if _, _, err := Shocks(10, 10, 0.5, 0, rng); err == nil {
		t.Fatalf("expected error for dt=0")
	}
}

func TestShocks_SampleCorrelation(t *testing.T) {
	const (
		paths = 2000
		steps = 50
		dt    = 0.01
	)
	for _, rho := range []float64{-0.9, -0.3, 0, 0.7, 1} {
		rng := rand.New(rand.NewSource(99))
		dW1, dW2, err := Shocks(paths, steps, rho, dt, rng)
		if err != nil {
			t.Fatalf("rho=%g: %v", rho, err)
		}

		flat1 := make([]float64, 0, paths*steps)
		flat2 := make([]float64, 0, paths*steps)
		for i := range dW1 {
			flat1 = append(flat1, dW1[i]...)
			flat2 = append(flat2, dW2[i]...)
		}

		if got := stat.Correlation(flat1, flat2, nil); !almostEqual(got, rho, 0.02) {
			t.Fatalf("sample correlation = %v, want %v", got, rho)
		}
	}
}

func TestShocks_IncrementMoments(t *testing.T) {
	const (
		paths = 4000
		steps = 25
		dt    = 0.02
	)
	rng := rand.New(rand.NewSource(7))
	dW1, dW2, err := Shocks(paths, steps, -0.5, dt, rng)
	if err != nil {
		t.Fatalf("shocks: %v", err)
	}

	check := func(name string, dw [][]float64) {
		flat := make([]float64, 0, paths*steps)
		for i := range dw {
			flat = append(flat, dw[i]...)
		}
		mean, std := stat.MeanStdDev(flat, nil)
		if !almostEqual(mean, 0, 3*math.Sqrt(dt)/math.Sqrt(float64(len(flat)))+1e-4) {
			t.Fatalf("%s mean = %v, want 0", name, mean)
		}
		if !almostEqual(std, math.Sqrt(dt), 0.002) {
			t.Fatalf("%s std = %v, want %v", name, std, math.Sqrt(dt))
		}
	}
	check("dW1", dW1)
	check("dW2", dW2)
}
