package pricing

import (
	"context"
	"math"
	"testing"

	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/fourier"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/models"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/simulation"
)

func TestCrossValidate_RejectsBadGridBeforeSimulating(t *testing.T) {
	m, err := models.NewNormalHeston(0.09, 1, 0.04, 0.25, -0.5)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	c := Contract{S0: 0, Strike: 0, Maturity: 1}
	// A simulation this large would take minutes; the bad grid must fail first.
	simCfg := simulation.Config{Paths: 1 << 30, Steps: 1 << 20}
	badGrid := fourier.GridConfig{M: 2, Eta: 1, Alpha: 1, Ku: 0}

	if _, err := CrossValidate(context.Background(), m, c, simCfg, badGrid, nil); err == nil {
		t.Fatalf("expected grid configuration error")
	}
}

func TestCrossValidate_DeterministicVarianceRoutesAgree(t *testing.T) {
	m, err := models.NewNormalHeston(0.09, 1, 0.09, 0, 0)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	c := Contract{S0: 0, Strike: 0, Maturity: 1}
	simCfg := simulation.Config{Paths: 60000, Steps: 50, Seed: 21, Workers: 4}
	// A fine strike spacing keeps the FFT leg's one-lambda offset from the
	// strike well under the Monte Carlo noise allowance.
	grid := fourier.GridConfig{M: 32768, Eta: 0.25, Alpha: 1, Ku: 0}

	res, err := CrossValidate(context.Background(), m, c, simCfg, grid, nil)
	if err != nil {
		t.Fatalf("cross validate: %v", err)
	}
	if res.Diff != res.MCPrice-res.FFTPrice {
		t.Fatalf("difference %v is not mc-fft (%v, %v)", res.Diff, res.MCPrice, res.FFTPrice)
	}
	if math.Abs(res.Diff) > math.Max(5*res.StdErr, 3e-3) {
		t.Fatalf("routes disagree: mc=%v fft=%v diff=%v stderr=%v", res.MCPrice, res.FFTPrice, res.Diff, res.StdErr)
	}
}

func TestCrossValidate_ReferenceScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("large simulation and transform")
	}
	m, err := models.NewNormalHeston(0.09, 1, 5e-7, 0.25, -0.9)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	c := Contract{S0: -0.001, Strike: 0, Maturity: 1}
	simCfg := simulation.Config{Paths: 30000, Steps: 100, Seed: 42}
	grid := fourier.GridConfig{M: 120000, Eta: 1, Alpha: 30, Ku: 0.0005}

	res, err := CrossValidate(context.Background(), m, c, simCfg, grid, nil)
	if err != nil {
		t.Fatalf("cross validate: %v", err)
	}
	if res.MCPrice < 0.07 || res.MCPrice > 0.11 {
		t.Fatalf("MC price %v outside the expected band around 0.092", res.MCPrice)
	}
	if res.FFTPrice < 0.07 || res.FFTPrice > 0.11 {
		t.Fatalf("FFT price %v outside the expected band around 0.092", res.FFTPrice)
	}
	if math.Abs(res.Diff) > 0.01 {
		t.Fatalf("routes disagree beyond tolerance: %+v", res)
	}
}
