// Package pricing cross-validates the two independent pricing routes: Monte
// Carlo path simulation and damped Fourier inversion.
package pricing

import (
	"context"

	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/fourier"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/models"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/simulation"
)

// Contract holds the caller-supplied terms of the European call. Immutable
// per pricing run.
type Contract struct {
	S0       float64 `json:"s0"`
	Strike   float64 `json:"strike"`
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`
	Yield    float64 `json:"yield"`
}

// Result pairs the two prices with their signed difference. The engine
// enforces no tolerance; callers decide what agreement is acceptable.
type Result struct {
	MCPrice   float64   `json:"mc_price"`
	FFTPrice  float64   `json:"fft_price"`
	Diff      float64   `json:"difference"`
	RepPrices []float64 `json:"repetition_prices"`
	StdErr    float64   `json:"std_error"`
}

// CrossValidate prices the contract by both routes. onRep, if non-nil, is
// invoked after each completed simulation repetition.
func CrossValidate(ctx context.Context, m *models.NormalHeston, c Contract, simCfg simulation.Config, gridCfg fourier.GridConfig, onRep func(rep int, price float64)) (Result, error) {
	// Reject bad grids before burning simulation time.
	if err := gridCfg.Validate(); err != nil {
		return Result{}, err
	}

	mc, err := simulation.Price(ctx, m, c.S0, c.Strike, c.Rate, c.Maturity, simCfg, onRep)
	if err != nil {
		return Result{}, err
	}

	fft, err := fourier.CallPrice(m, c.S0, c.Rate, c.Yield, c.Maturity, gridCfg)
	if err != nil {
		return Result{}, err
	}

	return Result{
		MCPrice:   mc.Price,
		FFTPrice:  fft,
		Diff:      mc.Price - fft,
		RepPrices: mc.RepPrices,
		StdErr:    mc.StdErr,
	}, nil
}
