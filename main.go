package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"
	"github.com/xhhuango/json"

	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/fourier"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/models"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/pricing"
	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/simulation"
)

// Reference scenario; every value can be overridden from the environment.
const (
	defaultS0     = -0.001
	defaultStrike = 0.0
	defaultT      = 1.0
	defaultRate   = 0.0
	defaultYield  = 0.0
	defaultV0     = 0.09
	defaultTheta  = 5e-7
	defaultKappa  = 1.0
	defaultXi     = 0.25
	defaultRho    = -0.9

	defaultPaths = 100000
	defaultSteps = 100
	defaultReps  = 1

	defaultFFTM     = 120000
	defaultFFTEta   = 1.0
	defaultFFTAlpha = 30.0
	defaultFFTKu    = 0.0005
)

func main() {
	godotenv.Load() // .env is optional; the defaults are a full scenario

	model, err := models.NewNormalHeston(
		envFloat("NH_V0", defaultV0),
		envFloat("NH_KAPPA", defaultKappa),
		envFloat("NH_THETA", defaultTheta),
		envFloat("NH_XI", defaultXi),
		envFloat("NH_RHO", defaultRho),
	)
	if err != nil {
		log.Fatalf("invalid model parameters: %s", err)
	}

	contract := pricing.Contract{
		S0:       envFloat("NH_S0", defaultS0),
		Strike:   envFloat("NH_STRIKE", defaultStrike),
		Maturity: envFloat("NH_MATURITY", defaultT),
		Rate:     envFloat("NH_RATE", defaultRate),
		Yield:    envFloat("NH_YIELD", defaultYield),
	}

	simCfg := simulation.Config{
		Paths: envInt("NH_PATHS", defaultPaths),
		Steps: envInt("NH_STEPS", defaultSteps),
		Reps:  envInt("NH_REPS", defaultReps),
		Seed:  uint64(envInt("NH_SEED", 0)),
	}

	gridCfg := fourier.GridConfig{
		M:     envInt("NH_FFT_M", defaultFFTM),
		Eta:   envFloat("NH_FFT_ETA", defaultFFTEta),
		Alpha: envFloat("NH_FFT_ALPHA", defaultFFTAlpha),
		Ku:    envFloat("NH_FFT_KU", defaultFFTKu),
	}

	fmt.Printf("Spot level: %g, strike: %g, maturity: %g\n", contract.S0, contract.Strike, contract.Maturity)
	fmt.Printf("Simulating %d paths x %d steps, %d repetition(s)\n", simCfg.Paths, simCfg.Steps, simCfg.Reps)

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(simCfg.Reps),
		mpb.PrependDecorators(decor.Name("simulating "), decor.CountersNoUnit("%d / %d")),
		mpb.AppendDecorators(decor.Percentage()),
	)

	result, err := pricing.CrossValidate(context.Background(), model, contract, simCfg, gridCfg,
		func(rep int, price float64) { bar.Increment() })
	if err != nil {
		log.Fatalf("pricing failed: %s", err)
	}
	progress.Wait()

	fmt.Printf("Monte Carlo price: %.6f (std err %.2e)\n", result.MCPrice, result.StdErr)
	fmt.Printf("FFT price:         %.6f\n", result.FFTPrice)
	fmt.Printf("Difference:        %.6f\n", result.Diff)

	jresult, err := json.Marshal(result)
	if err != nil {
		fmt.Printf("Error marshalling result: %s\n", err.Error())
		return
	}

	f := "result.json"
	if err := os.WriteFile(f, jresult, 0644); err != nil {
		fmt.Printf("Error writing to file %s: %s\n", f, err.Error())
		return
	}
	fmt.Printf("Successfully wrote result to %s\n", f)
}

func envFloat(key string, def float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Fatalf("invalid %s=%q: %s", key, s, err)
	}
	return v
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid %s=%q: %s", key, s, err)
	}
	return v
}
