package simulation

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/models"
)

// shockBlock bounds how many paths' worth of increments a worker draws at a
// time, keeping the shock matrices small while amortizing the calls.
const shockBlock = 256

// Config drives one Monte Carlo pricing run.
type Config struct {
	Paths int // paths per repetition
	Steps int // time steps per path
	Reps  int // independent repetitions, defaults to 1
	Seed  uint64
	// Workers partitions paths across goroutines; 0 means GOMAXPROCS.
	Workers int
}

func (c Config) reps() int {
	if c.Reps <= 0 {
		return 1
	}
	return c.Reps
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) validate() error {
	if c.Paths <= 0 {
		return fmt.Errorf("path count %d must be positive", c.Paths)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("step count %d must be positive", c.Steps)
	}
	return nil
}

// Result carries the aggregated Monte Carlo price together with the price of
// every repetition, so no batch is silently discarded.
type Result struct {
	Price     float64   // mean of the repetition prices
	RepPrices []float64 // one discounted price per repetition
	StdErr    float64   // standard error of the pooled payoff mean
}

// Price estimates the discounted expected call payoff exp(-r t) E[(S_T - K)+]
// by path simulation. Paths are partitioned across workers, each accumulating
// a local payoff sum; partials are reduced in worker order after the pool
// drains, so a fixed Seed reproduces the same price regardless of scheduling.
// The context is checked between repetitions.
func Price(ctx context.Context, m *models.NormalHeston, s0, strike, r, t float64, cfg Config, onRep func(rep int, price float64)) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if math.Abs(m.Rho) > 1 {
		return Result{}, fmt.Errorf("correlation %g outside [-1, 1]", m.Rho)
	}
	if t <= 0 {
		return Result{}, fmt.Errorf("maturity %g must be positive", t)
	}

	reps := cfg.reps()
	workers := cfg.workers()
	if workers > cfg.Paths {
		workers = cfg.Paths
	}
	dt := t / float64(cfg.Steps)
	discount := math.Exp(-r * t)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	repPrices := make([]float64, 0, reps)
	var pooledSum, pooledSumSq float64

	for rep := 0; rep < reps; rep++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		sums := make([]float64, workers)
		sumSqs := make([]float64, workers)

		g, _ := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			w := w
			count := cfg.Paths / workers
			if w == workers-1 {
				count += cfg.Paths % workers
			}
			rng := rand.New(rand.NewSource(seed + uint64(rep*workers+w)))

			g.Go(func() error {
				path := NewPath(cfg.Steps)
				localSum, localSumSq := 0.0, 0.0

				for remaining := count; remaining > 0; {
					block := shockBlock
					if block > remaining {
						block = remaining
					}
					dW1, dW2, err := Shocks(block, cfg.Steps, m.Rho, dt, rng)
					if err != nil {
						return err
					}
					for i := 0; i < block; i++ {
						SimulatePath(m, s0, r, dt, dW1[i], dW2[i], path)
						payoff := math.Max(path.Terminal()-strike, 0)
						localSum += payoff
						localSumSq += payoff * payoff
					}
					remaining -= block
				}

				sums[w] = localSum
				sumSqs[w] = localSumSq
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, fmt.Errorf("path simulation: %w", err)
		}

		repSum := 0.0
		for w := 0; w < workers; w++ {
			repSum += sums[w]
			pooledSumSq += sumSqs[w]
		}
		pooledSum += repSum

		repPrice := discount * repSum / float64(cfg.Paths)
		if math.IsNaN(repPrice) || math.IsInf(repPrice, 0) {
			return Result{}, fmt.Errorf("payoff aggregation: repetition %d produced a non-finite price", rep)
		}
		repPrices = append(repPrices, repPrice)
		if onRep != nil {
			onRep(rep, repPrice)
		}
	}

	n := float64(cfg.Paths * reps)
	meanPayoff := pooledSum / n
	variance := pooledSumSq/n - meanPayoff*meanPayoff
	if variance < 0 {
		variance = 0
	}

	return Result{
		Price:     stat.Mean(repPrices, nil),
		RepPrices: repPrices,
		StdErr:    discount * math.Sqrt(variance/n),
	}, nil
}
