package simulation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Shocks draws two paths x steps matrices of correlated Brownian increments:
// dW1 = sqrt(dt) Z1 and dW2 = rho dW1 + sqrt(1-rho^2) sqrt(dt) Z2 with Z1, Z2
// independent standard normals. The sample correlation of the two streams
// tends to rho as the number of draws grows.
func Shocks(paths, steps int, rho, dt float64, rng *rand.Rand) (dW1, dW2 [][]float64, err error) {
	if math.Abs(rho) > 1 {
		return nil, nil, fmt.Errorf("correlation %g outside [-1, 1]", rho)
	}
	if paths <= 0 || steps <= 0 {
		return nil, nil, fmt.Errorf("shock matrix dimensions %dx%d must be positive", paths, steps)
	}
	if dt <= 0 {
		return nil, nil, fmt.Errorf("step size %g must be positive", dt)
	}

	sqrtDt := math.Sqrt(dt)
	orth := math.Sqrt(1 - rho*rho)

	dW1 = make([][]float64, paths)
	dW2 = make([][]float64, paths)
	for i := 0; i < paths; i++ {
		w1 := make([]float64, steps)
		w2 := make([]float64, steps)
		for j := 0; j < steps; j++ {
			w1[j] = sqrtDt * rng.NormFloat64()
			w2[j] = rho*w1[j] + orth*sqrtDt*rng.NormFloat64()
		}
		dW1[i] = w1
		dW2[i] = w2
	}
	return dW1, dW2, nil
}
