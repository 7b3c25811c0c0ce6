package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// BachelierCall prices a call on a normally distributed terminal level with
// mean forward, standard deviation stdDev and discount factor discount. This
// is the closed form the stochastic-variance prices collapse to when the
// volatility of variance vanishes.
func BachelierCall(forward, strike, stdDev, discount float64) float64 {
	if stdDev <= 0 {
		return discount * math.Max(forward-strike, 0)
	}
	d := (forward - strike) / stdDev
	return discount * ((forward-strike)*stdNormal.CDF(d) + stdDev*stdNormal.Prob(d))
}

// BachelierPut is the parity counterpart, kept for closed-form sanity checks.
func BachelierPut(forward, strike, stdDev, discount float64) float64 {
	return BachelierCall(forward, strike, stdDev, discount) - discount*(forward-strike)
}
