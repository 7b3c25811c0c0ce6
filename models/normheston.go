package models

import (
	"fmt"
	"math"
	"math/cmplx"
)

// NormalHeston describes an asset whose level follows arithmetic dynamics
// dS = r dt + sqrt(v) dW2 with a CIR-type stochastic variance
// dv = kappa (theta - v) dt + xi sqrt(v) dW1, corr(dW1, dW2) = rho.
type NormalHeston struct {
	V0    float64 // Initial variance
	Kappa float64 // Mean reversion speed of variance
	Theta float64 // Long-term variance
	Xi    float64 // Volatility of variance
	Rho   float64 // Correlation between asset level and variance shocks
}

func NewNormalHeston(v0, kappa, theta, xi, rho float64) (*NormalHeston, error) {
	if math.Abs(rho) > 1 {
		return nil, fmt.Errorf("correlation %g outside [-1, 1]", rho)
	}
	if v0 < 0 {
		return nil, fmt.Errorf("initial variance %g is negative", v0)
	}
	if xi < 0 {
		return nil, fmt.Errorf("volatility of variance %g is negative", xi)
	}
	return &NormalHeston{
		V0:    v0,
		Kappa: kappa,
		Theta: theta,
		Xi:    xi,
		Rho:   rho,
	}, nil
}

// CharacteristicFunction evaluates E[exp(i phi S_T)] for the terminal asset
// level under the affine solution of the model. It accepts complex phi so the
// damped Fourier pricer can shift the contour below the real axis.
//
// The complex square root and logarithm use principal branches; with
// g = (beta-d)/(beta+d) the argument of the log stays clear of the negative
// real axis along the frequency grid, so the branch is continuous there.
func (m *NormalHeston) CharacteristicFunction(phi complex128, s0, r, q, t float64) complex128 {
	if m.Xi == 0 {
		// Deterministic variance: terminal level is Gaussian.
		mu := complex(m.TerminalMean(s0, r, q, t), 0)
		v := complex(m.TerminalVariance(t), 0)
		return cmplx.Exp(1i*phi*mu - 0.5*phi*phi*v)
	}

	xi2 := complex(m.Xi*m.Xi, 0)
	beta := complex(m.Kappa, 0) - 1i*phi*complex(m.Rho*m.Xi, 0)
	d := cmplx.Sqrt(xi2*phi*phi + beta*beta)
	g := (beta - d) / (beta + d)
	ed := cmplx.Exp(-d * complex(t, 0))

	dd := (beta - d) / xi2 * (1 - ed) / (1 - g*ed)
	cc := -1i*phi*complex((r-q)*t, 0) +
		complex(m.Kappa*m.Theta/(m.Xi*m.Xi), 0)*
			((beta-d)*complex(t, 0)-2*cmplx.Log((1-g*ed)/(1-g)))

	return cmplx.Exp(cc + dd*complex(m.V0, 0) + 1i*phi*complex(s0, 0))
}

// TerminalMean returns E[S_T] implied by the characteristic function's drift
// term. The sign convention on (r-q) follows the affine solution.
func (m *NormalHeston) TerminalMean(s0, r, q, t float64) float64 {
	return s0 - (r-q)*t
}

// TerminalVariance returns Var[S_T] when the variance path is replaced by its
// expectation, i.e. the integrated mean variance of the CIR process. It is
// exact in the xi = 0 limit and anchors the degenerate-case checks.
func (m *NormalHeston) TerminalVariance(t float64) float64 {
	if m.Kappa == 0 {
		return m.V0 * t
	}
	decay := (1 - math.Exp(-m.Kappa*t)) / m.Kappa
	return m.Theta*(t-decay) + m.V0*decay
}
