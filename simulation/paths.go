package simulation

import (
	"math"

	"github.com/MattaUmaMaheswaraReddy/QuantitativeFinance/models"
)

// Path holds one simulated trajectory: the raw variance recursion (allowed to
// dip below zero), the effective variance floored at the absorbing boundary,
// and the arithmetic asset level. The raw and effective series must stay
// separate: the drift mean-reverts on the raw state while the diffusion reads
// the floored one, and collapsing them changes the dynamics.
type Path struct {
	Raw       []float64
	Effective []float64
	Asset     []float64
}

func NewPath(steps int) *Path {
	return &Path{
		Raw:       make([]float64, steps+1),
		Effective: make([]float64, steps+1),
		Asset:     make([]float64, steps+1),
	}
}

// Terminal returns the asset level at maturity.
func (p *Path) Terminal() float64 {
	return p.Asset[len(p.Asset)-1]
}

// ZeroVarianceSteps counts steps spent on the absorbing boundary, making a
// persistently degenerate variance observable to callers.
func (p *Path) ZeroVarianceSteps() int {
	n := 0
	for _, v := range p.Effective {
		if v == 0 {
			n++
		}
	}
	return n
}

// SimulatePath advances the variance with the absorption Euler scheme and
// integrates the asset level over the supplied shock rows, writing into p.
// The rows must have equal length matching the path's step count.
//
//	raw[j+1] = raw[j] + kappa (theta - raw[j]) dt + xi sqrt(max(raw[j],0)) dW1[j]
//	effective[j+1] = max(raw[j+1], 0)
//	asset[j+1] = asset[j] + r dt + sqrt(effective[j]) dW2[j]
func SimulatePath(m *models.NormalHeston, s0, r, dt float64, dW1, dW2 []float64, p *Path) {
	steps := len(dW1)
	p.Raw[0] = m.V0
	p.Effective[0] = math.Max(m.V0, 0)
	p.Asset[0] = s0

	for j := 0; j < steps; j++ {
		raw := p.Raw[j]
		p.Raw[j+1] = raw + m.Kappa*(m.Theta-raw)*dt + m.Xi*math.Sqrt(math.Max(raw, 0))*dW1[j]
		p.Effective[j+1] = math.Max(p.Raw[j+1], 0)
		p.Asset[j+1] = p.Asset[j] + r*dt + math.Sqrt(p.Effective[j])*dW2[j]
	}
}
