package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Method selects which liquid-asset total a computation uses. The three
// methodologies run in lockstep over one generic path.
type Method int

const (
	// Strict uses current liquid assets minus deductible liabilities.
	Strict Method = iota
	// Broad adds long-term liquid holdings to the strict asset base.
	Broad
	// AssetsOnly uses the broad asset base without liability deduction.
	AssetsOnly
)

// Methods lists all methodologies in a fixed order.
var Methods = []Method{Strict, Broad, AssetsOnly}

func (m Method) String() string {
	switch m {
	case Broad:
		return "broad"
	case AssetsOnly:
		return "assets_only"
	default:
		return "strict"
	}
}

// Percentages carries one percentage per methodology.
type Percentages struct {
	Strict     float64
	Broad      float64
	AssetsOnly float64
}

// For returns the percentage for the given methodology.
func (p Percentages) For(m Method) float64 {
	switch m {
	case Broad:
		return p.Broad
	case AssetsOnly:
		return p.AssetsOnly
	default:
		return p.Strict
	}
}

// Set stores the percentage for the given methodology.
func (p *Percentages) Set(m Method, v float64) {
	switch m {
	case Broad:
		p.Broad = v
	case AssetsOnly:
		p.AssetsOnly = v
	default:
		p.Strict = v
	}
}

// Round4 rounds to 4 decimal places exactly. decimal.NewFromFloat panics on
// NaN and Inf, so those degrade to 0.
func Round4(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(4).InexactFloat64()
}
