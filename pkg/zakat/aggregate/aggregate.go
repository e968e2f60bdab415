// Package aggregate folds per-holding percentages into fund-level results.
package aggregate

import (
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// DueRate is the zakat levy applied to the zakaatable share of a position.
const DueRate = 0.025

// Weighted pairs a holding's portfolio weight with its percentage for one
// methodology.
type Weighted struct {
	Weight float64 // percent of portfolio
	Pct    float64 // holding zakaatable percentage
}

// Fund folds weighted holding percentages plus the cash allocation (cash is
// fully zakaatable) into one fund-level percentage, rounded to 4 decimals.
// Weights are taken as given: an imbalanced weight set flows through to the
// result so callers can see the data-quality issue instead of having it
// hidden by normalization.
func Fund(cashPct float64, holdings []Weighted) float64 {
	sum := cashPct
	for _, h := range holdings {
		sum += h.Weight / 100 * h.Pct
	}
	return types.Round4(sum)
}

// FundPercentages runs Fund independently for each methodology over the
// same weight set.
func FundPercentages(cashPct float64, results []types.HoldingResult) types.Percentages {
	var out types.Percentages
	for _, m := range types.Methods {
		hs := make([]Weighted, 0, len(results))
		for _, r := range results {
			hs = append(hs, Weighted{Weight: r.Holding.Weight, Pct: r.Pcts.For(m)})
		}
		out.Set(m, Fund(cashPct, hs))
	}
	return out
}

// WeightSum reports cash + holding weights and whether they add up to 100
// within a small tolerance. The aggregate itself is never corrected.
func WeightSum(cashPct float64, holdings []types.Holding) (total float64, balanced bool) {
	total = cashPct
	for _, h := range holdings {
		total += h.Weight
	}
	diff := total - 100
	if diff < 0 {
		diff = -diff
	}
	return types.Round4(total), diff < 0.01
}

// Due computes the zakat owed on a position value given the fund-level
// zakaatable percentage.
func Due(value, fundPct float64) float64 {
	return value * fundPct / 100 * DueRate
}
