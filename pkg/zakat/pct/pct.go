// Package pct turns net zakaatable amounts into clamped percentages of
// market capitalization.
package pct

import (
	"github.com/komsit37/zakat/pkg/zakat/fx"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// FallbackPct is the fixed percentage used whenever a ratio cannot be
// formed from the source data.
const FallbackPct = 25.0

// Percentage converts a net amount in the financial currency into a
// percentage of market cap, clamped to [0,100] and rounded to 4 decimals.
// Without a positive market cap no ratio exists and the fallback applies.
func Percentage(net, marketCap float64, finCurrency, tradeCurrency string, rates fx.Table) float64 {
	if !(marketCap > 0) {
		return FallbackPct
	}
	// The market cap is denominated in the trading currency; Normalize
	// collapses a minor-unit quote code to its major unit.
	v := fx.Normalize(net, finCurrency, tradeCurrency, rates)
	p := v / marketCap * 100
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	return types.Round4(p)
}

// Compute evaluates all three methodologies for one classified company over
// the same market cap and currencies. Fallback companies get the fallback
// percentage across the board.
func Compute(c types.Classified, rates fx.Table) types.Percentages {
	var p types.Percentages
	if c.Fallback != nil {
		for _, m := range types.Methods {
			p.Set(m, FallbackPct)
		}
		return p
	}
	s := c.Snapshot
	for _, m := range types.Methods {
		p.Set(m, Percentage(c.Buckets.Net(m), s.MarketCap, s.FinancialCurrency, s.TradingCurrency, rates))
	}
	return p
}
