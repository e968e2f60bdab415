package pct

import (
	"testing"

	"github.com/komsit37/zakat/pkg/zakat/fx"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

var usdOnly = fx.Table{"USD": 1}

func TestPercentage(t *testing.T) {
	gbpTable := fx.Table{"USD": 1, "GBP": 0.8}

	testCases := []struct {
		name       string
		net, mcap  float64
		fin, trade string
		rates      fx.Table
		want       float64
	}{
		{"strict scenario", 90, 1000, "USD", "USD", usdOnly, 9.0},
		{"full holding", 1000, 1000, "USD", "USD", usdOnly, 100},
		{"clamped above 100", 5000, 1000, "USD", "USD", usdOnly, 100},
		{"negative clamps to 0", -50, 1000, "USD", "USD", usdOnly, 0},
		{"zero market cap falls back", 90, 0, "USD", "USD", usdOnly, FallbackPct},
		{"negative market cap falls back", 90, -5, "USD", "USD", usdOnly, FallbackPct},
		// 100,000 GBP -> 125,000 USD over a 1.5m USD market cap
		{"gbp books, usd listing", 100000, 1500000, "GBP", "USD", gbpTable, 8.3333},
		// pence-quoted listing: market cap currency is pounds
		{"pence listing collapses to pounds", 100000, 1500000, "GBP", "GBp", gbpTable, 6.6667},
		{"rounding to 4 decimals", 1, 3, "USD", "USD", usdOnly, 33.3333},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percentage(tc.net, tc.mcap, tc.fin, tc.trade, tc.rates)
			if got != tc.want {
				t.Errorf("Percentage(%v, %v, %s, %s) = %v, want %v", tc.net, tc.mcap, tc.fin, tc.trade, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("percentage %v outside [0,100]", got)
			}
		})
	}
}

func TestComputeFallbackCompany(t *testing.T) {
	c := types.Classified{
		Snapshot: types.Snapshot{Ticker: "X", MarketCap: 1000},
		Fallback: &types.Fallback{Reason: "No balance sheet data available"},
	}
	p := Compute(c, usdOnly)
	want := types.Percentages{Strict: FallbackPct, Broad: FallbackPct, AssetsOnly: FallbackPct}
	if p != want {
		t.Errorf("Compute fallback = %+v, want all %v", p, FallbackPct)
	}
}

func TestComputeAllMethodologies(t *testing.T) {
	c := types.Classified{
		Snapshot: types.Snapshot{
			Ticker: "TEST", MarketCap: 1000,
			TradingCurrency: "USD", FinancialCurrency: "USD",
		},
		Buckets: &types.Buckets{NetStrict: 90, NetBroad: 150, NetAssetsOnly: 200},
	}
	p := Compute(c, usdOnly)
	want := types.Percentages{Strict: 9, Broad: 15, AssetsOnly: 20}
	if p != want {
		t.Errorf("Compute = %+v, want %+v", p, want)
	}
}

func TestComputeDegenerateMarketCap(t *testing.T) {
	c := types.Classified{
		Snapshot: types.Snapshot{Ticker: "X", TradingCurrency: "USD", FinancialCurrency: "USD"},
		Buckets:  &types.Buckets{NetStrict: 90, NetBroad: 90, NetAssetsOnly: 90},
	}
	p := Compute(c, usdOnly)
	if p.Strict != FallbackPct || p.Broad != FallbackPct || p.AssetsOnly != FallbackPct {
		t.Errorf("missing market cap should yield %v everywhere, got %+v", FallbackPct, p)
	}
}
