package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

func sampleResult() types.PortfolioResult {
	ok := types.Classified{
		Snapshot: types.Snapshot{
			Ticker: "AAPL", LongName: "Apple Inc.", MarketCap: 1000,
			TradingCurrency: "USD", FinancialCurrency: "USD", CurrentPrice: 200,
		},
		BSDate: "2026-03-31",
		BSType: "quarterly",
		Buckets: &types.Buckets{
			Assets:        types.CurrentAssets{CashAndSTI: 100, Receivables: 20, Total: 120},
			NonCurrent:    types.NonCurrentAssets{TotalWithCurrent: 120},
			Liabilities:   types.Liabilities{Payables: 30, Total: 30},
			NetStrict:     90,
			NetBroad:      90,
			NetAssetsOnly: 120,
		},
	}
	fb := types.Classified{
		Snapshot: types.Snapshot{Ticker: "FAIL", TradingCurrency: "USD", FinancialCurrency: "USD"},
		Fallback: &types.Fallback{Reason: "No balance sheet data available"},
	}
	return types.PortfolioResult{
		Portfolio: types.Portfolio{Name: "Pension", CashPct: 10},
		Holdings: []types.HoldingResult{
			{
				Holding:      types.Holding{Ticker: "AAPL", Name: "Apple", Weight: 60},
				Classified:   ok,
				Pcts:         types.Percentages{Strict: 9, Broad: 9, AssetsOnly: 12},
				PriceDisplay: 160,
			},
			{
				Holding: types.Holding{Ticker: "FAIL", Weight: 30},
				Classified: fb,
				Pcts:       types.Percentages{Strict: 25, Broad: 25, AssetsOnly: 25},
			},
		},
		Fund:       types.Percentages{Strict: 22.9, Broad: 22.9, AssetsOnly: 24.7},
		WeightSum:  100,
		ComputedAt: "2026-08-24T00:00:00Z",
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc["fund_name"] != "Pension" {
		t.Errorf("fund_name = %v", doc["fund_name"])
	}
	if doc["fund_zakaatable_pct"] != 22.9 {
		t.Errorf("fund_zakaatable_pct = %v", doc["fund_zakaatable_pct"])
	}

	holdings := doc["holdings"].([]any)
	if len(holdings) != 2 {
		t.Fatalf("got %d holdings", len(holdings))
	}

	first := holdings[0].(map[string]any)
	if first["fallback"] != false {
		t.Error("first holding should not be a fallback")
	}
	assets := first["assets"].(map[string]any)
	if assets["cash_and_sti"] != 100.0 || assets["total"] != 120.0 {
		t.Errorf("assets breakdown wrong: %v", assets)
	}
	if first["net_zakaatable"] != 90.0 {
		t.Errorf("net_zakaatable = %v", first["net_zakaatable"])
	}
	if first["bs_date"] != "2026-03-31" || first["bs_type"] != "quarterly" {
		t.Errorf("provenance wrong: %v %v", first["bs_date"], first["bs_type"])
	}

	second := holdings[1].(map[string]any)
	if second["fallback"] != true {
		t.Error("second holding should be a fallback")
	}
	if second["error"] != "No balance sheet data available" {
		t.Errorf("error = %v", second["error"])
	}
	if _, ok := second["assets"]; ok {
		t.Error("fallback holding must not carry bucket data")
	}
	// fallback holding with no explicit name takes the snapshot name or ticker
	if second["zakaatable_pct"] != 25.0 {
		t.Errorf("zakaatable_pct = %v", second["zakaatable_pct"])
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"Pension", "pension"},
		{"Global Growth Fund", "global_growth_fund"},
		{"  spaced   out  ", "spaced_out"},
		{"", "portfolio"},
	}
	for _, tc := range testCases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableRenderer().Render(&buf, []types.PortfolioResult{sampleResult()}, Options{DisplayCurrency: "GBP"})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"PENSION", "AAPL", "FALLBACK", "strict=22.9000%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}
