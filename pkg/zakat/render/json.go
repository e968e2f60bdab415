package render

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// portfolioModel is the persisted output shape for one portfolio. Field
// names are stable: the HTML calculator pages read them verbatim.
type portfolioModel struct {
	FundName          string         `json:"fund_name"`
	Benchmark         string         `json:"benchmark,omitempty"`
	ReportDate        string         `json:"report_date,omitempty"`
	FundCashPct       float64        `json:"fund_cash_pct"`
	FundPct           float64        `json:"fund_zakaatable_pct"`
	FundPctBroad      float64        `json:"fund_zakaatable_pct_broad"`
	FundPctAssetsOnly float64        `json:"fund_zakaatable_pct_assets_only"`
	WeightSum         float64        `json:"weight_sum"`
	ComputedAt        string         `json:"computed_at"`
	Holdings          []holdingModel `json:"holdings"`
}

type holdingModel struct {
	Name              string  `json:"name"`
	Ticker            string  `json:"ticker"`
	Country           string  `json:"country,omitempty"`
	Weight            float64 `json:"weight"`
	Pct               float64 `json:"zakaatable_pct"`
	PctBroad          float64 `json:"zakaatable_pct_broad"`
	PctAssetsOnly     float64 `json:"zakaatable_pct_assets_only"`
	Fallback          bool    `json:"fallback"`
	Error             string  `json:"error,omitempty"`
	BSDate            string  `json:"bs_date,omitempty"`
	BSType            string  `json:"bs_type,omitempty"`
	MarketCap         float64 `json:"market_cap"`
	TradingCurrency   string  `json:"trading_currency"`
	FinancialCurrency string  `json:"financial_currency"`
	CurrentPrice      float64 `json:"current_price"`
	PriceDisplay      float64 `json:"price_display"`

	Assets        *assetsModel      `json:"assets,omitempty"`
	AssetsBroad   *assetsBroadModel `json:"assets_broad,omitempty"`
	Liabilities   *liabilitiesModel `json:"liabilities,omitempty"`
	Net           float64           `json:"net_zakaatable"`
	NetBroad      float64           `json:"net_zakaatable_broad"`
	NetAssetsOnly float64           `json:"net_zakaatable_assets_only"`
}

type assetsModel struct {
	CashAndSTI   float64 `json:"cash_and_sti"`
	Receivables  float64 `json:"receivables"`
	Inventory    float64 `json:"inventory"`
	OtherCurrent float64 `json:"other_current"`
	Total        float64 `json:"total"`
}

type assetsBroadModel struct {
	NCInvestments      float64 `json:"nc_investments"`
	NCDeferredTaxAsset float64 `json:"nc_deferred_tax_asset"`
	NCReceivables      float64 `json:"nc_receivables"`
	NCLiquidTotal      float64 `json:"nc_liquid_total"`
	Total              float64 `json:"total"`
}

type liabilitiesModel struct {
	Payables        float64 `json:"payables"`
	CurrentDebt     float64 `json:"current_debt"`
	AccruedExpenses float64 `json:"accrued_expenses"`
	TaxesPayable    float64 `json:"taxes_payable"`
	Total           float64 `json:"total"`
}

func model(res types.PortfolioResult) portfolioModel {
	out := portfolioModel{
		FundName:          res.Portfolio.Name,
		Benchmark:         res.Portfolio.Benchmark,
		ReportDate:        res.Portfolio.ReportDate,
		FundCashPct:       res.Portfolio.CashPct,
		FundPct:           res.Fund.Strict,
		FundPctBroad:      res.Fund.Broad,
		FundPctAssetsOnly: res.Fund.AssetsOnly,
		WeightSum:         res.WeightSum,
		ComputedAt:        res.ComputedAt,
		Holdings:          make([]holdingModel, 0, len(res.Holdings)),
	}
	for _, h := range res.Holdings {
		c := h.Classified
		hm := holdingModel{
			Name:              h.Holding.Name,
			Ticker:            h.Holding.Ticker,
			Country:           h.Holding.Country,
			Weight:            h.Holding.Weight,
			Pct:               h.Pcts.Strict,
			PctBroad:          h.Pcts.Broad,
			PctAssetsOnly:     h.Pcts.AssetsOnly,
			Fallback:          c.IsFallback(),
			BSDate:            c.BSDate,
			BSType:            c.BSType,
			MarketCap:         c.Snapshot.MarketCap,
			TradingCurrency:   c.Snapshot.TradingCurrency,
			FinancialCurrency: c.Snapshot.FinancialCurrency,
			CurrentPrice:      c.Snapshot.CurrentPrice,
			PriceDisplay:      h.PriceDisplay,
		}
		if hm.Name == "" {
			hm.Name = c.Snapshot.LongName
		}
		if c.Fallback != nil {
			hm.Error = c.Fallback.Reason
		}
		if b := c.Buckets; b != nil {
			hm.Assets = &assetsModel{
				CashAndSTI:   b.Assets.CashAndSTI,
				Receivables:  b.Assets.Receivables,
				Inventory:    b.Assets.Inventory,
				OtherCurrent: b.Assets.OtherCurrent,
				Total:        b.Assets.Total,
			}
			hm.AssetsBroad = &assetsBroadModel{
				NCInvestments:      b.NonCurrent.Investments,
				NCDeferredTaxAsset: b.NonCurrent.DeferredTax,
				NCReceivables:      b.NonCurrent.Receivables,
				NCLiquidTotal:      b.NonCurrent.LiquidTotal,
				Total:              b.NonCurrent.TotalWithCurrent,
			}
			hm.Liabilities = &liabilitiesModel{
				Payables:        b.Liabilities.Payables,
				CurrentDebt:     b.Liabilities.CurrentDebt,
				AccruedExpenses: b.Liabilities.AccruedExpenses,
				TaxesPayable:    b.Liabilities.TaxesPayable,
				Total:           b.Liabilities.Total,
			}
			hm.Net = b.NetStrict
			hm.NetBroad = b.NetBroad
			hm.NetAssetsOnly = b.NetAssetsOnly
		}
		out.Holdings = append(out.Holdings, hm)
	}
	return out
}

// WriteJSON writes the self-describing result document for one portfolio.
func WriteJSON(w io.Writer, res types.PortfolioResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(model(res))
}

// Slug derives the file-name stem for a portfolio name.
func Slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "_")
	if s == "" {
		return "portfolio"
	}
	return s
}
