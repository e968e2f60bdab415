package types

// Record holds one company's balance-sheet line items keyed by source field
// name. Values are as reported; NaN marks a field that was present in the
// source but carried no number.
type Record map[string]float64

// Snapshot holds per-company market data for one run.
type Snapshot struct {
	Ticker            string
	LongName          string
	MarketCap         float64
	TradingCurrency   string
	FinancialCurrency string
	CurrentPrice      float64
}

// Bundle is the per-ticker unit the fetch layer hands to the classifier:
// either a populated balance-sheet record, or an unavailable marker with a
// human-readable reason in Err.
type Bundle struct {
	Snapshot Snapshot
	Record   Record
	BSDate   string // as-of date of the balance sheet used
	BSType   string // "quarterly" or "annual"
	Err      string // non-empty when no usable record could be obtained
}

// CurrentAssets is the current zakaatable asset bucket with its breakdown.
type CurrentAssets struct {
	CashAndSTI   float64
	Receivables  float64
	Inventory    float64
	OtherCurrent float64
	Total        float64
}

// NonCurrentAssets are long-term holdings still considered liquid, used by
// the broad methodology.
type NonCurrentAssets struct {
	Investments      float64
	DeferredTax      float64
	Receivables      float64
	LiquidTotal      float64
	TotalWithCurrent float64 // current total + liquid total, the broad asset base
}

// Liabilities is the deductible near-term obligation bucket.
type Liabilities struct {
	Payables        float64
	CurrentDebt     float64
	AccruedExpenses float64
	TaxesPayable    float64
	Total           float64
}

// Buckets carries the classified totals and the three net amounts derived
// from them. Amounts are in the company's financial currency.
type Buckets struct {
	Assets        CurrentAssets
	NonCurrent    NonCurrentAssets
	Liabilities   Liabilities
	NetStrict     float64
	NetBroad      float64
	NetAssetsOnly float64
}

// Net returns the net zakaatable amount for the given methodology.
func (b Buckets) Net(m Method) float64 {
	switch m {
	case Broad:
		return b.NetBroad
	case AssetsOnly:
		return b.NetAssetsOnly
	default:
		return b.NetStrict
	}
}

// Fallback marks a company whose source data was unusable. Downstream a
// fixed fallback percentage is used for every methodology.
type Fallback struct {
	Reason string
}

// Classified is the classifier output for one company. Exactly one of
// Buckets and Fallback is set.
type Classified struct {
	Snapshot Snapshot
	BSDate   string
	BSType   string
	Buckets  *Buckets
	Fallback *Fallback
}

// IsFallback reports whether the company is a data-fallback case.
func (c Classified) IsFallback() bool { return c.Fallback != nil }

// Holding is one entry of a portfolio specification.
type Holding struct {
	Ticker  string  `yaml:"ticker"`
	Name    string  `yaml:"name"`
	Country string  `yaml:"country"`
	Weight  float64 `yaml:"weight"`
}

// Portfolio is an ordered holdings list plus a cash allocation. Weights are
// expected to sum to 100 - CashPct; no normalization is ever applied.
type Portfolio struct {
	Name       string    `yaml:"name"`
	Benchmark  string    `yaml:"benchmark"`
	ReportDate string    `yaml:"report_date"`
	CashPct    float64   `yaml:"cash_pct"`
	Holdings   []Holding `yaml:"holdings"`
}

// HoldingResult is the per-company output carried forward for rendering and
// persistence.
type HoldingResult struct {
	Holding      Holding
	Classified   Classified
	Pcts         Percentages
	PriceDisplay float64 // current price converted to the display currency
}

// PortfolioResult is the fund-level output for one portfolio.
type PortfolioResult struct {
	Portfolio  Portfolio
	Holdings   []HoldingResult
	Fund       Percentages
	WeightSum  float64 // holdings weight sum + cash, for imbalance reporting
	ComputedAt string
}
