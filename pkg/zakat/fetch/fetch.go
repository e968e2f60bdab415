// Package fetch obtains per-ticker market snapshots, balance-sheet records
// and FX rates, caching HTTP responses on disk with daily expiry.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	yfgo "github.com/komsit37/yf-go"

	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Options configures a Service.
type Options struct {
	CacheDir string        // HTTP response cache location
	Offline  bool          // serve cached responses only
	FxURL    string        // rate endpoint, DefaultFxURL when empty
	Delay    time.Duration // politeness delay between per-ticker fetches
	Timeout  time.Duration // per-request timeout for the quote client
}

// Service fetches company bundles sequentially with a politeness delay, and
// memoizes per-ticker results so a ticker shared by several portfolios is
// fetched once per run.
type Service struct {
	yf      *yfgo.Client
	http    *http.Client
	fxURL   string
	delay   time.Duration
	timeout time.Duration

	mu      sync.Mutex
	memo    map[string]types.Bundle
	fetched bool
}

func New(opts Options) *Service {
	if opts.FxURL == "" {
		opts.FxURL = DefaultFxURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Service{
		yf:      yfgo.NewClient(),
		http:    newCachingClient(opts.CacheDir, opts.Offline),
		fxURL:   opts.FxURL,
		delay:   opts.Delay,
		timeout: opts.Timeout,
		memo:    map[string]types.Bundle{},
	}
}

// Company returns the record bundle for one ticker. It never fails: when no
// usable data can be obtained the bundle carries the reason in Err and the
// classifier degrades it to a fallback holding.
func (s *Service) Company(ctx context.Context, ticker string) types.Bundle {
	s.mu.Lock()
	if b, ok := s.memo[ticker]; ok {
		s.mu.Unlock()
		return b
	}
	s.mu.Unlock()

	s.pace(ctx)
	b := s.fetchCompany(ctx, ticker)

	s.mu.Lock()
	s.memo[ticker] = b
	s.mu.Unlock()
	return b
}

// pace sleeps the politeness delay between consecutive network fetches.
func (s *Service) pace(ctx context.Context) {
	s.mu.Lock()
	first := !s.fetched
	s.fetched = true
	s.mu.Unlock()
	if first || s.delay <= 0 {
		return
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (s *Service) fetchCompany(ctx context.Context, ticker string) types.Bundle {
	snap := types.Snapshot{Ticker: ticker, TradingCurrency: "USD"}

	var shares float64
	q, qerr := s.quote(ctx, ticker)
	if qerr == nil {
		snap.MarketCap = q.MarketCap
		snap.CurrentPrice = q.RegularMarketPrice
		shares = q.SharesOutstanding
		if q.Currency != "" {
			snap.TradingCurrency = q.Currency
		}
		snap.FinancialCurrency = q.FinancialCurrency
		if q.LongName != "" {
			snap.LongName = q.LongName
		} else {
			snap.LongName = q.ShortName
		}
	}
	s.fillPrice(ctx, ticker, &snap)

	if snap.FinancialCurrency == "" {
		snap.FinancialCurrency = snap.TradingCurrency
	}
	if snap.LongName == "" {
		snap.LongName = ticker
	}
	// reconstruct a missing market cap from shares x price
	if snap.MarketCap == 0 && shares > 0 && snap.CurrentPrice > 0 {
		snap.MarketCap = shares * snap.CurrentPrice
	}

	rec, bsDate, bsType, err := s.balanceSheet(ctx, ticker)
	if err != nil {
		return types.Bundle{Snapshot: snap, Err: fmt.Sprintf("fetch balance sheet: %v", err)}
	}
	return types.Bundle{Snapshot: snap, Record: rec, BSDate: bsDate, BSType: bsType}
}

// yahooQuote is the flat summary shape of the v7 quote endpoint.
type yahooQuote struct {
	MarketCap          float64 `json:"marketCap"`
	Currency           string  `json:"currency"`
	FinancialCurrency  string  `json:"financialCurrency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	SharesOutstanding  float64 `json:"sharesOutstanding"`
	LongName           string  `json:"longName"`
	ShortName          string  `json:"shortName"`
}

func (s *Service) quote(ctx context.Context, ticker string) (yahooQuote, error) {
	addr := "https://query1.finance.yahoo.com/v7/finance/quote?symbols=" + url.QueryEscape(ticker)
	var payload struct {
		QuoteResponse struct {
			Result []yahooQuote `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := jwget(ctx, s.http, addr, &payload); err != nil {
		return yahooQuote{}, err
	}
	if len(payload.QuoteResponse.Result) == 0 {
		return yahooQuote{}, fmt.Errorf("no quote data for %s", ticker)
	}
	return payload.QuoteResponse.Result[0], nil
}

// fillPrice overlays the quoteSummary price module on the snapshot. The
// typed client carries its own session handling, so it can succeed when the
// flat quote endpoint does not.
func (s *Service) fillPrice(ctx context.Context, ticker string, snap *types.Snapshot) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	res, err := s.yf.QuoteSummaryTyped(cctx, ticker, []yfgo.QuoteSummaryModule{yfgo.ModulePrice})
	if err != nil || res.Price == nil {
		return
	}
	if p := res.Price.RegularMarketPrice; p.Raw != nil {
		snap.CurrentPrice = *p.Raw
	}
	if snap.LongName == "" {
		if res.Price.LongName != "" {
			snap.LongName = res.Price.LongName
		} else if res.Price.ShortName != "" {
			snap.LongName = res.Price.ShortName
		}
	}
}
