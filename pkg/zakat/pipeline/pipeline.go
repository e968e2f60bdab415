// Package pipeline orchestrates one batch recomputation: load portfolios,
// fetch market data, classify, compute percentages, aggregate and render.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/komsit37/zakat/pkg/zakat/aggregate"
	"github.com/komsit37/zakat/pkg/zakat/classify"
	"github.com/komsit37/zakat/pkg/zakat/fx"
	"github.com/komsit37/zakat/pkg/zakat/pct"
	"github.com/komsit37/zakat/pkg/zakat/render"
	"github.com/komsit37/zakat/pkg/zakat/source"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Fetcher obtains the immutable per-run inputs: the FX table and one record
// bundle per ticker.
type Fetcher interface {
	Rates(ctx context.Context) (fx.Table, error)
	Company(ctx context.Context, ticker string) types.Bundle
}

type Runner struct {
	Source   source.Source
	Fetcher  Fetcher
	Renderer render.Renderer
	Writer   io.Writer
}

type ExecuteOptions struct {
	Only            string // case-insensitive substring filter on portfolio names
	DisplayCurrency string
	OutDir          string
	TemplateDir     string
	NoHTML          bool
	Color           bool
	MaxColWidth     int
	TableWidth      int
}

// company is the computed state shared by every portfolio holding a ticker.
type company struct {
	classified   types.Classified
	pcts         types.Percentages
	priceDisplay float64
}

func (r *Runner) Execute(ctx context.Context, spec string, opts ExecuteOptions) error {
	portfolios, err := r.Source.Load(ctx, spec)
	if err != nil {
		return err
	}
	if opts.Only != "" {
		kept := portfolios[:0]
		for _, p := range portfolios {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(opts.Only)) {
				kept = append(kept, p)
			}
		}
		portfolios = kept
	}
	if len(portfolios) == 0 {
		return fmt.Errorf("no portfolios to compute")
	}

	rates, err := r.Fetcher.Rates(ctx)
	if err != nil {
		return err
	}

	// One fetch per unique ticker, in input order.
	var tickers []string
	seen := map[string]struct{}{}
	for _, p := range portfolios {
		for _, h := range p.Holdings {
			if _, ok := seen[h.Ticker]; ok {
				continue
			}
			seen[h.Ticker] = struct{}{}
			tickers = append(tickers, h.Ticker)
		}
	}

	fmt.Fprintf(r.Writer, "fetching %d unique tickers across %d portfolios\n", len(tickers), len(portfolios))
	companies := make(map[string]company, len(tickers))
	var warnings []string
	for i, t := range tickers {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(r.Writer, "  [%d/%d] %s... ", i+1, len(tickers), t)

		b := r.Fetcher.Company(ctx, t)
		c := classify.Classify(b)
		p := pct.Compute(c, rates)
		price := types.Round4(fx.ConvertPrice(c.Snapshot.CurrentPrice, c.Snapshot.TradingCurrency, opts.DisplayCurrency, rates))
		companies[t] = company{classified: c, pcts: p, priceDisplay: price}

		if c.IsFallback() {
			fmt.Fprintf(r.Writer, "WARNING: %s\n", c.Fallback.Reason)
			warnings = append(warnings, fmt.Sprintf("%s: %s", t, c.Fallback.Reason))
		} else {
			fmt.Fprintf(r.Writer, "OK (strict net: %.0f)\n", c.Buckets.NetStrict)
		}
	}
	fmt.Fprintln(r.Writer)

	computedAt := time.Now().UTC().Format(time.RFC3339)
	results := make([]types.PortfolioResult, 0, len(portfolios))
	for _, p := range portfolios {
		holdings := make([]types.HoldingResult, 0, len(p.Holdings))
		for _, h := range p.Holdings {
			c := companies[h.Ticker]
			holdings = append(holdings, types.HoldingResult{
				Holding:      h,
				Classified:   c.classified,
				Pcts:         c.pcts,
				PriceDisplay: c.priceDisplay,
			})
		}
		total, balanced := aggregate.WeightSum(p.CashPct, p.Holdings)
		if !balanced && total != p.CashPct {
			// account-style lists carry no weights at all; only a weighted
			// set that misses 100 is worth flagging
			fmt.Fprintf(r.Writer, "warning: %s cash + weights sum to %.4f, not 100\n", p.Name, total)
		}
		results = append(results, types.PortfolioResult{
			Portfolio:  p,
			Holdings:   holdings,
			Fund:       aggregate.FundPercentages(p.CashPct, holdings),
			WeightSum:  total,
			ComputedAt: computedAt,
		})
	}

	if err := r.Renderer.Render(r.Writer, results, render.Options{
		Color:           opts.Color,
		MaxColWidth:     opts.MaxColWidth,
		DisplayCurrency: opts.DisplayCurrency,
		TableWidth:      opts.TableWidth,
	}); err != nil {
		return err
	}

	if err := r.persist(results, opts); err != nil {
		return err
	}

	if len(warnings) > 0 {
		fmt.Fprintf(r.Writer, "\n%d tickers had issues:\n", len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(r.Writer, "  %s\n", w)
		}
	}
	return nil
}

// persist writes one JSON document per portfolio, and an HTML page when a
// matching template exists.
func (r *Runner) persist(results []types.PortfolioResult, opts ExecuteOptions) error {
	if opts.OutDir == "" {
		return nil
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}
	for _, res := range results {
		slug := render.Slug(res.Portfolio.Name)

		jsonPath := filepath.Join(opts.OutDir, slug+"_zakat.json")
		f, err := os.Create(jsonPath)
		if err != nil {
			return err
		}
		err = render.WriteJSON(f, res)
		f.Close()
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Writer, "wrote %s\n", jsonPath)

		if opts.NoHTML {
			continue
		}
		tmpl := filepath.Join(opts.TemplateDir, slug+"_template.html")
		if _, err := os.Stat(tmpl); err != nil {
			continue // no template, no page
		}
		htmlPath := filepath.Join(opts.OutDir, slug+".html")
		if err := render.BuildHTML(tmpl, htmlPath, res); err != nil {
			return err
		}
		fmt.Fprintf(r.Writer, "wrote %s\n", htmlPath)
	}
	return nil
}
