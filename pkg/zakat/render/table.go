package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/zakat/pkg/zakat/pct"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// TableRenderer prints one table per portfolio with a fund-level footer.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, results []types.PortfolioResult, opts Options) error {
	for ri, res := range results {
		if strings.TrimSpace(res.Portfolio.Name) != "" {
			fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(res.Portfolio.Name)))
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleColoredDark)
		tw.Style().Options.DrawBorder = false
		tw.Style().Options.SeparateRows = false
		tw.Style().Options.SeparateColumns = false
		if opts.TableWidth > 0 {
			tw.SetAllowedRowLength(opts.TableWidth)
		}

		priceHdr := "PRICE"
		if opts.DisplayCurrency != "" {
			priceHdr = "PRICE " + strings.ToUpper(opts.DisplayCurrency)
		}
		tw.AppendHeader(table.Row{"TICKER", "NAME", "WEIGHT", "STRICT", "BROAD", "ASSETS-ONLY", priceHdr, "STATUS"})

		maxWidth := opts.MaxColWidth
		if maxWidth <= 0 {
			maxWidth = 40
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: maxWidth},
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 7, Align: text.AlignRight, AlignHeader: text.AlignRight},
		})

		for _, h := range res.Holdings {
			status := "OK"
			if h.Classified.IsFallback() {
				status = "FALLBACK"
			}
			if opts.Color {
				if status == "OK" {
					status = text.Colors{text.FgGreen}.Sprint(status)
				} else {
					status = text.Colors{text.FgRed}.Sprint(status)
				}
			}
			name := h.Holding.Name
			if name == "" {
				name = h.Classified.Snapshot.LongName
			}
			tw.AppendRow(table.Row{
				h.Holding.Ticker,
				name,
				fmt.Sprintf("%.2f%%", h.Holding.Weight),
				fmt.Sprintf("%.2f%%", h.Pcts.Strict),
				fmt.Sprintf("%.2f%%", h.Pcts.Broad),
				fmt.Sprintf("%.2f%%", h.Pcts.AssetsOnly),
				fmt.Sprintf("%.4f", h.PriceDisplay),
				status,
			})
		}

		tw.AppendFooter(table.Row{
			"FUND",
			fmt.Sprintf("cash %.2f%%", res.Portfolio.CashPct),
			fmt.Sprintf("%.2f%%", res.WeightSum),
			fmt.Sprintf("%.4f%%", res.Fund.Strict),
			fmt.Sprintf("%.4f%%", res.Fund.Broad),
			fmt.Sprintf("%.4f%%", res.Fund.AssetsOnly),
			"", "",
		})
		tw.Render()

		fmt.Fprintf(w, "fund zakaatable %%: strict=%.4f%%  broad=%.4f%%  assets_only=%.4f%%  (vs flat %.0f%% estimate)\n",
			res.Fund.Strict, res.Fund.Broad, res.Fund.AssetsOnly, pct.FallbackPct)
		if ri < len(results)-1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}
