// Package classify buckets balance-sheet fields into zakaatable-asset and
// deductible-liability totals under three methodologies.
package classify

import (
	"github.com/komsit37/zakat/pkg/zakat/resolve"
	"github.com/komsit37/zakat/pkg/zakat/types"
)

// Fallback reasons for records that cannot be classified.
const (
	ReasonNoData   = "No balance sheet data available"
	ReasonAllEmpty = "Balance sheet data all empty/NaN"
)

// Classify derives the bucket totals and net zakaatable amounts for one
// company. It never fails: unusable input yields a fallback-tagged result
// with the reason recorded for audit.
func Classify(b types.Bundle) types.Classified {
	c := types.Classified{Snapshot: b.Snapshot, BSDate: b.BSDate, BSType: b.BSType}

	if b.Err != "" {
		c.Fallback = &types.Fallback{Reason: b.Err}
		return c
	}
	if len(b.Record) == 0 {
		c.Fallback = &types.Fallback{Reason: ReasonNoData}
		return c
	}

	rec := b.Record

	// Current zakaatable assets. The combined cash+STI field is preferred;
	// when it resolves to zero the components are summed instead.
	cashSTI := field(rec, conceptCashSTI)
	if cashSTI == 0 {
		cashSTI = field(rec, conceptCash) + field(rec, conceptSTI)
	}
	receivables := field(rec, conceptReceivables)
	inventory := field(rec, conceptInventory)
	otherCurrent := field(rec, conceptOtherCurrent)

	assets := types.CurrentAssets{
		CashAndSTI:   cashSTI,
		Receivables:  receivables,
		Inventory:    inventory,
		OtherCurrent: otherCurrent,
		Total:        cashSTI + receivables + inventory + otherCurrent,
	}

	// Long-term financial holdings that remain liquid/sellable.
	ncInvestments := field(rec, conceptNCInvestments)
	ncDeferredTax := field(rec, conceptNCDeferredTax)
	ncReceivables := field(rec, conceptNCReceivables)
	ncLiquid := ncInvestments + ncDeferredTax + ncReceivables

	nonCurrent := types.NonCurrentAssets{
		Investments:      ncInvestments,
		DeferredTax:      ncDeferredTax,
		Receivables:      ncReceivables,
		LiquidTotal:      ncLiquid,
		TotalWithCurrent: assets.Total + ncLiquid,
	}

	// Deductible liabilities. AccountsPayable only: the broader "Payables"
	// field may bundle tax and accrued items that are counted separately.
	payables := field(rec, conceptPayables)
	currentDebt := field(rec, conceptCurrentDebt)
	if currentDebt == 0 {
		combined := field(rec, conceptDebtAndLease)
		lease := field(rec, conceptLease)
		currentDebt = combined - lease
		if currentDebt < 0 {
			currentDebt = 0
		}
	}
	accrued := field(rec, conceptAccrued)
	taxes := field(rec, conceptTaxes)

	liabilities := types.Liabilities{
		Payables:        payables,
		CurrentDebt:     currentDebt,
		AccruedExpenses: accrued,
		TaxesPayable:    taxes,
		Total:           payables + currentDebt + accrued + taxes,
	}

	// Six core items all at zero is indistinguishable from all-NaN source
	// data, so it is treated as missing rather than as a genuinely empty
	// balance sheet. Known limitation: a debt-free, receivables-free shell
	// company classifies as a fallback.
	if cashSTI == 0 && receivables == 0 && inventory == 0 &&
		otherCurrent == 0 && payables == 0 && currentDebt == 0 {
		c.Fallback = &types.Fallback{Reason: ReasonAllEmpty}
		return c
	}

	c.Buckets = &types.Buckets{
		Assets:        assets,
		NonCurrent:    nonCurrent,
		Liabilities:   liabilities,
		NetStrict:     clampZero(assets.Total - liabilities.Total),
		NetBroad:      clampZero(nonCurrent.TotalWithCurrent - liabilities.Total),
		NetAssetsOnly: nonCurrent.TotalWithCurrent,
	}
	return c
}

func field(rec types.Record, concept string) float64 {
	return resolve.Resolve(rec, 0, candidates[concept]...)
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
