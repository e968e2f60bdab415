package classify

// Concepts name the balance-sheet quantities the classifier works with.
// Each maps to an ordered candidate key list; upstream schema drift is a
// data change here, not a code change in the classifier.
const (
	conceptCashSTI       = "cash_sti"
	conceptCash          = "cash"
	conceptSTI           = "short_term_investments"
	conceptReceivables   = "receivables"
	conceptInventory     = "inventory"
	conceptOtherCurrent  = "other_current"
	conceptNCInvestments = "nc_investments"
	conceptNCDeferredTax = "nc_deferred_tax"
	conceptNCReceivables = "nc_receivables"
	conceptPayables      = "payables"
	conceptCurrentDebt   = "current_debt"
	conceptDebtAndLease  = "debt_and_lease"
	conceptLease         = "lease"
	conceptAccrued       = "accrued"
	conceptTaxes         = "taxes"
)

var candidates = map[string][]string{
	conceptCashSTI:       {"CashCashEquivalentsAndShortTermInvestments"},
	conceptCash:          {"CashAndCashEquivalents", "CashEquivalents"},
	conceptSTI:           {"OtherShortTermInvestments", "AvailableForSaleSecurities"},
	conceptReceivables:   {"Receivables", "AccountsReceivable", "NetReceivables"},
	conceptInventory:     {"Inventory", "Inventories"},
	conceptOtherCurrent:  {"OtherCurrentAssets", "PrepaidAssets"},
	conceptNCInvestments: {"InvestmentsAndAdvances", "InvestmentinFinancialAssets"},
	conceptNCDeferredTax: {"NonCurrentDeferredTaxesAssets", "NonCurrentDeferredAssets"},
	conceptNCReceivables: {"NonCurrentAccountsReceivable"},
	conceptPayables:      {"AccountsPayable"},
	conceptCurrentDebt:   {"CurrentDebt"},
	conceptDebtAndLease:  {"CurrentDebtAndCapitalLeaseObligation"},
	conceptLease:         {"CurrentCapitalLeaseObligation"},
	conceptAccrued:       {"CurrentAccruedExpenses"},
	conceptTaxes:         {"TotalTaxPayable", "IncomeTaxPayable", "TaxesPayable"},
}

// FieldNames returns every candidate key the classifier may look up, in a
// stable order. The fetch layer uses it to request exactly the line items
// the classifier can consume.
func FieldNames() []string {
	order := []string{
		conceptCashSTI, conceptCash, conceptSTI,
		conceptReceivables, conceptInventory, conceptOtherCurrent,
		conceptNCInvestments, conceptNCDeferredTax, conceptNCReceivables,
		conceptPayables, conceptCurrentDebt, conceptDebtAndLease,
		conceptLease, conceptAccrued, conceptTaxes,
	}
	var names []string
	seen := map[string]struct{}{}
	for _, c := range order {
		for _, n := range candidates[c] {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	return names
}
