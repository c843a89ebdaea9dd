package domain

import "github.com/shopspring/decimal"

// BalanceRow is one branch's reconciliation of the two ledgers. Rows are
// derived on every read and never persisted.
type BalanceRow struct {
	Branch         string           `json:"branch"`
	PriorCarry     decimal.Decimal  `json:"priorCarry"`
	MonthlyCharge  decimal.Decimal  `json:"monthlyCharge"`
	TotalDue       decimal.Decimal  `json:"totalDue"`
	Paid           PaymentBreakdown `json:"paid"`
	Outstanding    decimal.Decimal  `json:"outstanding"`
	MonthlyExpense decimal.Decimal  `json:"monthlyExpense"`
	NetProfit      decimal.Decimal  `json:"netProfit"`
}

// BalanceReport is the ordered per-branch rows plus a field-wise totals row.
type BalanceReport struct {
	Rows   []BalanceRow `json:"rows"`
	Totals BalanceRow   `json:"totals"`
}

// BalanceFilter narrows the aggregation. Branch is either AllBranches or one
// of the configured branch names. From/To bound the date filter inclusively;
// empty strings leave that side open. Dates are YYYY-MM-DD.
type BalanceFilter struct {
	Branch string
	From   string
	To     string
}

// AllBranches selects every configured branch in the balance report.
const AllBranches = "all"
