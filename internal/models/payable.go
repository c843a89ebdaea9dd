package models

import (
	"github.com/shopspring/decimal"
)

// Payable is the database row for a supplier payable ledger entry.
// entry_date keeps the DD/MM/YYYY display format the ledger was imported
// with; rolled_period records the last YYYY-MM a rollover touched the row,
// starting at the creation period.
type Payable struct {
	ID                 int64           `db:"id"`
	EntryDate          string          `db:"entry_date"`
	PayeeName          string          `db:"payee_name"`
	Branch             string          `db:"branch"`
	Category           string          `db:"category"`
	PriorBalance       decimal.Decimal `db:"prior_balance"`
	MonthlyCharge      decimal.Decimal `db:"monthly_charge"`
	TotalCharged       decimal.Decimal `db:"total_charged"`
	AmountPaid         decimal.Decimal `db:"amount_paid"`
	OutstandingDebt    decimal.Decimal `db:"outstanding_debt"`
	OutstandingAdvance decimal.Decimal `db:"outstanding_advance"`
	RolledPeriod       string          `db:"rolled_period"`
	AuditFields
}
