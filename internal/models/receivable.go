package models

import (
	"github.com/shopspring/decimal"
)

// Receivable is the database row for a client receivable ledger entry.
// Derived columns (total_due, paid_total, outstanding) are persisted so the
// balance report can aggregate with plain SQL reads.
type Receivable struct {
	ID               int64           `db:"id"`
	ClientName       string          `db:"client_name"`
	TaxID            string          `db:"tax_id"`
	Phone            string          `db:"phone"`
	ContactName      string          `db:"contact_name"`
	ServiceType      string          `db:"service_type"`
	Branch           string          `db:"branch"`
	WorkforceSegment string          `db:"workforce_segment"`
	PriorMonths      int             `db:"prior_months"`
	PriorAmount      decimal.Decimal `db:"prior_amount"`
	MonthlyCharge    decimal.Decimal `db:"monthly_charge"`
	TotalDue         decimal.Decimal `db:"total_due"`
	PaidCash         decimal.Decimal `db:"paid_cash"`
	PaidBank         decimal.Decimal `db:"paid_bank"`
	PaidCard         decimal.Decimal `db:"paid_card"`
	PaidTotal        decimal.Decimal `db:"paid_total"`
	Outstanding      decimal.Decimal `db:"outstanding"`
	AuditFields
}
