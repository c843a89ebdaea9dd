package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payable represents money the business owes a payee (vendor, staff or other
// expense), one record per expense line per branch.
//
// TotalCharged, OutstandingDebt and OutstandingAdvance are derived fields.
// OutstandingDebt and OutstandingAdvance are mutually exclusive: the split of
// TotalCharged - AmountPaid lands in exactly one of them, the other stays
// zero.
type Payable struct {
	ID            int64           `json:"id"`
	EntryDate     string          `json:"entryDate"` // DD/MM/YYYY
	PayeeName     string          `json:"payeeName"`
	Branch        string          `json:"branch"`
	Category      string          `json:"category"`
	PriorBalance  decimal.Decimal `json:"priorBalance"`
	MonthlyCharge decimal.Decimal `json:"monthlyCharge"`
	TotalCharged  decimal.Decimal `json:"totalCharged"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	// OutstandingDebt is what is still owed to the payee; OutstandingAdvance
	// is what the payee owes back after an over-payment.
	OutstandingDebt    decimal.Decimal `json:"outstandingDebt"`
	OutstandingAdvance decimal.Decimal `json:"outstandingAdvance"`
	// RolledPeriod records the accounting period (YYYY-MM) this record was
	// last rolled into, stamped with the creation period on insert. The
	// rollover skips records already stamped with the current period, so a
	// record first rolls at the month boundary after it was entered and
	// re-running the check within a month is a no-op.
	RolledPeriod  string    `json:"rolledPeriod"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// RolloverResult summarises one run of the monthly rollover over the payable
// ledger.
type RolloverResult struct {
	Period  string `json:"period"`
	Rolled  int    `json:"rolled"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}
