package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriorPeriodCarry captures how many months a client has gone unpaid and the
// cumulative amount carried from those months.
type PriorPeriodCarry struct {
	Months int             `json:"months"`
	Amount decimal.Decimal `json:"amount"`
}

// PaymentBreakdown splits a receivable's collected payments by method.
// Total is derived from the three buckets and never entered directly.
type PaymentBreakdown struct {
	Total        decimal.Decimal `json:"total"`
	Cash         decimal.Decimal `json:"cash"`
	BankTransfer decimal.Decimal `json:"bankTransfer"`
	Card         decimal.Decimal `json:"card"`
}

// Receivable represents money owed to the business by a client for services
// rendered, one record per client-service relationship per branch.
//
// TotalDue, Paid.Total and Outstanding are derived fields: they are
// recomputed from their inputs on every mutation and the stored values never
// drift from the formula. Outstanding may be negative when a client has
// over-paid; receivables carry it as a single signed amount rather than the
// debt/advance split payables use.
type Receivable struct {
	ID               int64            `json:"id"`
	ClientName       string           `json:"clientName"`
	TaxID            string           `json:"taxID"`
	Phone            string           `json:"phone"`
	ContactName      string           `json:"contactName"`
	ServiceType      string           `json:"serviceType"`
	Branch           string           `json:"branch"`
	WorkforceSegment string           `json:"workforceSegment"`
	PriorCarry       PriorPeriodCarry `json:"priorCarry"`
	MonthlyCharge    decimal.Decimal  `json:"monthlyCharge"`
	TotalDue         decimal.Decimal  `json:"totalDue"`
	Paid             PaymentBreakdown `json:"paid"`
	Outstanding      decimal.Decimal  `json:"outstanding"`
	CreatedAt        time.Time        `json:"createdAt"`
	LastUpdatedAt    time.Time        `json:"lastUpdatedAt"`
}
