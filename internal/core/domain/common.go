package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// LedgerQuery narrows a ledger listing. Zero values leave that dimension
// open; a zero Limit returns every matching entry.
type LedgerQuery struct {
	Branch   string
	Search   string
	Category string
	Limit    int
	Offset   int
}

// PayableDateLayout is the textual day/month/year form payable entry dates
// are stored and exchanged in.
const PayableDateLayout = "02/01/2006"

// RolloverPeriodLayout identifies an accounting period (one calendar month).
const RolloverPeriodLayout = "2006-01"
