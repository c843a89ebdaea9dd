package dto

import (
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePayableRequest defines the data needed to create a payable.
// EntryDate is DD/MM/YYYY. The derived amounts (total charged, outstanding
// debt/advance) are computed server-side and intentionally absent.
type CreatePayableRequest struct {
	EntryDate     string          `json:"entryDate" binding:"required"`
	PayeeName     string          `json:"payeeName" binding:"required"`
	Branch        string          `json:"branch"` // Optional, defaults to the configured branch
	Category      string          `json:"category"`
	PriorBalance  decimal.Decimal `json:"priorBalance"`
	MonthlyCharge decimal.Decimal `json:"monthlyCharge"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
}

// UpdatePayableRequest defines the data allowed for updating a payable.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePayableRequest struct {
	EntryDate     *string          `json:"entryDate"`
	PayeeName     *string          `json:"payeeName"`
	Branch        *string          `json:"branch"`
	Category      *string          `json:"category"`
	PriorBalance  *decimal.Decimal `json:"priorBalance"`
	MonthlyCharge *decimal.Decimal `json:"monthlyCharge"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
}

// PayableResponse defines the data returned for a payable.
// Mirrors domain.Payable.
type PayableResponse struct {
	ID                 int64           `json:"id"`
	EntryDate          string          `json:"entryDate"`
	PayeeName          string          `json:"payeeName"`
	Branch             string          `json:"branch"`
	Category           string          `json:"category"`
	PriorBalance       decimal.Decimal `json:"priorBalance"`
	MonthlyCharge      decimal.Decimal `json:"monthlyCharge"`
	TotalCharged       decimal.Decimal `json:"totalCharged"`
	AmountPaid         decimal.Decimal `json:"amountPaid"`
	OutstandingDebt    decimal.Decimal `json:"outstandingDebt"`
	OutstandingAdvance decimal.Decimal `json:"outstandingAdvance"`
	RolledPeriod       string          `json:"rolledPeriod,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
}

// ToPayableResponse converts a domain.Payable to PayableResponse DTO
func ToPayableResponse(p *domain.Payable) PayableResponse {
	return PayableResponse{
		ID:                 p.ID,
		EntryDate:          p.EntryDate,
		PayeeName:          p.PayeeName,
		Branch:             p.Branch,
		Category:           p.Category,
		PriorBalance:       p.PriorBalance,
		MonthlyCharge:      p.MonthlyCharge,
		TotalCharged:       p.TotalCharged,
		AmountPaid:         p.AmountPaid,
		OutstandingDebt:    p.OutstandingDebt,
		OutstandingAdvance: p.OutstandingAdvance,
		RolledPeriod:       p.RolledPeriod,
		CreatedAt:          p.CreatedAt,
		LastUpdatedAt:      p.LastUpdatedAt,
	}
}

// ToListPayableResponse converts a slice of domain.Payable to response DTOs
func ToListPayableResponse(payables []domain.Payable) []PayableResponse {
	res := make([]PayableResponse, len(payables))
	for i := range payables {
		res[i] = ToPayableResponse(&payables[i])
	}
	return res
}

// ListPayablesParams defines query parameters for listing payables.
type ListPayablesParams struct {
	Branch   string `form:"branch"`
	Category string `form:"category"`
	Search   string `form:"search"`
	Limit    int    `form:"limit,default=0"`
	Offset   int    `form:"offset,default=0"`
}

// RolloverResponse summarises a rollover run for API consumers.
type RolloverResponse struct {
	Period  string `json:"period"`
	Rolled  int    `json:"rolled"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// ToRolloverResponse converts a domain.RolloverResult to RolloverResponse DTO
func ToRolloverResponse(r *domain.RolloverResult) RolloverResponse {
	return RolloverResponse{
		Period:  r.Period,
		Rolled:  r.Rolled,
		Skipped: r.Skipped,
		Failed:  r.Failed,
	}
}
