package dto

import (
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceivableRequest defines the data needed to create a receivable.
// The derived amounts (total due, paid total, outstanding) are computed
// server-side and intentionally absent.
type CreateReceivableRequest struct {
	ClientName       string          `json:"clientName" binding:"required"`
	TaxID            string          `json:"taxID"`
	Phone            string          `json:"phone"`
	ContactName      string          `json:"contactName"`
	ServiceType      string          `json:"serviceType"`
	Branch           string          `json:"branch"` // Optional, defaults to the configured branch
	WorkforceSegment string          `json:"workforceSegment"`
	PriorMonths      int             `json:"priorMonths"`
	PriorAmount      decimal.Decimal `json:"priorAmount"`
	MonthlyCharge    decimal.Decimal `json:"monthlyCharge"`
	PaidCash         decimal.Decimal `json:"paidCash"`
	PaidBankTransfer decimal.Decimal `json:"paidBankTransfer"`
	PaidCard         decimal.Decimal `json:"paidCard"`
}

// UpdateReceivableRequest defines the data allowed for updating a receivable.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateReceivableRequest struct {
	ClientName       *string          `json:"clientName"`
	TaxID            *string          `json:"taxID"`
	Phone            *string          `json:"phone"`
	ContactName      *string          `json:"contactName"`
	ServiceType      *string          `json:"serviceType"`
	Branch           *string          `json:"branch"`
	WorkforceSegment *string          `json:"workforceSegment"`
	PriorMonths      *int             `json:"priorMonths"`
	PriorAmount      *decimal.Decimal `json:"priorAmount"`
	MonthlyCharge    *decimal.Decimal `json:"monthlyCharge"`
	PaidCash         *decimal.Decimal `json:"paidCash"`
	PaidBankTransfer *decimal.Decimal `json:"paidBankTransfer"`
	PaidCard         *decimal.Decimal `json:"paidCard"`
}

// ReceivableResponse defines the data returned for a receivable.
// Mirrors domain.Receivable.
type ReceivableResponse struct {
	ID               int64                   `json:"id"`
	ClientName       string                  `json:"clientName"`
	TaxID            string                  `json:"taxID"`
	Phone            string                  `json:"phone"`
	ContactName      string                  `json:"contactName"`
	ServiceType      string                  `json:"serviceType"`
	Branch           string                  `json:"branch"`
	WorkforceSegment string                  `json:"workforceSegment"`
	PriorCarry       domain.PriorPeriodCarry `json:"priorCarry"`
	MonthlyCharge    decimal.Decimal         `json:"monthlyCharge"`
	TotalDue         decimal.Decimal         `json:"totalDue"`
	Paid             domain.PaymentBreakdown `json:"paid"`
	Outstanding      decimal.Decimal         `json:"outstanding"`
	CreatedAt        time.Time               `json:"createdAt"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
}

// ToReceivableResponse converts a domain.Receivable to ReceivableResponse DTO
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:               r.ID,
		ClientName:       r.ClientName,
		TaxID:            r.TaxID,
		Phone:            r.Phone,
		ContactName:      r.ContactName,
		ServiceType:      r.ServiceType,
		Branch:           r.Branch,
		WorkforceSegment: r.WorkforceSegment,
		PriorCarry:       r.PriorCarry,
		MonthlyCharge:    r.MonthlyCharge,
		TotalDue:         r.TotalDue,
		Paid:             r.Paid,
		Outstanding:      r.Outstanding,
		CreatedAt:        r.CreatedAt,
		LastUpdatedAt:    r.LastUpdatedAt,
	}
}

// ToListReceivableResponse converts a slice of domain.Receivable to response DTOs
func ToListReceivableResponse(receivables []domain.Receivable) []ReceivableResponse {
	res := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		res[i] = ToReceivableResponse(&receivables[i])
	}
	return res
}

// ListReceivablesParams defines query parameters for listing receivables.
type ListReceivablesParams struct {
	Branch string `form:"branch"`
	Search string `form:"search"`
	Limit  int    `form:"limit,default=0"`
	Offset int    `form:"offset,default=0"`
}
