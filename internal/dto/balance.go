package dto

import (
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceReportParams defines query parameters for the balance report.
// From/To are YYYY-MM-DD and bound inclusively; empty leaves that side open.
type BalanceReportParams struct {
	Branch string `form:"branch,default=all"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// BalanceRowResponse is one branch's aggregated row in the balance report.
type BalanceRowResponse struct {
	Branch         string                  `json:"branch"`
	PriorCarry     decimal.Decimal         `json:"priorCarry"`
	MonthlyCharge  decimal.Decimal         `json:"monthlyCharge"`
	TotalDue       decimal.Decimal         `json:"totalDue"`
	Paid           domain.PaymentBreakdown `json:"paid"`
	Outstanding    decimal.Decimal         `json:"outstanding"`
	MonthlyExpense decimal.Decimal         `json:"monthlyExpense"`
	NetProfit      decimal.Decimal         `json:"netProfit"`
}

// BalanceReportResponse wraps the per-branch rows and the totals row.
type BalanceReportResponse struct {
	Rows   []BalanceRowResponse `json:"rows"`
	Totals BalanceRowResponse   `json:"totals"`
}

// ToBalanceRowResponse converts a domain.BalanceRow to BalanceRowResponse DTO
func ToBalanceRowResponse(row *domain.BalanceRow) BalanceRowResponse {
	return BalanceRowResponse{
		Branch:         row.Branch,
		PriorCarry:     row.PriorCarry,
		MonthlyCharge:  row.MonthlyCharge,
		TotalDue:       row.TotalDue,
		Paid:           row.Paid,
		Outstanding:    row.Outstanding,
		MonthlyExpense: row.MonthlyExpense,
		NetProfit:      row.NetProfit,
	}
}

// ToBalanceReportResponse converts a domain.BalanceReport to BalanceReportResponse DTO
func ToBalanceReportResponse(report *domain.BalanceReport) BalanceReportResponse {
	rows := make([]BalanceRowResponse, len(report.Rows))
	for i := range report.Rows {
		rows[i] = ToBalanceRowResponse(&report.Rows[i])
	}
	return BalanceReportResponse{
		Rows:   rows,
		Totals: ToBalanceRowResponse(&report.Totals),
	}
}
