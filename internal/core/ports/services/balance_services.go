package services

import (
	"context"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
)

// BalanceSvcFacade defines the per-branch balance report
type BalanceSvcFacade interface {
	// GetBalanceReport aggregates the receivable and payable ledgers into
	// one row per active branch plus a totals row, honouring the filter's
	// branch and inclusive date range.
	GetBalanceReport(ctx context.Context, filter domain.BalanceFilter) (*domain.BalanceReport, error)
}
