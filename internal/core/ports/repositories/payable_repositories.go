package repositories

import (
	"context"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
)

// PayableReader defines read operations for payable ledger data
type PayableReader interface {
	// FindPayableByID retrieves a specific payable by its identifier.
	FindPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error)

	// ListPayables retrieves payables newest-first, narrowed by the query's
	// branch, category and free-text search.
	ListPayables(ctx context.Context, query domain.LedgerQuery) ([]domain.Payable, error)

	// FindPayablesForReport retrieves the payables matched by a balance
	// report filter. The date range applies to entry_date, inclusive on both
	// ends.
	FindPayablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Payable, error)

	// FindPayablesPendingRollover retrieves payables whose rolled_period
	// differs from the given YYYY-MM period.
	FindPayablesPendingRollover(ctx context.Context, period string) ([]domain.Payable, error)
}

// PayableWriter defines write operations for payable ledger data
type PayableWriter interface {
	// SavePayable persists a new payable and returns the stored row,
	// including its assigned ID and audit timestamps.
	SavePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error)

	// UpdatePayable replaces an existing payable's columns and returns the
	// stored row.
	UpdatePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error)

	// ApplyRollover writes a payable's rolled state, guarded so a row already
	// stamped with the payable's RolledPeriod is left untouched. A guarded
	// miss is reported as apperrors.ErrNotFound.
	ApplyRollover(ctx context.Context, payable domain.Payable) (*domain.Payable, error)

	// DeletePayable removes a payable permanently.
	DeletePayable(ctx context.Context, payableID int64) error
}

// PayableRepositoryFacade combines all payable-related repository interfaces
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
}
