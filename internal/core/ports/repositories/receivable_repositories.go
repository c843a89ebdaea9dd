package repositories

import (
	"context"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
)

// ReceivableReader defines read operations for receivable ledger data
type ReceivableReader interface {
	// FindReceivableByID retrieves a specific receivable by its identifier.
	FindReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error)

	// ListReceivables retrieves receivables newest-first, narrowed by the
	// query's branch and free-text search.
	ListReceivables(ctx context.Context, query domain.LedgerQuery) ([]domain.Receivable, error)

	// FindReceivablesForReport retrieves the receivables matched by a balance
	// report filter. The date range applies to last_updated_at, inclusive on
	// both ends.
	FindReceivablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Receivable, error)
}

// ReceivableWriter defines write operations for receivable ledger data
type ReceivableWriter interface {
	// SaveReceivable persists a new receivable and returns the stored row,
	// including its assigned ID and audit timestamps.
	SaveReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error)

	// UpdateReceivable replaces an existing receivable's columns and returns
	// the stored row.
	UpdateReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error)

	// DeleteReceivable removes a receivable permanently.
	DeleteReceivable(ctx context.Context, receivableID int64) error
}

// ReceivableRepositoryFacade combines all receivable-related repository interfaces
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}
