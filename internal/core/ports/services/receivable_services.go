package services

import (
	"context"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
)

// ReceivableReaderSvc defines read operations for the receivables ledger
type ReceivableReaderSvc interface {
	// GetReceivableByID retrieves a specific receivable by its identifier.
	GetReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error)

	// ListReceivables retrieves receivables newest-first, narrowed by the
	// query's branch and free-text search.
	ListReceivables(ctx context.Context, query domain.LedgerQuery) ([]domain.Receivable, error)
}

// ReceivableWriterSvc defines write operations for the receivables ledger
type ReceivableWriterSvc interface {
	// CreateReceivable validates and persists a new receivable. The derived
	// amounts (total due, paid total, outstanding) are computed here and
	// never accepted from the caller.
	CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest) (*domain.Receivable, error)

	// UpdateReceivable applies a partial update and recomputes the derived
	// amounts from the merged state.
	UpdateReceivable(ctx context.Context, receivableID int64, req dto.UpdateReceivableRequest) (*domain.Receivable, error)

	// DeleteReceivable removes a receivable permanently.
	DeleteReceivable(ctx context.Context, receivableID int64) error
}

// ReceivableSvcFacade combines all receivable-related service interfaces
type ReceivableSvcFacade interface {
	ReceivableReaderSvc
	ReceivableWriterSvc
}
