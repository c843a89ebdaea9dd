package services

import (
	"context"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
)

// PayableReaderSvc defines read operations for the payables ledger
type PayableReaderSvc interface {
	// GetPayableByID retrieves a specific payable by its identifier.
	GetPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error)

	// ListPayables retrieves payables newest-first, narrowed by the query's
	// branch, category and free-text search.
	ListPayables(ctx context.Context, query domain.LedgerQuery) ([]domain.Payable, error)
}

// PayableWriterSvc defines write operations for the payables ledger
type PayableWriterSvc interface {
	// CreatePayable validates and persists a new payable. The derived
	// amounts (total charged, outstanding debt, outstanding advance) are
	// computed here and never accepted from the caller.
	CreatePayable(ctx context.Context, req dto.CreatePayableRequest) (*domain.Payable, error)

	// UpdatePayable applies a partial update and recomputes the derived
	// amounts from the merged state.
	UpdatePayable(ctx context.Context, payableID int64, req dto.UpdatePayableRequest) (*domain.Payable, error)

	// DeletePayable removes a payable permanently.
	DeletePayable(ctx context.Context, payableID int64) error
}

// PayableRolloverSvc defines the monthly rollover operation
type PayableRolloverSvc interface {
	// RunRollover folds every payable's monthly charge into its prior
	// balance for the month containing now, resetting the monthly charge and
	// paid amount. Rows already stamped with the period are skipped, so the
	// operation is idempotent within a month.
	RunRollover(ctx context.Context, now time.Time) (*domain.RolloverResult, error)
}

// PayableSvcFacade combines all payable-related service interfaces
type PayableSvcFacade interface {
	PayableReaderSvc
	PayableWriterSvc
	PayableRolloverSvc
}
