package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	"github.com/BalansDev/branch_accounting_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPayableRepository struct {
	pool *pgxpool.Pool
}

// newPgxPayableRepository creates a new repository for payable ledger data.
func newPgxPayableRepository(pool *pgxpool.Pool) portsrepo.PayableRepositoryFacade {
	return &PgxPayableRepository{pool: pool}
}

// Ensure PgxPayableRepository implements portsrepo.PayableRepositoryFacade
var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

// entry_date is a DATE column; it is exchanged as DD/MM/YYYY text at the
// repository boundary so the wire format stays what the ledger was imported
// with.
const payableColumns = `id, to_char(entry_date, 'DD/MM/YYYY'), payee_name, branch, category,
	prior_balance, monthly_charge, total_charged, amount_paid, outstanding_debt, outstanding_advance,
	rolled_period, created_at, last_updated_at`

// Helper to convert domain.Payable to models.Payable for DB storage
func toModelPayable(d domain.Payable) models.Payable {
	return models.Payable{
		ID:                 d.ID,
		EntryDate:          d.EntryDate,
		PayeeName:          d.PayeeName,
		Branch:             d.Branch,
		Category:           d.Category,
		PriorBalance:       d.PriorBalance,
		MonthlyCharge:      d.MonthlyCharge,
		TotalCharged:       d.TotalCharged,
		AmountPaid:         d.AmountPaid,
		OutstandingDebt:    d.OutstandingDebt,
		OutstandingAdvance: d.OutstandingAdvance,
		RolledPeriod:       d.RolledPeriod,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.Payable from DB to domain.Payable
func toDomainPayable(m models.Payable) domain.Payable {
	return domain.Payable{
		ID:                 m.ID,
		EntryDate:          m.EntryDate,
		PayeeName:          m.PayeeName,
		Branch:             m.Branch,
		Category:           m.Category,
		PriorBalance:       m.PriorBalance,
		MonthlyCharge:      m.MonthlyCharge,
		TotalCharged:       m.TotalCharged,
		AmountPaid:         m.AmountPaid,
		OutstandingDebt:    m.OutstandingDebt,
		OutstandingAdvance: m.OutstandingAdvance,
		RolledPeriod:       m.RolledPeriod,
		CreatedAt:          m.CreatedAt,
		LastUpdatedAt:      m.LastUpdatedAt,
	}
}

func scanPayable(row pgx.Row) (models.Payable, error) {
	var m models.Payable
	err := row.Scan(
		&m.ID,
		&m.EntryDate,
		&m.PayeeName,
		&m.Branch,
		&m.Category,
		&m.PriorBalance,
		&m.MonthlyCharge,
		&m.TotalCharged,
		&m.AmountPaid,
		&m.OutstandingDebt,
		&m.OutstandingAdvance,
		&m.RolledPeriod,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SavePayable inserts a new payable and returns the stored row.
func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	m := toModelPayable(payable)

	query := `
		INSERT INTO payables (entry_date, payee_name, branch, category, prior_balance, monthly_charge,
			total_charged, amount_paid, outstanding_debt, outstanding_advance, rolled_period, created_at, last_updated_at)
		VALUES (to_date($1, 'DD/MM/YYYY'), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		RETURNING ` + payableColumns + `;
	`
	saved, err := scanPayable(r.pool.QueryRow(ctx, query,
		m.EntryDate,
		m.PayeeName,
		m.Branch,
		m.Category,
		m.PriorBalance,
		m.MonthlyCharge,
		m.TotalCharged,
		m.AmountPaid,
		m.OutstandingDebt,
		m.OutstandingAdvance,
		m.RolledPeriod,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save payable for %q: %w", m.PayeeName, err)
	}

	d := toDomainPayable(saved)
	return &d, nil
}

// UpdatePayable replaces an existing payable's columns and returns the stored row.
func (r *PgxPayableRepository) UpdatePayable(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	m := toModelPayable(payable)

	query := `
		UPDATE payables
		SET entry_date = to_date($2, 'DD/MM/YYYY'), payee_name = $3, branch = $4, category = $5,
			prior_balance = $6, monthly_charge = $7, total_charged = $8, amount_paid = $9,
			outstanding_debt = $10, outstanding_advance = $11, rolled_period = $12,
			last_updated_at = now()
		WHERE id = $1
		RETURNING ` + payableColumns + `;
	`
	saved, err := scanPayable(r.pool.QueryRow(ctx, query,
		m.ID,
		m.EntryDate,
		m.PayeeName,
		m.Branch,
		m.Category,
		m.PriorBalance,
		m.MonthlyCharge,
		m.TotalCharged,
		m.AmountPaid,
		m.OutstandingDebt,
		m.OutstandingAdvance,
		m.RolledPeriod,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payable %d: %w", m.ID, err)
	}

	d := toDomainPayable(saved)
	return &d, nil
}

// ApplyRollover writes a payable's rolled state. The guard leaves rows that a
// concurrent run already stamped with the same period untouched, reported as
// apperrors.ErrNotFound.
func (r *PgxPayableRepository) ApplyRollover(ctx context.Context, payable domain.Payable) (*domain.Payable, error) {
	m := toModelPayable(payable)

	query := `
		UPDATE payables
		SET prior_balance = $2, monthly_charge = $3, total_charged = $4, amount_paid = $5,
			outstanding_debt = $6, outstanding_advance = $7, rolled_period = $8,
			last_updated_at = now()
		WHERE id = $1 AND rolled_period IS DISTINCT FROM $8
		RETURNING ` + payableColumns + `;
	`
	saved, err := scanPayable(r.pool.QueryRow(ctx, query,
		m.ID,
		m.PriorBalance,
		m.MonthlyCharge,
		m.TotalCharged,
		m.AmountPaid,
		m.OutstandingDebt,
		m.OutstandingAdvance,
		m.RolledPeriod,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to roll payable %d: %w", m.ID, err)
	}

	d := toDomainPayable(saved)
	return &d, nil
}

// DeletePayable removes a payable permanently.
func (r *PgxPayableRepository) DeletePayable(ctx context.Context, payableID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payables WHERE id = $1;`, payableID)
	if err != nil {
		return fmt.Errorf("failed to delete payable %d: %w", payableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPayableByID retrieves a payable by its ID.
func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, payableID int64) (*domain.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE id = $1;`

	m, err := scanPayable(r.pool.QueryRow(ctx, query, payableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payable by ID %d: %w", payableID, err)
	}

	d := toDomainPayable(m)
	return &d, nil
}

// ListPayables retrieves payables newest-first, narrowed by branch, category
// and a free-text search over the payee column. A zero limit returns every
// matching entry.
func (r *PgxPayableRepository) ListPayables(ctx context.Context, q domain.LedgerQuery) ([]domain.Payable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE ($1 = '' OR branch = $1)
			AND ($2 = '' OR category = $2)
			AND ($3 = '' OR payee_name ILIKE '%' || $3 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($4, 0) OFFSET $5;
	`
	rows, err := r.pool.Query(ctx, query, q.Branch, q.Category, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	defer rows.Close()

	return collectPayables(rows)
}

// FindPayablesForReport retrieves the payables matched by a balance report
// filter. The date range applies to entry_date, inclusive on both ends.
func (r *PgxPayableRepository) FindPayablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Payable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE ($1 = '' OR $1 = 'all' OR branch = $1)
			AND ($2 = '' OR entry_date >= $2::date)
			AND ($3 = '' OR entry_date <= $3::date)
		ORDER BY created_at DESC, id DESC;
	`
	rows, err := r.pool.Query(ctx, query, filter.Branch, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query payables for report: %w", err)
	}
	defer rows.Close()

	return collectPayables(rows)
}

// FindPayablesPendingRollover retrieves payables whose rolled_period differs
// from the given YYYY-MM period.
func (r *PgxPayableRepository) FindPayablesPendingRollover(ctx context.Context, period string) ([]domain.Payable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM payables
		WHERE rolled_period IS DISTINCT FROM $1
		ORDER BY id;
	`
	rows, err := r.pool.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("failed to query payables pending rollover: %w", err)
	}
	defer rows.Close()

	return collectPayables(rows)
}

func collectPayables(rows pgx.Rows) ([]domain.Payable, error) {
	payables := make([]domain.Payable, 0)
	for rows.Next() {
		m, err := scanPayable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payable row: %w", err)
		}
		payables = append(payables, toDomainPayable(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payable rows: %w", err)
	}
	return payables, nil
}
