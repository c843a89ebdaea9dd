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

type PgxReceivableRepository struct {
	pool *pgxpool.Pool
}

// newPgxReceivableRepository creates a new repository for receivable ledger data.
func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{pool: pool}
}

// Ensure PgxReceivableRepository implements portsrepo.ReceivableRepositoryFacade
var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

const receivableColumns = `id, client_name, tax_id, phone, contact_name, service_type, branch, workforce_segment,
	prior_months, prior_amount, monthly_charge, total_due, paid_cash, paid_bank, paid_card, paid_total, outstanding,
	created_at, last_updated_at`

// Helper to convert domain.Receivable to models.Receivable for DB storage
func toModelReceivable(d domain.Receivable) models.Receivable {
	return models.Receivable{
		ID:               d.ID,
		ClientName:       d.ClientName,
		TaxID:            d.TaxID,
		Phone:            d.Phone,
		ContactName:      d.ContactName,
		ServiceType:      d.ServiceType,
		Branch:           d.Branch,
		WorkforceSegment: d.WorkforceSegment,
		PriorMonths:      d.PriorCarry.Months,
		PriorAmount:      d.PriorCarry.Amount,
		MonthlyCharge:    d.MonthlyCharge,
		TotalDue:         d.TotalDue,
		PaidCash:         d.Paid.Cash,
		PaidBank:         d.Paid.BankTransfer,
		PaidCard:         d.Paid.Card,
		PaidTotal:        d.Paid.Total,
		Outstanding:      d.Outstanding,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.Receivable from DB to domain.Receivable
func toDomainReceivable(m models.Receivable) domain.Receivable {
	return domain.Receivable{
		ID:               m.ID,
		ClientName:       m.ClientName,
		TaxID:            m.TaxID,
		Phone:            m.Phone,
		ContactName:      m.ContactName,
		ServiceType:      m.ServiceType,
		Branch:           m.Branch,
		WorkforceSegment: m.WorkforceSegment,
		PriorCarry: domain.PriorPeriodCarry{
			Months: m.PriorMonths,
			Amount: m.PriorAmount,
		},
		MonthlyCharge: m.MonthlyCharge,
		TotalDue:      m.TotalDue,
		Paid: domain.PaymentBreakdown{
			Total:        m.PaidTotal,
			Cash:         m.PaidCash,
			BankTransfer: m.PaidBank,
			Card:         m.PaidCard,
		},
		Outstanding:   m.Outstanding,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func scanReceivable(row pgx.Row) (models.Receivable, error) {
	var m models.Receivable
	err := row.Scan(
		&m.ID,
		&m.ClientName,
		&m.TaxID,
		&m.Phone,
		&m.ContactName,
		&m.ServiceType,
		&m.Branch,
		&m.WorkforceSegment,
		&m.PriorMonths,
		&m.PriorAmount,
		&m.MonthlyCharge,
		&m.TotalDue,
		&m.PaidCash,
		&m.PaidBank,
		&m.PaidCard,
		&m.PaidTotal,
		&m.Outstanding,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveReceivable inserts a new receivable and returns the stored row.
func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	m := toModelReceivable(receivable)

	query := `
		INSERT INTO receivables (client_name, tax_id, phone, contact_name, service_type, branch, workforce_segment,
			prior_months, prior_amount, monthly_charge, total_due, paid_cash, paid_bank, paid_card, paid_total, outstanding,
			created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now(), now())
		RETURNING ` + receivableColumns + `;
	`
	saved, err := scanReceivable(r.pool.QueryRow(ctx, query,
		m.ClientName,
		m.TaxID,
		m.Phone,
		m.ContactName,
		m.ServiceType,
		m.Branch,
		m.WorkforceSegment,
		m.PriorMonths,
		m.PriorAmount,
		m.MonthlyCharge,
		m.TotalDue,
		m.PaidCash,
		m.PaidBank,
		m.PaidCard,
		m.PaidTotal,
		m.Outstanding,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save receivable for %q: %w", m.ClientName, err)
	}

	d := toDomainReceivable(saved)
	return &d, nil
}

// UpdateReceivable replaces an existing receivable's columns and returns the stored row.
func (r *PgxReceivableRepository) UpdateReceivable(ctx context.Context, receivable domain.Receivable) (*domain.Receivable, error) {
	m := toModelReceivable(receivable)

	query := `
		UPDATE receivables
		SET client_name = $2, tax_id = $3, phone = $4, contact_name = $5, service_type = $6, branch = $7,
			workforce_segment = $8, prior_months = $9, prior_amount = $10, monthly_charge = $11, total_due = $12,
			paid_cash = $13, paid_bank = $14, paid_card = $15, paid_total = $16, outstanding = $17,
			last_updated_at = now()
		WHERE id = $1
		RETURNING ` + receivableColumns + `;
	`
	saved, err := scanReceivable(r.pool.QueryRow(ctx, query,
		m.ID,
		m.ClientName,
		m.TaxID,
		m.Phone,
		m.ContactName,
		m.ServiceType,
		m.Branch,
		m.WorkforceSegment,
		m.PriorMonths,
		m.PriorAmount,
		m.MonthlyCharge,
		m.TotalDue,
		m.PaidCash,
		m.PaidBank,
		m.PaidCard,
		m.PaidTotal,
		m.Outstanding,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update receivable %d: %w", m.ID, err)
	}

	d := toDomainReceivable(saved)
	return &d, nil
}

// DeleteReceivable removes a receivable permanently.
func (r *PgxReceivableRepository) DeleteReceivable(ctx context.Context, receivableID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM receivables WHERE id = $1;`, receivableID)
	if err != nil {
		return fmt.Errorf("failed to delete receivable %d: %w", receivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReceivableByID retrieves a receivable by its ID.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE id = $1;`

	m, err := scanReceivable(r.pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receivable by ID %d: %w", receivableID, err)
	}

	d := toDomainReceivable(m)
	return &d, nil
}

// ListReceivables retrieves receivables newest-first, narrowed by branch and
// a free-text search over the client, contact and tax id columns. A zero
// limit returns every matching entry.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, q domain.LedgerQuery) ([]domain.Receivable, error) {
	query := `
		SELECT ` + receivableColumns + `
		FROM receivables
		WHERE ($1 = '' OR branch = $1)
			AND ($2 = '' OR client_name ILIKE '%' || $2 || '%'
				OR contact_name ILIKE '%' || $2 || '%'
				OR tax_id ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($3, 0) OFFSET $4;
	`
	rows, err := r.pool.Query(ctx, query, q.Branch, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	return collectReceivables(rows)
}

// FindReceivablesForReport retrieves the receivables matched by a balance
// report filter. The date range applies to last_updated_at, inclusive on both
// ends.
func (r *PgxReceivableRepository) FindReceivablesForReport(ctx context.Context, filter domain.BalanceFilter) ([]domain.Receivable, error) {
	query := `
		SELECT ` + receivableColumns + `
		FROM receivables
		WHERE ($1 = '' OR $1 = 'all' OR branch = $1)
			AND ($2 = '' OR last_updated_at >= $2::date)
			AND ($3 = '' OR last_updated_at < $3::date + interval '1 day')
		ORDER BY created_at DESC, id DESC;
	`
	rows, err := r.pool.Query(ctx, query, filter.Branch, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivables for report: %w", err)
	}
	defer rows.Close()

	return collectReceivables(rows)
}

func collectReceivables(rows pgx.Rows) ([]domain.Receivable, error) {
	receivables := make([]domain.Receivable, 0)
	for rows.Next() {
		m, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receivable row: %w", err)
		}
		receivables = append(receivables, toDomainReceivable(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receivable rows: %w", err)
	}
	return receivables, nil
}
