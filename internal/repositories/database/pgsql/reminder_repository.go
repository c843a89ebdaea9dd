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

type PgxReminderRepository struct {
	pool *pgxpool.Pool
}

// newPgxReminderRepository creates a new repository for reminder data.
func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{pool: pool}
}

// Ensure PgxReminderRepository implements portsrepo.ReminderRepositoryFacade
var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

const reminderColumns = `id, title, message, to_char(anchor_date, 'YYYY-MM-DD'), is_recurring, frequency, is_active,
	created_at, last_updated_at`

func toDomainReminder(m models.Reminder) domain.Reminder {
	return domain.Reminder{
		ID:          m.ID,
		Title:       m.Title,
		Message:     m.Message,
		Date:        m.Date,
		IsRecurring: m.IsRecurring,
		Frequency:   domain.ReminderFrequency(m.Frequency),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func scanReminder(row pgx.Row) (models.Reminder, error) {
	var m models.Reminder
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Message,
		&m.Date,
		&m.IsRecurring,
		&m.Frequency,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveReminder inserts a new reminder and returns the stored row.
func (r *PgxReminderRepository) SaveReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error) {
	query := `
		INSERT INTO reminders (title, message, anchor_date, is_recurring, frequency, is_active, created_at, last_updated_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, now(), now())
		RETURNING ` + reminderColumns + `;
	`
	m, err := scanReminder(r.pool.QueryRow(ctx, query,
		reminder.Title,
		reminder.Message,
		reminder.Date,
		reminder.IsRecurring,
		string(reminder.Frequency),
		reminder.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save reminder %q: %w", reminder.Title, err)
	}

	d := toDomainReminder(m)
	return &d, nil
}

// UpdateReminder replaces an existing reminder's columns and returns the stored row.
func (r *PgxReminderRepository) UpdateReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error) {
	query := `
		UPDATE reminders
		SET title = $2, message = $3, anchor_date = $4::date, is_recurring = $5, frequency = $6, is_active = $7,
			last_updated_at = now()
		WHERE id = $1
		RETURNING ` + reminderColumns + `;
	`
	m, err := scanReminder(r.pool.QueryRow(ctx, query,
		reminder.ID,
		reminder.Title,
		reminder.Message,
		reminder.Date,
		reminder.IsRecurring,
		string(reminder.Frequency),
		reminder.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reminder %d: %w", reminder.ID, err)
	}

	d := toDomainReminder(m)
	return &d, nil
}

// DeleteReminder removes a reminder permanently.
func (r *PgxReminderRepository) DeleteReminder(ctx context.Context, reminderID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reminders WHERE id = $1;`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", reminderID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReminderByID retrieves a reminder by its ID.
func (r *PgxReminderRepository) FindReminderByID(ctx context.Context, reminderID int64) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1;`

	m, err := scanReminder(r.pool.QueryRow(ctx, query, reminderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reminder by ID %d: %w", reminderID, err)
	}

	d := toDomainReminder(m)
	return &d, nil
}

// ListReminders retrieves every reminder, newest-first.
func (r *PgxReminderRepository) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders ORDER BY created_at DESC, id DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]domain.Reminder, 0)
	for rows.Next() {
		m, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder row: %w", err)
		}
		reminders = append(reminders, toDomainReminder(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder rows: %w", err)
	}
	return reminders, nil
}
