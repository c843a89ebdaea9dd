package repositories

import (
	"context"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
)

// ReminderReader defines read operations for reminder data
type ReminderReader interface {
	// FindReminderByID retrieves a specific reminder by its identifier.
	FindReminderByID(ctx context.Context, reminderID int64) (*domain.Reminder, error)

	// ListReminders retrieves every reminder, newest-first.
	ListReminders(ctx context.Context) ([]domain.Reminder, error)
}

// ReminderWriter defines write operations for reminder data
type ReminderWriter interface {
	// SaveReminder persists a new reminder and returns the stored row.
	SaveReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error)

	// UpdateReminder replaces an existing reminder's columns and returns the
	// stored row.
	UpdateReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error)

	// DeleteReminder removes a reminder permanently.
	DeleteReminder(ctx context.Context, reminderID int64) error
}

// ReminderRepositoryFacade combines all reminder-related repository interfaces
type ReminderRepositoryFacade interface {
	ReminderReader
	ReminderWriter
}
