package services

import (
	"context"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
)

// ReminderReaderSvc defines read operations for reminders
type ReminderReaderSvc interface {
	// GetReminderByID retrieves a specific reminder by its identifier.
	GetReminderByID(ctx context.Context, reminderID int64) (*domain.Reminder, error)

	// ListReminders retrieves every reminder, newest-first.
	ListReminders(ctx context.Context) ([]domain.Reminder, error)

	// ListDueReminders retrieves the active reminders due on the given day
	// according to their frequency.
	ListDueReminders(ctx context.Context, on time.Time) ([]domain.Reminder, error)
}

// ReminderWriterSvc defines write operations for reminders
type ReminderWriterSvc interface {
	// CreateReminder validates and persists a new reminder.
	CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*domain.Reminder, error)

	// UpdateReminder applies a partial update to an existing reminder.
	UpdateReminder(ctx context.Context, reminderID int64, req dto.UpdateReminderRequest) (*domain.Reminder, error)

	// DeleteReminder removes a reminder permanently.
	DeleteReminder(ctx context.Context, reminderID int64) error
}

// ReminderSvcFacade combines all reminder-related service interfaces
type ReminderSvcFacade interface {
	ReminderReaderSvc
	ReminderWriterSvc
}
