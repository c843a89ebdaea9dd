package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portsrepo "github.com/BalansDev/branch_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
)

// reminderServiceImpl implements the ReminderSvcFacade interface
type reminderServiceImpl struct {
	BaseService
	reminderRepo portsrepo.ReminderRepositoryFacade
}

// NewReminderServiceImpl creates a new reminder service.
func NewReminderServiceImpl(repo portsrepo.ReminderRepositoryFacade) portssvc.ReminderSvcFacade {
	return &reminderServiceImpl{reminderRepo: repo}
}

// Ensure reminderServiceImpl implements the ReminderSvcFacade interface
var _ portssvc.ReminderSvcFacade = (*reminderServiceImpl)(nil)

func (s *reminderServiceImpl) CreateReminder(ctx context.Context, req dto.CreateReminderRequest) (*domain.Reminder, error) {
	if err := validateReminder(req.Title, req.Date, req.IsRecurring, req.Frequency); err != nil {
		s.LogError(ctx, err, "Reminder rejected by validation",
			slog.String("title", req.Title))
		return nil, err
	}

	reminder := domain.Reminder{
		Title:       strings.TrimSpace(req.Title),
		Message:     req.Message,
		Date:        req.Date,
		IsRecurring: req.IsRecurring,
		Frequency:   domain.ReminderFrequency(req.Frequency),
		IsActive:    true,
	}

	saved, err := s.reminderRepo.SaveReminder(ctx, reminder)
	if err != nil {
		s.LogError(ctx, err, "Failed to save reminder",
			slog.String("title", reminder.Title))
		return nil, err
	}

	s.LogInfo(ctx, "Reminder created successfully",
		slog.Int64("reminder_id", saved.ID))
	return saved, nil
}

func (s *reminderServiceImpl) UpdateReminder(ctx context.Context, reminderID int64, req dto.UpdateReminderRequest) (*domain.Reminder, error) {
	existing, err := s.reminderRepo.FindReminderByID(ctx, reminderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find reminder for update",
			slog.Int64("reminder_id", reminderID))
		return nil, err
	}

	merged := *existing
	if req.Title != nil {
		merged.Title = strings.TrimSpace(*req.Title)
	}
	if req.Message != nil {
		merged.Message = *req.Message
	}
	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.IsRecurring != nil {
		merged.IsRecurring = *req.IsRecurring
	}
	if req.Frequency != nil {
		merged.Frequency = domain.ReminderFrequency(*req.Frequency)
	}
	if req.IsActive != nil {
		merged.IsActive = *req.IsActive
	}

	if err := validateReminder(merged.Title, merged.Date, merged.IsRecurring, string(merged.Frequency)); err != nil {
		s.LogError(ctx, err, "Reminder update rejected by validation",
			slog.Int64("reminder_id", reminderID))
		return nil, err
	}

	updated, err := s.reminderRepo.UpdateReminder(ctx, merged)
	if err != nil {
		s.LogError(ctx, err, "Failed to update reminder",
			slog.Int64("reminder_id", reminderID))
		return nil, err
	}

	s.LogInfo(ctx, "Reminder updated successfully",
		slog.Int64("reminder_id", updated.ID))
	return updated, nil
}

func (s *reminderServiceImpl) DeleteReminder(ctx context.Context, reminderID int64) error {
	if err := s.reminderRepo.DeleteReminder(ctx, reminderID); err != nil {
		s.LogError(ctx, err, "Failed to delete reminder",
			slog.Int64("reminder_id", reminderID))
		return err
	}
	s.LogInfo(ctx, "Reminder deleted", slog.Int64("reminder_id", reminderID))
	return nil
}

func (s *reminderServiceImpl) GetReminderByID(ctx context.Context, reminderID int64) (*domain.Reminder, error) {
	reminder, err := s.reminderRepo.FindReminderByID(ctx, reminderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find reminder",
			slog.Int64("reminder_id", reminderID))
		return nil, err
	}
	return reminder, nil
}

func (s *reminderServiceImpl) ListReminders(ctx context.Context) ([]domain.Reminder, error) {
	reminders, err := s.reminderRepo.ListReminders(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reminders")
		return nil, err
	}
	return reminders, nil
}

func (s *reminderServiceImpl) ListDueReminders(ctx context.Context, on time.Time) ([]domain.Reminder, error) {
	reminders, err := s.reminderRepo.ListReminders(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reminders for due check")
		return nil, err
	}
	due := make([]domain.Reminder, 0)
	for _, r := range reminders {
		if r.DueOn(on) {
			due = append(due, r)
		}
	}
	return due, nil
}

func validateReminder(title, date string, isRecurring bool, frequency string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required: %w", apperrors.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", apperrors.ErrValidation)
	}
	if isRecurring {
		switch domain.ReminderFrequency(frequency) {
		case domain.Weekly, domain.Monthly, domain.Yearly:
		default:
			return fmt.Errorf("recurring reminders need a frequency of weekly, monthly or yearly: %w", apperrors.ErrValidation)
		}
	}
	return nil
}
