package dto

import (
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
)

// CreateReminderRequest defines the data needed to create a reminder.
// Date is the YYYY-MM-DD anchor; Frequency only matters when IsRecurring.
type CreateReminderRequest struct {
	Title       string `json:"title" binding:"required"`
	Message     string `json:"message"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	IsRecurring bool   `json:"isRecurring"`
	Frequency   string `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
}

// UpdateReminderRequest defines the data allowed for updating a reminder.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateReminderRequest struct {
	Title       *string `json:"title"`
	Message     *string `json:"message"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	IsRecurring *bool   `json:"isRecurring"`
	Frequency   *string `json:"frequency" binding:"omitempty,oneof=weekly monthly yearly"`
	IsActive    *bool   `json:"isActive"`
}

// ReminderResponse defines the data returned for a reminder.
type ReminderResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Date        string    `json:"date"`
	IsRecurring bool      `json:"isRecurring"`
	Frequency   string    `json:"frequency,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToReminderResponse converts a domain.Reminder to ReminderResponse DTO
func ToReminderResponse(r *domain.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:          r.ID,
		Title:       r.Title,
		Message:     r.Message,
		Date:        r.Date,
		IsRecurring: r.IsRecurring,
		Frequency:   string(r.Frequency),
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

// ToListReminderResponse converts a slice of domain.Reminder to response DTOs
func ToListReminderResponse(reminders []domain.Reminder) []ReminderResponse {
	res := make([]ReminderResponse, len(reminders))
	for i := range reminders {
		res[i] = ToReminderResponse(&reminders[i])
	}
	return res
}
