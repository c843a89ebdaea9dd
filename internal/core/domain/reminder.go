package domain

import "time"

// ReminderFrequency controls how often a recurring reminder fires.
type ReminderFrequency string

const (
	Weekly  ReminderFrequency = "weekly"
	Monthly ReminderFrequency = "monthly"
	Yearly  ReminderFrequency = "yearly"
)

// Reminder is a scheduled payment notice shown to the administrator.
// Date is YYYY-MM-DD; for recurring reminders only the relevant components
// (day of month, day+month, or weekday) are matched against today.
type Reminder struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Date        string            `json:"date"`
	IsRecurring bool              `json:"isRecurring"`
	Frequency   ReminderFrequency `json:"frequency"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// DueOn reports whether the reminder should fire on the given day.
func (r Reminder) DueOn(today time.Time) bool {
	if !r.IsActive {
		return false
	}
	anchor, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return false
	}
	if !r.IsRecurring {
		return today.Format("2006-01-02") == r.Date
	}
	switch r.Frequency {
	case Monthly:
		return today.Day() == anchor.Day()
	case Yearly:
		return today.Day() == anchor.Day() && today.Month() == anchor.Month()
	case Weekly:
		return today.Weekday() == anchor.Weekday()
	}
	return false
}
