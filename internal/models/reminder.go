package models

// Reminder is the database row for a scheduled payment reminder.
type Reminder struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Message     string `db:"message"`
	Date        string `db:"date"` // YYYY-MM-DD anchor date
	IsRecurring bool   `db:"is_recurring"`
	Frequency   string `db:"frequency"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
