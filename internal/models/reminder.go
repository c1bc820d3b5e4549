package models

import "time"

type RecurrenceKind string

const (
	RecurrenceNone    RecurrenceKind = ""
	RecurrenceDaily   RecurrenceKind = "daily"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

type MonthlySubtype string

const (
	MonthlyDayOfMonth  MonthlySubtype = "dayOfMonth"
	MonthlyRelativeDay MonthlySubtype = "relativeDay"
)

// RecurringConfig mirrors the persisted document shape of a recurrence rule.
// Optional numeric fields are pointers so that absence is distinguishable from
// a genuine zero (Sunday is weekday 0).
type RecurringConfig struct {
	Type       RecurrenceKind `json:"type,omitempty"`
	Subtype    MonthlySubtype `json:"subtype,omitempty"`
	DayOfWeek  *int           `json:"dayOfWeek,omitempty"`  // 0=Sunday .. 6=Saturday
	DayOfMonth *int           `json:"dayOfMonth,omitempty"` // 1-31
	WeekNum    *int           `json:"weekNum,omitempty"`    // 1-4, or -1 for last
	Time       string         `json:"time,omitempty"`       // HH:MM, 24-hour
}

// Reminder is a one-off or recurring reminder. For recurring reminders the
// anchor Date supplies the time-of-day and the fallback day-of-week/month when
// the config omits a value. Occurrence history is tracked as YYYY-MM-DD day
// keys so day-equality checks never drift on time-of-day.
type Reminder struct {
	ID                   string           `json:"id"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	Date                 time.Time        `json:"date"`
	Recurring            RecurrenceKind   `json:"recurring"`
	RecurringConfig      *RecurringConfig `json:"recurringConfig,omitempty"`
	Completed            bool             `json:"completed"`
	CompletedInstances   []string         `json:"completedInstances,omitempty"`
	ConvertedToTask      bool             `json:"convertedToTask"`
	ConvertedToTaskDates []string         `json:"convertedToTaskDates,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// IsRecurring returns true if this reminder has a recurrence rule
func (r *Reminder) IsRecurring() bool {
	return r.Recurring != RecurrenceNone
}
