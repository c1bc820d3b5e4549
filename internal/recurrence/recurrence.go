// Package recurrence computes occurrence dates for recurring reminders.
// All functions are pure: they take a reminder snapshot and a reference
// instant and never touch storage or mutate their inputs, so concurrent
// callers need no coordination.
package recurrence

import (
	"fmt"
	"time"

	"daybook/internal/constants"
	"daybook/internal/models"
)

// ConfigurationError reports a recurrence rule that is missing a field with
// no safe default. It is never retried and never silently defaulted.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("recurrence config: %s: %s", e.Field, e.Reason)
}

// DayKey normalizes an instant to its calendar day (YYYY-MM-DD). Occurrence
// history is stored as day keys so membership checks are exact regardless of
// time-of-day.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// NextOccurrence returns the earliest occurrence of the reminder strictly
// after from, or nil for non-recurring reminders. The result carries the
// time-of-day from recurringConfig.time when present, otherwise from the
// reminder's anchor date.
func NextOccurrence(r models.Reminder, from time.Time) (*time.Time, error) {
	if !r.IsRecurring() {
		return nil, nil
	}

	hour, min, err := timeOfDay(r)
	if err != nil {
		return nil, err
	}

	var next time.Time
	switch r.Recurring {
	case models.RecurrenceDaily:
		next = nextDaily(from, hour, min)
	case models.RecurrenceWeekly:
		next = nextWeekly(r, from, hour, min)
	case models.RecurrenceMonthly:
		next, err = nextMonthly(r, from, hour, min)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &ConfigurationError{Field: "recurring", Reason: fmt.Sprintf("unknown value %q", r.Recurring)}
	}
	return &next, nil
}

// IsDueOn reports whether the given calendar day is an occurrence of the
// reminder. Only the day component of ref matters.
func IsDueOn(r models.Reminder, ref time.Time) (bool, error) {
	if !r.IsRecurring() {
		return DayKey(ref) == DayKey(r.Date), nil
	}

	switch r.Recurring {
	case models.RecurrenceDaily:
		return true, nil
	case models.RecurrenceWeekly:
		return ref.Weekday() == targetWeekday(r), nil
	case models.RecurrenceMonthly:
		cfg := r.RecurringConfig
		if cfg != nil && cfg.Subtype == models.MonthlyRelativeDay {
			occ, err := relativeDayInMonth(r, ref.Year(), ref.Month(), ref.Location())
			if err != nil {
				return false, err
			}
			return ref.Day() == occ.Day(), nil
		}
		// Absolute day-of-month, clamp-aware so that a day-31 rule is due
		// on the last day of shorter months.
		day := targetDayOfMonth(r)
		if last := daysIn(ref.Year(), ref.Month()); day > last {
			day = last
		}
		return ref.Day() == day, nil
	default:
		return false, &ConfigurationError{Field: "recurring", Reason: fmt.Sprintf("unknown value %q", r.Recurring)}
	}
}

// IsCompletedOn reports whether the reminder's occurrence on the given day has
// been completed. Non-recurring reminders ignore the day.
func IsCompletedOn(r models.Reminder, day time.Time) bool {
	if !r.IsRecurring() {
		return r.Completed
	}
	return containsDay(r.CompletedInstances, day)
}

// IsConvertedOn reports whether the reminder's occurrence on the given day has
// already been converted into a task. Non-recurring reminders ignore the day.
func IsConvertedOn(r models.Reminder, day time.Time) bool {
	if !r.IsRecurring() {
		return r.ConvertedToTask
	}
	return containsDay(r.ConvertedToTaskDates, day)
}

// CanConvertToTask reports whether converting the reminder's occurrence on the
// given day into a task is permitted. tasks should hold the tasks already
// converted from this reminder. The predicate is pure; the caller persists the
// task and the conversion marker, and that two-step sequence is best-effort:
// concurrent conversion attempts can both pass the check.
func CanConvertToTask(r models.Reminder, tasks []models.Task, ref time.Time) (bool, error) {
	if !r.IsRecurring() {
		due, err := IsDueOn(r, ref)
		if err != nil {
			return false, err
		}
		if !due || r.ConvertedToTask {
			return false, nil
		}
	}
	for _, t := range tasks {
		if t.ConvertedFromReminder == r.ID && DayKey(t.CreatedAt) == DayKey(ref) {
			return false, nil
		}
	}
	return true, nil
}

func nextDaily(from time.Time, hour, min int) time.Time {
	cand := time.Date(from.Year(), from.Month(), from.Day(), hour, min, 0, 0, from.Location())
	if !cand.After(from) {
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

func nextWeekly(r models.Reminder, from time.Time, hour, min int) time.Time {
	target := targetWeekday(r)
	cand := time.Date(from.Year(), from.Month(), from.Day(), hour, min, 0, 0, from.Location())
	offset := (int(target) - int(cand.Weekday()) + 7) % 7
	cand = cand.AddDate(0, 0, offset)
	if !cand.After(from) {
		cand = cand.AddDate(0, 0, 7)
	}
	return cand
}

func nextMonthly(r models.Reminder, from time.Time, hour, min int) (time.Time, error) {
	cfg := r.RecurringConfig
	if cfg != nil && cfg.Subtype == models.MonthlyRelativeDay {
		return nextRelativeDay(r, from, hour, min)
	}

	day := targetDayOfMonth(r)
	cand := clampedDate(from.Year(), from.Month(), day, hour, min, from.Location())
	if !cand.After(from) {
		y, m := nextMonth(from.Year(), from.Month())
		cand = clampedDate(y, m, day, hour, min, from.Location())
	}
	return cand, nil
}

func nextRelativeDay(r models.Reminder, from time.Time, hour, min int) (time.Time, error) {
	occ, err := relativeDayInMonth(r, from.Year(), from.Month(), from.Location())
	if err != nil {
		return time.Time{}, err
	}
	cand := time.Date(occ.Year(), occ.Month(), occ.Day(), hour, min, 0, 0, from.Location())
	if !cand.After(from) {
		y, m := nextMonth(from.Year(), from.Month())
		occ, err = relativeDayInMonth(r, y, m, from.Location())
		if err != nil {
			return time.Time{}, err
		}
		cand = time.Date(occ.Year(), occ.Month(), occ.Day(), hour, min, 0, 0, from.Location())
	}
	return cand, nil
}

// relativeDayInMonth resolves an "nth weekday" rule within the given month,
// at midnight. weekNum 1-4 counts from the first occurrence; -1 is the last.
// A month lacking a 4th occurrence of the weekday resolves to its last
// occurrence rather than spilling into the next month.
func relativeDayInMonth(r models.Reminder, year int, month time.Month, loc *time.Location) (time.Time, error) {
	cfg := r.RecurringConfig
	if cfg == nil || cfg.WeekNum == nil {
		return time.Time{}, &ConfigurationError{Field: "weekNum", Reason: "required for relativeDay monthly recurrence"}
	}
	if cfg.DayOfWeek == nil {
		return time.Time{}, &ConfigurationError{Field: "dayOfWeek", Reason: "required for relativeDay monthly recurrence"}
	}
	weekNum := *cfg.WeekNum
	if weekNum == 0 || weekNum < -1 || weekNum > 4 {
		return time.Time{}, &ConfigurationError{Field: "weekNum", Reason: fmt.Sprintf("must be 1-4 or -1, got %d", weekNum)}
	}
	weekday := time.Weekday(*cfg.DayOfWeek)

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	d := first.AddDate(0, 0, (int(weekday)-int(first.Weekday())+7)%7)

	if weekNum == -1 {
		for d.AddDate(0, 0, 7).Month() == month {
			d = d.AddDate(0, 0, 7)
		}
		return d, nil
	}
	for i := 1; i < weekNum; i++ {
		next := d.AddDate(0, 0, 7)
		if next.Month() != month {
			break
		}
		d = next
	}
	return d, nil
}

// timeOfDay resolves the occurrence time: the config's HH:MM when present,
// otherwise the anchor date's clock. A present but malformed time string is a
// configuration error, not a fallback.
func timeOfDay(r models.Reminder) (hour, min int, err error) {
	if r.RecurringConfig != nil && r.RecurringConfig.Time != "" {
		t, perr := time.Parse(constants.TimeFormat, r.RecurringConfig.Time)
		if perr != nil {
			return 0, 0, &ConfigurationError{Field: "time", Reason: fmt.Sprintf("invalid HH:MM value %q", r.RecurringConfig.Time)}
		}
		return t.Hour(), t.Minute(), nil
	}
	return r.Date.Hour(), r.Date.Minute(), nil
}

func targetWeekday(r models.Reminder) time.Weekday {
	if r.RecurringConfig != nil && r.RecurringConfig.DayOfWeek != nil {
		return time.Weekday(*r.RecurringConfig.DayOfWeek)
	}
	return r.Date.Weekday()
}

func targetDayOfMonth(r models.Reminder) int {
	if r.RecurringConfig != nil && r.RecurringConfig.DayOfMonth != nil {
		return *r.RecurringConfig.DayOfMonth
	}
	return r.Date.Day()
}

func containsDay(keys []string, day time.Time) bool {
	key := DayKey(day)
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampedDate builds a date, clamping day to the month's length so a day-31
// rule lands on the 30th or 28th/29th instead of rolling over.
func clampedDate(year int, month time.Month, day, hour, min int, loc *time.Location) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}
