package recurrence

import (
	"errors"
	"testing"
	"time"

	"daybook/internal/models"
)

func intPtr(n int) *int { return &n }

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func dailyAt(hhmm string) models.Reminder {
	return models.Reminder{
		ID:              "daily",
		Title:           "Daily reminder",
		Date:            time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Recurring:       models.RecurrenceDaily,
		RecurringConfig: &models.RecurringConfig{Time: hhmm},
	}
}

func TestNextOccurrence_NonRecurring(t *testing.T) {
	r := models.Reminder{
		ID:   "once",
		Date: mustTime(t, "2024-03-10T09:00"),
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-03-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != nil {
		t.Errorf("expected nil for non-recurring reminder, got %v", next)
	}
}

func TestNextOccurrence_Daily_BeforeTime(t *testing.T) {
	next, err := NextOccurrence(dailyAt("09:00"), mustTime(t, "2024-03-10T08:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-10T09:00")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_Daily_AfterTime(t *testing.T) {
	next, err := NextOccurrence(dailyAt("09:00"), mustTime(t, "2024-03-10T09:30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-11T09:00")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_Daily_ExactlyAtBoundary(t *testing.T) {
	// At exactly the occurrence instant the result must be the next day,
	// never the boundary itself.
	next, err := NextOccurrence(dailyAt("09:00"), mustTime(t, "2024-03-10T09:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-11T09:00")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_Daily_AnchorTimeFallback(t *testing.T) {
	r := models.Reminder{
		ID:        "daily-anchor",
		Date:      mustTime(t, "2024-01-01T17:45"),
		Recurring: models.RecurrenceDaily,
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-03-10T08:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-10T17:45")
	if !next.Equal(want) {
		t.Errorf("expected anchor time-of-day %v, got %v", want, next)
	}
}

func TestNextOccurrence_Weekly(t *testing.T) {
	r := models.Reminder{
		ID:        "weekly-wed",
		Date:      mustTime(t, "2024-01-03T10:00"),
		Recurring: models.RecurrenceWeekly,
		RecurringConfig: &models.RecurringConfig{
			Type:      models.RecurrenceWeekly,
			DayOfWeek: intPtr(3), // Wednesday
		},
	}

	// 2024-03-10 is a Sunday; the coming Wednesday is the 13th.
	next, err := NextOccurrence(r, mustTime(t, "2024-03-10T12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-13T10:00")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
	if next.Weekday() != time.Wednesday {
		t.Errorf("expected a Wednesday, got %v", next.Weekday())
	}
}

func TestNextOccurrence_Weekly_SameDayLaterTime(t *testing.T) {
	r := models.Reminder{
		ID:        "weekly-sun",
		Date:      mustTime(t, "2024-01-07T20:00"),
		Recurring: models.RecurrenceWeekly,
		RecurringConfig: &models.RecurringConfig{
			DayOfWeek: intPtr(0), // Sunday
			Time:      "20:00",
		},
	}

	// Sunday morning: tonight still counts.
	next, err := NextOccurrence(r, mustTime(t, "2024-03-10T08:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-10T20:00")
	if !next.Equal(want) {
		t.Errorf("expected same-day occurrence %v, got %v", want, next)
	}

	// Sunday night, past the time: next Sunday.
	next, err = NextOccurrence(r, mustTime(t, "2024-03-10T21:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = mustTime(t, "2024-03-17T20:00")
	if !next.Equal(want) {
		t.Errorf("expected next-week occurrence %v, got %v", want, next)
	}
}

func TestNextOccurrence_Weekly_AnchorWeekdayFallback(t *testing.T) {
	r := models.Reminder{
		ID:        "weekly-anchor",
		Date:      mustTime(t, "2024-01-05T09:30"), // a Friday
		Recurring: models.RecurrenceWeekly,
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-03-10T12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-15T09:30")
	if !next.Equal(want) {
		t.Errorf("expected %v, got %v", want, next)
	}
}

func TestNextOccurrence_MonthlyDayOfMonth_Clamped(t *testing.T) {
	r := models.Reminder{
		ID:        "monthly-31",
		Date:      mustTime(t, "2024-01-31T09:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:    models.MonthlyDayOfMonth,
			DayOfMonth: intPtr(31),
			Time:       "09:00",
		},
	}

	// April has 30 days, so day 31 clamps to April 30.
	next, err := NextOccurrence(r, mustTime(t, "2024-04-15T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-04-30T09:00")
	if !next.Equal(want) {
		t.Errorf("expected clamp to April 30, got %v", next)
	}

	// May has a real 31st again.
	next, err = NextOccurrence(r, mustTime(t, "2024-05-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = mustTime(t, "2024-05-31T09:00")
	if !next.Equal(want) {
		t.Errorf("expected May 31, got %v", next)
	}
}

func TestNextOccurrence_MonthlyDayOfMonth_February(t *testing.T) {
	r := models.Reminder{
		ID:        "monthly-30",
		Date:      mustTime(t, "2024-01-30T08:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			DayOfMonth: intPtr(30),
		},
	}

	// 2024 is a leap year: day 30 clamps to February 29.
	next, err := NextOccurrence(r, mustTime(t, "2024-02-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-02-29T08:00")
	if !next.Equal(want) {
		t.Errorf("expected February 29, got %v", next)
	}

	// 2025 is not: clamp to February 28.
	next, err = NextOccurrence(r, mustTime(t, "2025-02-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = mustTime(t, "2025-02-28T08:00")
	if !next.Equal(want) {
		t.Errorf("expected February 28, got %v", next)
	}
}

func TestNextOccurrence_MonthlyDayOfMonth_AnchorFallback(t *testing.T) {
	r := models.Reminder{
		ID:        "monthly-anchor",
		Date:      mustTime(t, "2024-01-15T07:00"),
		Recurring: models.RecurrenceMonthly,
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-03-10T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-15T07:00")
	if !next.Equal(want) {
		t.Errorf("expected anchor day-of-month %v, got %v", want, next)
	}
}

func TestNextOccurrence_MonthlyRelativeDay_LastFriday(t *testing.T) {
	r := models.Reminder{
		ID:        "last-friday",
		Date:      mustTime(t, "2024-01-26T18:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:   models.MonthlyRelativeDay,
			WeekNum:   intPtr(-1),
			DayOfWeek: intPtr(5), // Friday
			Time:      "18:00",
		},
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-03-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-29T18:00")
	if !next.Equal(want) {
		t.Errorf("expected last Friday of March (29th), got %v", next)
	}

	// After that Friday has passed, roll to April's last Friday (26th).
	next, err = NextOccurrence(r, mustTime(t, "2024-03-29T19:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = mustTime(t, "2024-04-26T18:00")
	if !next.Equal(want) {
		t.Errorf("expected last Friday of April (26th), got %v", next)
	}
}

func TestNextOccurrence_MonthlyRelativeDay_FirstMonday(t *testing.T) {
	r := models.Reminder{
		ID:        "first-monday",
		Date:      mustTime(t, "2024-01-01T09:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:   models.MonthlyRelativeDay,
			WeekNum:   intPtr(1),
			DayOfWeek: intPtr(1), // Monday
			Time:      "09:00",
		},
	}

	// First Monday of March 2024 is the 4th.
	next, err := NextOccurrence(r, mustTime(t, "2024-03-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-03-04T09:00")
	if !next.Equal(want) {
		t.Errorf("expected first Monday of March (4th), got %v", next)
	}

	// Past it: first Monday of April is the 1st.
	next, err = NextOccurrence(r, mustTime(t, "2024-03-04T10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = mustTime(t, "2024-04-01T09:00")
	if !next.Equal(want) {
		t.Errorf("expected first Monday of April (1st), got %v", next)
	}
}

func TestNextOccurrence_MonthlyRelativeDay_FourthSaturday(t *testing.T) {
	// February 2024 has exactly four Saturdays (3rd, 10th, 17th, 24th).
	// A 4th-occurrence rule must land on the 24th and never leave its month.
	r := models.Reminder{
		ID:        "fourth-saturday",
		Date:      mustTime(t, "2024-01-01T10:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:   models.MonthlyRelativeDay,
			WeekNum:   intPtr(4),
			DayOfWeek: intPtr(6), // Saturday
			Time:      "10:00",
		},
	}

	next, err := NextOccurrence(r, mustTime(t, "2024-02-01T00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := mustTime(t, "2024-02-24T10:00")
	if !next.Equal(want) {
		t.Errorf("expected fourth Saturday of February (24th), got %v", next)
	}
	if next.Month() != time.February {
		t.Errorf("occurrence leaked out of its month: %v", next)
	}
}

func TestNextOccurrence_MonthlyRelativeDay_MissingWeekNum(t *testing.T) {
	r := models.Reminder{
		ID:        "broken",
		Date:      mustTime(t, "2024-01-01T10:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:   models.MonthlyRelativeDay,
			DayOfWeek: intPtr(5),
		},
	}

	_, err := NextOccurrence(r, mustTime(t, "2024-03-01T00:00"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Field != "weekNum" {
		t.Errorf("expected weekNum error, got field %q", cfgErr.Field)
	}
}

func TestNextOccurrence_MonthlyRelativeDay_MissingDayOfWeek(t *testing.T) {
	r := models.Reminder{
		ID:        "broken-dow",
		Date:      mustTime(t, "2024-01-01T10:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype: models.MonthlyRelativeDay,
			WeekNum: intPtr(2),
		},
	}

	_, err := NextOccurrence(r, mustTime(t, "2024-03-01T00:00"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestNextOccurrence_InvalidTimeString(t *testing.T) {
	_, err := NextOccurrence(dailyAt("25:99"), mustTime(t, "2024-03-10T08:00"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for bad time, got %v", err)
	}
}

func TestNextOccurrence_StrictlyAfterFrom(t *testing.T) {
	reminders := []models.Reminder{
		dailyAt("09:00"),
		{
			ID:        "w",
			Date:      mustTime(t, "2024-01-03T09:00"),
			Recurring: models.RecurrenceWeekly,
			RecurringConfig: &models.RecurringConfig{
				DayOfWeek: intPtr(3),
			},
		},
		{
			ID:        "m",
			Date:      mustTime(t, "2024-01-31T09:00"),
			Recurring: models.RecurrenceMonthly,
			RecurringConfig: &models.RecurringConfig{
				DayOfMonth: intPtr(31),
			},
		},
		{
			ID:        "rel",
			Date:      mustTime(t, "2024-01-26T09:00"),
			Recurring: models.RecurrenceMonthly,
			RecurringConfig: &models.RecurringConfig{
				Subtype:   models.MonthlyRelativeDay,
				WeekNum:   intPtr(-1),
				DayOfWeek: intPtr(5),
			},
		},
	}

	froms := []time.Time{
		mustTime(t, "2024-02-28T23:59"),
		mustTime(t, "2024-03-10T09:00"),
		mustTime(t, "2024-03-29T09:00"),
		mustTime(t, "2024-12-31T23:59"),
	}

	for _, r := range reminders {
		for _, from := range froms {
			next, err := NextOccurrence(r, from)
			if err != nil {
				t.Fatalf("%s from %v: unexpected error: %v", r.ID, from, err)
			}
			if !next.After(from) {
				t.Errorf("%s: occurrence %v is not strictly after %v", r.ID, next, from)
			}

			due, err := IsDueOn(r, *next)
			if err != nil {
				t.Fatalf("%s: IsDueOn: %v", r.ID, err)
			}
			if !due {
				t.Errorf("%s: IsDueOn is false for its own next occurrence %v", r.ID, next)
			}

			// Minimality: asking just before the occurrence must return
			// the same occurrence.
			again, err := NextOccurrence(r, next.Add(-time.Nanosecond))
			if err != nil {
				t.Fatalf("%s: recompute: %v", r.ID, err)
			}
			if !again.Equal(*next) {
				t.Errorf("%s: expected idempotent result %v, got %v", r.ID, next, again)
			}
		}
	}
}

func TestNextOccurrence_LastWeekdayWithinFinalWeek(t *testing.T) {
	r := models.Reminder{
		ID:        "last-monday",
		Date:      mustTime(t, "2024-01-29T08:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			Subtype:   models.MonthlyRelativeDay,
			WeekNum:   intPtr(-1),
			DayOfWeek: intPtr(1),
		},
	}

	from := mustTime(t, "2024-01-01T00:00")
	for i := 0; i < 12; i++ {
		next, err := NextOccurrence(r, from)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		last := time.Date(next.Year(), next.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
		if next.Day() <= last-7 {
			t.Errorf("last-weekday occurrence %v is not within the final week of its month", next)
		}
		from = *next
	}
}

func TestIsDueOn_NonRecurring(t *testing.T) {
	r := models.Reminder{
		ID:   "once",
		Date: mustTime(t, "2024-03-10T09:00"),
	}

	due, err := IsDueOn(r, mustTime(t, "2024-03-10T23:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due {
		t.Error("expected due on its own day regardless of time")
	}

	due, err = IsDueOn(r, mustTime(t, "2024-03-11T09:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due {
		t.Error("expected not due on a different day")
	}
}

func TestIsDueOn_MonthlyClampedDay(t *testing.T) {
	r := models.Reminder{
		ID:        "monthly-31",
		Date:      mustTime(t, "2024-01-31T09:00"),
		Recurring: models.RecurrenceMonthly,
		RecurringConfig: &models.RecurringConfig{
			DayOfMonth: intPtr(31),
		},
	}

	// April 30 is the clamped occurrence of a day-31 rule.
	due, err := IsDueOn(r, mustTime(t, "2024-04-30T12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !due {
		t.Error("expected day-31 rule to be due on April 30")
	}

	due, err = IsDueOn(r, mustTime(t, "2024-04-29T12:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if due {
		t.Error("expected day-31 rule not due on April 29")
	}
}

func TestIsCompletedOn(t *testing.T) {
	r := dailyAt("09:00")
	r.CompletedInstances = []string{"2024-03-09", "2024-03-10"}

	if !IsCompletedOn(r, mustTime(t, "2024-03-10T18:00")) {
		t.Error("expected completed on a tracked day")
	}
	if IsCompletedOn(r, mustTime(t, "2024-03-11T09:00")) {
		t.Error("expected not completed on an untracked day")
	}

	single := models.Reminder{ID: "once", Completed: true, Date: mustTime(t, "2024-03-10T09:00")}
	if !IsCompletedOn(single, mustTime(t, "2020-01-01T00:00")) {
		t.Error("expected non-recurring completion to ignore the day")
	}
}

func TestIsConvertedOn(t *testing.T) {
	r := dailyAt("09:00")
	r.ConvertedToTaskDates = []string{"2024-03-10"}

	if !IsConvertedOn(r, mustTime(t, "2024-03-10T00:30")) {
		t.Error("expected converted on a tracked day")
	}
	if IsConvertedOn(r, mustTime(t, "2024-03-12T00:30")) {
		t.Error("expected not converted on an untracked day")
	}
}

func TestCanConvertToTask_NonRecurring(t *testing.T) {
	r := models.Reminder{
		ID:   "once",
		Date: mustTime(t, "2024-03-10T09:00"),
	}

	ok, err := CanConvertToTask(r, nil, mustTime(t, "2024-03-10T10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected conversion allowed on the due day")
	}

	ok, err = CanConvertToTask(r, nil, mustTime(t, "2024-03-11T10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected conversion blocked on a non-due day")
	}

	r.ConvertedToTask = true
	ok, err = CanConvertToTask(r, nil, mustTime(t, "2024-03-10T10:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected conversion blocked after it was recorded")
	}
}

func TestCanConvertToTask_RecurringDuplicateTask(t *testing.T) {
	r := dailyAt("09:00")
	existing := []models.Task{
		{
			ID:                    "t1",
			Title:                 "Converted earlier today",
			ConvertedFromReminder: r.ID,
			CreatedAt:             mustTime(t, "2024-03-10T09:05"),
		},
	}

	ok, err := CanConvertToTask(r, existing, mustTime(t, "2024-03-10T16:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected duplicate conversion on the same day to be blocked")
	}

	ok, err = CanConvertToTask(r, existing, mustTime(t, "2024-03-11T09:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected conversion allowed on a fresh day")
	}

	// Tasks converted from other reminders never block.
	other := []models.Task{
		{ID: "t2", ConvertedFromReminder: "someone-else", CreatedAt: mustTime(t, "2024-03-10T09:05")},
	}
	ok, err = CanConvertToTask(r, other, mustTime(t, "2024-03-10T16:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected unrelated tasks not to block conversion")
	}
}

func TestDayKey(t *testing.T) {
	if got := DayKey(mustTime(t, "2024-03-10T23:59")); got != "2024-03-10" {
		t.Errorf("expected 2024-03-10, got %q", got)
	}
	if got := DayKey(mustTime(t, "2024-03-11T00:00")); got != "2024-03-11" {
		t.Errorf("expected 2024-03-11, got %q", got)
	}
}
