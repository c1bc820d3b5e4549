// Package validation checks reminder recurrence rules at write time so
// malformed configs are rejected before they reach the store.
package validation

import (
	"fmt"
	"time"

	"daybook/internal/constants"
	"daybook/internal/models"
)

// ProblemType classifies a validation failure
type ProblemType string

const (
	ProblemUnknownRecurrence ProblemType = "unknown_recurrence"
	ProblemTypeMismatch      ProblemType = "config_type_mismatch"
	ProblemMissingField      ProblemType = "missing_field"
	ProblemOutOfRange        ProblemType = "out_of_range"
	ProblemBadTimeFormat     ProblemType = "bad_time_format"
)

// Problem is a single validation failure on a reminder
type Problem struct {
	Type        ProblemType
	Field       string
	Description string
}

// Result contains all problems found on a reminder
type Result struct {
	Problems []Problem
}

// OK returns true if no problems were found
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// Err returns the first problem as an error, or nil
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	p := r.Problems[0]
	return fmt.Errorf("%s: %s", p.Field, p.Description)
}

func (r *Result) add(t ProblemType, field, desc string) {
	r.Problems = append(r.Problems, Problem{Type: t, Field: field, Description: desc})
}

// ValidateReminder checks a reminder's recurrence rule for shape errors.
func ValidateReminder(rem models.Reminder) Result {
	var res Result

	switch rem.Recurring {
	case models.RecurrenceNone, models.RecurrenceDaily, models.RecurrenceWeekly, models.RecurrenceMonthly:
	default:
		res.add(ProblemUnknownRecurrence, "recurring", fmt.Sprintf("unknown recurrence %q", rem.Recurring))
		return res
	}

	cfg := rem.RecurringConfig
	if cfg == nil {
		return res
	}

	if cfg.Type != "" && cfg.Type != rem.Recurring {
		res.add(ProblemTypeMismatch, "recurringConfig.type",
			fmt.Sprintf("config type %q does not match recurrence %q", cfg.Type, rem.Recurring))
	}

	if cfg.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, cfg.Time); err != nil {
			res.add(ProblemBadTimeFormat, "recurringConfig.time",
				fmt.Sprintf("expected HH:MM, got %q", cfg.Time))
		}
	}

	if cfg.DayOfWeek != nil && (*cfg.DayOfWeek < 0 || *cfg.DayOfWeek > 6) {
		res.add(ProblemOutOfRange, "recurringConfig.dayOfWeek",
			fmt.Sprintf("must be 0-6, got %d", *cfg.DayOfWeek))
	}

	if rem.Recurring != models.RecurrenceMonthly {
		return res
	}

	switch cfg.Subtype {
	case models.MonthlyDayOfMonth, "":
		if cfg.DayOfMonth != nil && (*cfg.DayOfMonth < 1 || *cfg.DayOfMonth > 31) {
			res.add(ProblemOutOfRange, "recurringConfig.dayOfMonth",
				fmt.Sprintf("must be 1-31, got %d", *cfg.DayOfMonth))
		}
	case models.MonthlyRelativeDay:
		if cfg.WeekNum == nil {
			res.add(ProblemMissingField, "recurringConfig.weekNum", "required for relativeDay recurrence")
		} else if *cfg.WeekNum == 0 || *cfg.WeekNum < -1 || *cfg.WeekNum > 4 {
			res.add(ProblemOutOfRange, "recurringConfig.weekNum",
				fmt.Sprintf("must be 1-4 or -1, got %d", *cfg.WeekNum))
		}
		if cfg.DayOfWeek == nil {
			res.add(ProblemMissingField, "recurringConfig.dayOfWeek", "required for relativeDay recurrence")
		}
	default:
		res.add(ProblemUnknownRecurrence, "recurringConfig.subtype",
			fmt.Sprintf("unknown monthly subtype %q", cfg.Subtype))
	}

	return res
}
