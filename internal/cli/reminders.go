package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daybook/internal/constants"
	"daybook/internal/models"
	"daybook/internal/recurrence"
	"daybook/internal/validation"
)

var (
	reminderTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	reminderMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	reminderDoneStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)
)

// reminderFormModel holds the raw string values bound to the add form.
type reminderFormModel struct {
	Title       string
	Description string
	Date        string
	ClockTime   string
	Recurrence  models.RecurrenceKind
	Subtype     models.MonthlySubtype
	DayOfWeek   string
	DayOfMonth  string
	WeekNum     string
}

// ReminderAddCmd creates a reminder interactively.
type ReminderAddCmd struct {
	Title string `arg:"" optional:"" help:"Reminder title. Prompts when omitted."`
}

func (c *ReminderAddCmd) Run(ctx *Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	fm := reminderFormModel{
		Title: c.Title,
		Date:  time.Now().Format(constants.DateFormat),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					_, err := time.ParseInLocation(constants.DateFormat, s, time.Local)
					return err
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Description("Optional. Defaults to midnight.").
				Value(&fm.ClockTime).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := time.Parse(constants.TimeFormat, s)
					return err
				}),
			huh.NewSelect[models.RecurrenceKind]().
				Title("Recurrence").
				Options(
					huh.NewOption("None", models.RecurrenceNone),
					huh.NewOption("Daily", models.RecurrenceDaily),
					huh.NewOption("Weekly", models.RecurrenceWeekly),
					huh.NewOption("Monthly", models.RecurrenceMonthly),
				).
				Value(&fm.Recurrence),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Day of week (0=Sunday .. 6=Saturday)").
				Description("Leave blank to reuse the anchor date's weekday.").
				Value(&fm.DayOfWeek).
				Validate(optionalIntInRange(0, 6)),
		).WithHideFunc(func() bool {
			return fm.Recurrence != models.RecurrenceWeekly
		}),
		huh.NewGroup(
			huh.NewSelect[models.MonthlySubtype]().
				Title("Monthly pattern").
				Options(
					huh.NewOption("Day of month", models.MonthlyDayOfMonth),
					huh.NewOption("Relative day (e.g. last Friday)", models.MonthlyRelativeDay),
				).
				Value(&fm.Subtype),
		).WithHideFunc(func() bool {
			return fm.Recurrence != models.RecurrenceMonthly
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Day of month (1-31)").
				Description("Leave blank to reuse the anchor date's day.").
				Value(&fm.DayOfMonth).
				Validate(optionalIntInRange(1, 31)),
		).WithHideFunc(func() bool {
			return fm.Recurrence != models.RecurrenceMonthly || fm.Subtype != models.MonthlyDayOfMonth
		}),
		huh.NewGroup(
			huh.NewInput().
				Title("Week number (1-4, or -1 for last)").
				Value(&fm.WeekNum).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i != -1 && (i < 1 || i > 4) {
						return fmt.Errorf("week number must be 1-4 or -1")
					}
					return nil
				}),
			huh.NewInput().
				Title("Day of week (0=Sunday .. 6=Saturday)").
				Value(&fm.DayOfWeek).
				Validate(func(s string) error {
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < 0 || i > 6 {
						return fmt.Errorf("day of week must be 0-6")
					}
					return nil
				}),
		).WithHideFunc(func() bool {
			return fm.Recurrence != models.RecurrenceMonthly || fm.Subtype != models.MonthlyRelativeDay
		}),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	rem, err := fm.toReminder()
	if err != nil {
		return err
	}
	if res := validation.ValidateReminder(rem); !res.OK() {
		return res.Err()
	}
	if err := ctx.Store.AddReminder(rem); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	fmt.Printf("Created reminder %s (%s)\n", reminderTitleStyle.Render(rem.Title), rem.ID)
	return nil
}

func (fm *reminderFormModel) toReminder() (models.Reminder, error) {
	date, err := time.ParseInLocation(constants.DateFormat, fm.Date, time.Local)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("invalid date: %w", err)
	}
	if strings.TrimSpace(fm.ClockTime) != "" {
		clock, err := time.Parse(constants.TimeFormat, strings.TrimSpace(fm.ClockTime))
		if err != nil {
			return models.Reminder{}, fmt.Errorf("invalid time: %w", err)
		}
		date = time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	}

	now := time.Now()
	rem := models.Reminder{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Date:        date,
		Recurring:   fm.Recurrence,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if fm.Recurrence == models.RecurrenceNone {
		return rem, nil
	}

	cfg := &models.RecurringConfig{Type: fm.Recurrence}
	if strings.TrimSpace(fm.ClockTime) != "" {
		cfg.Time = strings.TrimSpace(fm.ClockTime)
	}
	switch fm.Recurrence {
	case models.RecurrenceWeekly:
		if v, ok := parseOptionalInt(fm.DayOfWeek); ok {
			cfg.DayOfWeek = &v
		}
	case models.RecurrenceMonthly:
		cfg.Subtype = fm.Subtype
		switch fm.Subtype {
		case models.MonthlyDayOfMonth:
			if v, ok := parseOptionalInt(fm.DayOfMonth); ok {
				cfg.DayOfMonth = &v
			}
		case models.MonthlyRelativeDay:
			wn, ok := parseOptionalInt(fm.WeekNum)
			if !ok {
				return models.Reminder{}, fmt.Errorf("week number is required for relative day recurrence")
			}
			dow, ok := parseOptionalInt(fm.DayOfWeek)
			if !ok {
				return models.Reminder{}, fmt.Errorf("day of week is required for relative day recurrence")
			}
			cfg.WeekNum = &wn
			cfg.DayOfWeek = &dow
		}
	}
	rem.RecurringConfig = cfg
	return rem, nil
}

func parseOptionalInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return i, true
}

func optionalIntInRange(lo, hi int) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		if i < lo || i > hi {
			return fmt.Errorf("value must be %d-%d", lo, hi)
		}
		return nil
	}
}

// ReminderListCmd prints all reminders.
type ReminderListCmd struct {
	All bool `help:"Include completed non-recurring reminders."`
}

func (c *ReminderListCmd) Run(ctx *Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to load reminders: %w", err)
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders.")
		return nil
	}

	for _, rem := range reminders {
		if !c.All && !rem.IsRecurring() && rem.Completed {
			continue
		}
		title := reminderTitleStyle.Render(rem.Title)
		if rem.Completed && !rem.IsRecurring() {
			title = reminderDoneStyle.Render(rem.Title)
		}
		meta := rem.Date.Format("2006-01-02 15:04")
		if rem.IsRecurring() {
			meta += "  " + describeRecurrence(rem)
		}
		fmt.Printf("%s\n  %s\n", title, reminderMetaStyle.Render(meta))
	}
	return nil
}

func describeRecurrence(rem models.Reminder) string {
	switch rem.Recurring {
	case models.RecurrenceDaily:
		return "repeats daily"
	case models.RecurrenceWeekly:
		return "repeats weekly"
	case models.RecurrenceMonthly:
		cfg := rem.RecurringConfig
		if cfg != nil && cfg.Subtype == models.MonthlyRelativeDay && cfg.WeekNum != nil && cfg.DayOfWeek != nil {
			week := fmt.Sprintf("week %d", *cfg.WeekNum)
			if *cfg.WeekNum == -1 {
				week = "last"
			}
			return fmt.Sprintf("repeats monthly (%s %s)", week, time.Weekday(*cfg.DayOfWeek))
		}
		return "repeats monthly"
	default:
		return ""
	}
}

// ReminderNextCmd prints the next occurrence of a recurring reminder.
type ReminderNextCmd struct {
	ID   string `arg:"" help:"Reminder ID."`
	From string `help:"Compute from this instant (RFC3339). Defaults to now."`
}

func (c *ReminderNextCmd) Run(ctx *Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	rem, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load reminder: %w", err)
	}

	from := time.Now()
	if c.From != "" {
		from, err = time.Parse(time.RFC3339, c.From)
		if err != nil {
			return fmt.Errorf("invalid --from value: %w", err)
		}
	}

	next, err := recurrence.NextOccurrence(rem, from)
	if err != nil {
		return err
	}
	if next == nil {
		fmt.Printf("%s does not recur.\n", reminderTitleStyle.Render(rem.Title))
		return nil
	}
	fmt.Printf("%s next occurs at %s\n", reminderTitleStyle.Render(rem.Title), next.Format(time.RFC3339))
	return nil
}
