package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"daybook/internal/constants"
	"daybook/internal/logger"
	"daybook/internal/models"
	"daybook/internal/recurrence"
	"daybook/internal/storage"
	"daybook/internal/validation"
)

type ReminderHandler struct {
	store storage.Provider
}

func NewReminderHandler(store storage.Provider) *ReminderHandler {
	return &ReminderHandler{store: store}
}

type reminderRequest struct {
	Title           string                  `json:"title" binding:"required"`
	Description     string                  `json:"description"`
	Date            time.Time               `json:"date" binding:"required"`
	Recurring       string                  `json:"recurring"`
	RecurringConfig *models.RecurringConfig `json:"recurringConfig"`
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	now := time.Now()
	rem := models.Reminder{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Recurring:       models.RecurrenceKind(req.Recurring),
		RecurringConfig: req.RecurringConfig,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if res := validation.ValidateReminder(rem); !res.OK() {
		badRequest(c, res.Err().Error())
		return
	}

	if err := h.store.AddReminder(rem); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.store.GetAllReminders()
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, reminders)
}

func (h *ReminderHandler) Get(c *gin.Context) {
	rem, err := h.store.GetReminder(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	existing, err := h.store.GetReminder(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.Date = req.Date
	existing.Recurring = models.RecurrenceKind(req.Recurring)
	// Editing replaces the recurrence config wholesale.
	existing.RecurringConfig = req.RecurringConfig
	existing.UpdatedAt = time.Now()

	if res := validation.ValidateReminder(existing); !res.OK() {
		badRequest(c, res.Err().Error())
		return
	}

	if err := h.store.UpdateReminder(existing); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteReminder(c.Param("id")); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DueOn lists the reminders whose occurrence falls on the given day
// (?on=YYYY-MM-DD, default today), annotated with their completion and
// conversion state for that day.
func (h *ReminderHandler) DueOn(c *gin.Context) {
	day := time.Now()
	if on := c.Query("on"); on != "" {
		parsed, err := time.Parse(constants.DateFormat, on)
		if err != nil {
			badRequest(c, "invalid 'on' date, expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	reminders, err := h.store.GetAllReminders()
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	type dueReminder struct {
		models.Reminder
		CompletedToday bool `json:"completedToday"`
		ConvertedToday bool `json:"convertedToday"`
	}

	due := []dueReminder{}
	for _, rem := range reminders {
		ok, err := recurrence.IsDueOn(rem, day)
		if err != nil {
			logger.Warn("skipping reminder with bad recurrence config", "id", rem.ID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		due = append(due, dueReminder{
			Reminder:       rem,
			CompletedToday: recurrence.IsCompletedOn(rem, day),
			ConvertedToday: recurrence.IsConvertedOn(rem, day),
		})
	}
	c.JSON(http.StatusOK, due)
}

// NextOccurrence computes the reminder's next occurrence after ?from=RFC3339
// (default now). Non-recurring reminders yield a null occurrence.
func (h *ReminderHandler) NextOccurrence(c *gin.Context) {
	rem, err := h.store.GetReminder(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	from := time.Now()
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, "invalid 'from' time, expected RFC3339")
			return
		}
		from = parsed
	}

	next, err := recurrence.NextOccurrence(rem, from)
	if err != nil {
		var cfgErr *recurrence.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": cfgErr.Error()})
			return
		}
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next": next})
}

// Convert turns the reminder's occurrence on a given day into a task. The
// eligibility check and the subsequent writes are deliberately not atomic;
// concurrent convert calls can race and at worst create a duplicate task.
func (h *ReminderHandler) Convert(c *gin.Context) {
	rem, err := h.store.GetReminder(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	day, ok := h.bindDay(c)
	if !ok {
		return
	}

	if recurrence.IsConvertedOn(rem, day) {
		c.JSON(http.StatusConflict, gin.H{"error": "occurrence already converted"})
		return
	}

	converted, err := h.store.GetTasksConvertedFrom(rem.ID)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	eligible, err := recurrence.CanConvertToTask(rem, converted, day)
	if err != nil {
		var cfgErr *recurrence.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": cfgErr.Error()})
			return
		}
		respondStoreErr(c, err)
		return
	}
	if !eligible {
		c.JSON(http.StatusConflict, gin.H{"error": "reminder is not eligible for conversion on this day"})
		return
	}

	now := time.Now()
	due := time.Date(day.Year(), day.Month(), day.Day(), rem.Date.Hour(), rem.Date.Minute(), 0, 0, day.Location())
	task := models.Task{
		ID:                    uuid.NewString(),
		Title:                 rem.Title,
		Description:           rem.Description,
		DueDate:               &due,
		Priority:              models.PriorityNormal,
		ConvertedFromReminder: rem.ID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := h.store.AddTask(task); err != nil {
		respondStoreErr(c, err)
		return
	}

	if rem.IsRecurring() {
		rem.ConvertedToTaskDates = append(rem.ConvertedToTaskDates, recurrence.DayKey(day))
	} else {
		rem.ConvertedToTask = true
	}
	rem.UpdatedAt = now
	if err := h.store.UpdateReminder(rem); err != nil {
		respondStoreErr(c, err)
		return
	}

	logger.Info("converted reminder occurrence to task", "reminder", rem.ID, "task", task.ID, "day", recurrence.DayKey(day))
	c.JSON(http.StatusCreated, gin.H{"task": task, "reminder": rem})
}

// Complete toggles completion: the flag for one-off reminders, the day's
// membership in completedInstances for recurring ones.
func (h *ReminderHandler) Complete(c *gin.Context) {
	rem, err := h.store.GetReminder(c.Param("id"))
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	day, ok := h.bindDay(c)
	if !ok {
		return
	}

	if rem.IsRecurring() {
		key := recurrence.DayKey(day)
		if recurrence.IsCompletedOn(rem, day) {
			kept := rem.CompletedInstances[:0]
			for _, k := range rem.CompletedInstances {
				if k != key {
					kept = append(kept, k)
				}
			}
			rem.CompletedInstances = kept
		} else {
			rem.CompletedInstances = append(rem.CompletedInstances, key)
		}
	} else {
		rem.Completed = !rem.Completed
	}
	rem.UpdatedAt = time.Now()

	if err := h.store.UpdateReminder(rem); err != nil {
		respondStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, rem)
}

// bindDay reads the optional {"date": "YYYY-MM-DD"} body shared by the
// convert and complete endpoints, defaulting to today.
func (h *ReminderHandler) bindDay(c *gin.Context) (time.Time, bool) {
	var body struct {
		Date string `json:"date"`
	}
	// An empty body means "today".
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, err.Error())
		return time.Time{}, false
	}
	if body.Date == "" {
		return time.Now(), true
	}
	day, err := time.Parse(constants.DateFormat, body.Date)
	if err != nil {
		badRequest(c, "invalid 'date', expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}
