package storage

import (
	"errors"
	"strings"

	"daybook/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Provider is the storage contract shared by the SQLite and Postgres
// backends.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	// GetTasksConvertedFrom returns the tasks created from occurrences of the
	// given reminder, feeding the duplicate-conversion check.
	GetTasksConvertedFrom(reminderID string) ([]models.Task, error)

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Meetings
	AddMeeting(models.Meeting) error
	GetMeeting(id string) (models.Meeting, error)
	GetAllMeetings() ([]models.Meeting, error)
	UpdateMeeting(models.Meeting) error
	DeleteMeeting(id string) error

	// Journals
	AddJournal(models.Journal) error
	GetJournal(id string) (models.Journal, error)
	GetAllJournals() ([]models.Journal, error)
	UpdateJournal(models.Journal) error
	DeleteJournal(id string) error

	// Sticky note (singleton)
	GetNote() (models.Note, error)
	SaveNote(models.Note) error

	// Kcal tracker
	AddKcalEntry(models.KcalEntry) error
	GetKcalEntry(id string) (models.KcalEntry, error)
	GetKcalEntries(startDay, endDay string) ([]models.KcalEntry, error)
	UpdateKcalEntry(models.KcalEntry) error
	DeleteKcalEntry(id string) error

	// Utils
	GetConfigPath() string
}

// New selects a backend from the database setting: postgres:// connection
// strings get the Postgres store, everything else is treated as a SQLite
// file path.
func New(database string) Provider {
	if strings.HasPrefix(database, "postgres://") || strings.HasPrefix(database, "postgresql://") {
		return NewPostgresStore(database)
	}
	return NewSQLiteStore(database)
}
