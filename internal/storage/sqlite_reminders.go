package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

const sqliteReminderColumns = `id, title, description, date, recurring, recurring_config, completed, completed_instances, converted_to_task, converted_to_task_dates, created_at, updated_at`

func (s *SQLiteStore) AddReminder(r models.Reminder) error {
	cfg, err := encodeConfig(r.RecurringConfig)
	if err != nil {
		return err
	}
	completed, err := encodeDays(r.CompletedInstances)
	if err != nil {
		return err
	}
	converted, err := encodeDays(r.ConvertedToTaskDates)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO reminders (`+sqliteReminderColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, formatStoredTime(r.Date), string(r.Recurring),
		cfg, r.Completed, completed, r.ConvertedToTask, converted,
		formatStoredTime(r.CreatedAt), formatStoredTime(r.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+sqliteReminderColumns+` FROM reminders WHERE id = ?`, id)
	r, err := scanSQLiteReminder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, ErrNotFound
	}
	return r, err
}

func (s *SQLiteStore) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`SELECT ` + sqliteReminderColumns + ` FROM reminders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanSQLiteReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) UpdateReminder(r models.Reminder) error {
	cfg, err := encodeConfig(r.RecurringConfig)
	if err != nil {
		return err
	}
	completed, err := encodeDays(r.CompletedInstances)
	if err != nil {
		return err
	}
	converted, err := encodeDays(r.ConvertedToTaskDates)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE reminders
		SET title = ?, description = ?, date = ?, recurring = ?, recurring_config = ?,
		    completed = ?, completed_instances = ?, converted_to_task = ?,
		    converted_to_task_dates = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Description, formatStoredTime(r.Date), string(r.Recurring), cfg,
		r.Completed, completed, r.ConvertedToTask, converted,
		formatStoredTime(r.UpdatedAt), r.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSQLiteReminder(scan func(dest ...any) error) (models.Reminder, error) {
	var r models.Reminder
	var date, createdAt, updatedAt, recurring string
	var cfg sql.NullString
	var completedDays, convertedDays string

	err := scan(&r.ID, &r.Title, &r.Description, &date, &recurring, &cfg,
		&r.Completed, &completedDays, &r.ConvertedToTask, &convertedDays,
		&createdAt, &updatedAt)
	if err != nil {
		return models.Reminder{}, err
	}

	r.Date = parseStoredTime(date)
	r.Recurring = models.RecurrenceKind(recurring)
	r.CreatedAt = parseStoredTime(createdAt)
	r.UpdatedAt = parseStoredTime(updatedAt)

	if cfg.Valid {
		parsed, err := decodeConfig(cfg.String)
		if err != nil {
			return models.Reminder{}, err
		}
		r.RecurringConfig = parsed
	}
	if r.CompletedInstances, err = decodeDays(completedDays); err != nil {
		return models.Reminder{}, err
	}
	if r.ConvertedToTaskDates, err = decodeDays(convertedDays); err != nil {
		return models.Reminder{}, err
	}
	return r, nil
}
