package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

const pgReminderColumns = `id, title, description, date, recurring, recurring_config, completed, completed_instances, converted_to_task, converted_to_task_dates, created_at, updated_at`

func (s *PostgresStore) AddReminder(r models.Reminder) error {
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
		INSERT INTO reminders (`+pgReminderColumns+`)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::jsonb, $7, $8::jsonb, $9, $10::jsonb, $11, $12)`,
		r.ID, r.Title, r.Description, r.Date, string(r.Recurring),
		cfg, r.Completed, completed, r.ConvertedToTask, converted,
		r.CreatedAt, r.UpdatedAt)
	return err
}

func (s *PostgresStore) GetReminder(id string) (models.Reminder, error) {
	row := s.db.QueryRow(`SELECT `+pgReminderColumns+` FROM reminders WHERE id = $1`, id)
	r, err := scanPGReminder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reminder{}, ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) GetAllReminders() ([]models.Reminder, error) {
	rows, err := s.db.Query(`SELECT ` + pgReminderColumns + ` FROM reminders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		r, err := scanPGReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *PostgresStore) UpdateReminder(r models.Reminder) error {
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
		SET title = $1, description = $2, date = $3, recurring = $4,
		    recurring_config = NULLIF($5, '')::jsonb, completed = $6,
		    completed_instances = $7::jsonb, converted_to_task = $8,
		    converted_to_task_dates = $9::jsonb, updated_at = $10
		WHERE id = $11`,
		r.Title, r.Description, r.Date, string(r.Recurring), cfg,
		r.Completed, completed, r.ConvertedToTask, converted, r.UpdatedAt, r.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteReminder(id string) error {
	res, err := s.db.Exec(`DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanPGReminder(scan func(dest ...any) error) (models.Reminder, error) {
	var r models.Reminder
	var recurring string
	var cfg sql.NullString
	var completedDays, convertedDays string

	err := scan(&r.ID, &r.Title, &r.Description, &r.Date, &recurring, &cfg,
		&r.Completed, &completedDays, &r.ConvertedToTask, &convertedDays,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return models.Reminder{}, err
	}

	r.Recurring = models.RecurrenceKind(recurring)
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
