package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

const pgTaskColumns = `id, title, description, due_date, priority, completed, converted_from_reminder, created_at, updated_at`

func (s *PostgresStore) AddTask(t models.Task) error {
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+pgTaskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Title, t.Description, t.DueDate, t.Priority, t.Completed,
		t.ConvertedFromReminder, t.CreatedAt, t.UpdatedAt)
	return err
}

func (s *PostgresStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+pgTaskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanPGTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return t, err
}

func (s *PostgresStore) GetAllTasks() ([]models.Task, error) {
	return s.queryTasks(`SELECT ` + pgTaskColumns + ` FROM tasks ORDER BY created_at`)
}

func (s *PostgresStore) GetTasksConvertedFrom(reminderID string) ([]models.Task, error) {
	return s.queryTasks(`SELECT `+pgTaskColumns+` FROM tasks WHERE converted_from_reminder = $1`, reminderID)
}

func (s *PostgresStore) queryTasks(query string, args ...any) ([]models.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanPGTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *PostgresStore) UpdateTask(t models.Task) error {
	res, err := s.db.Exec(`
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, priority = $4, completed = $5,
		    converted_from_reminder = $6, updated_at = $7
		WHERE id = $8`,
		t.Title, t.Description, t.DueDate, t.Priority, t.Completed,
		t.ConvertedFromReminder, t.UpdatedAt, t.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanPGTask(scan func(dest ...any) error) (models.Task, error) {
	var t models.Task
	var due sql.NullTime

	err := scan(&t.ID, &t.Title, &t.Description, &due, &t.Priority, &t.Completed,
		&t.ConvertedFromReminder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return t, nil
}
