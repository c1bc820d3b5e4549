package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

const sqliteTaskColumns = `id, title, description, due_date, priority, completed, converted_from_reminder, created_at, updated_at`

func (s *SQLiteStore) AddTask(t models.Task) error {
	var due sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: formatStoredTime(*t.DueDate), Valid: true}
	}
	_, err := s.db.Exec(`
		INSERT INTO tasks (`+sqliteTaskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, due, t.Priority, t.Completed,
		t.ConvertedFromReminder, formatStoredTime(t.CreatedAt), formatStoredTime(t.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+sqliteTaskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanSQLiteTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	return t, err
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + sqliteTaskColumns + ` FROM tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) GetTasksConvertedFrom(reminderID string) ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT `+sqliteTaskColumns+` FROM tasks WHERE converted_from_reminder = ?`, reminderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(t models.Task) error {
	var due sql.NullString
	if t.DueDate != nil {
		due = sql.NullString{String: formatStoredTime(*t.DueDate), Valid: true}
	}
	res, err := s.db.Exec(`
		UPDATE tasks
		SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?,
		    converted_from_reminder = ?, updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, due, t.Priority, t.Completed,
		t.ConvertedFromReminder, formatStoredTime(t.UpdatedAt), t.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSQLiteTask(scan func(dest ...any) error) (models.Task, error) {
	var t models.Task
	var due sql.NullString
	var createdAt, updatedAt string

	err := scan(&t.ID, &t.Title, &t.Description, &due, &t.Priority, &t.Completed,
		&t.ConvertedFromReminder, &createdAt, &updatedAt)
	if err != nil {
		return models.Task{}, err
	}

	if due.Valid {
		d := parseStoredTime(due.String)
		t.DueDate = &d
	}
	t.CreatedAt = parseStoredTime(createdAt)
	t.UpdatedAt = parseStoredTime(updatedAt)
	return t, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
