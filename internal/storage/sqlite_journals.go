package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

func (s *SQLiteStore) AddJournal(j models.Journal) error {
	_, err := s.db.Exec(`
		INSERT INTO journals (id, day, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		j.ID, j.Day, j.Title, j.Body, formatStoredTime(j.CreatedAt), formatStoredTime(j.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetJournal(id string) (models.Journal, error) {
	row := s.db.QueryRow(`SELECT id, day, title, body, created_at, updated_at FROM journals WHERE id = ?`, id)
	j, err := scanSQLiteJournal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journal{}, ErrNotFound
	}
	return j, err
}

func (s *SQLiteStore) GetAllJournals() ([]models.Journal, error) {
	rows, err := s.db.Query(`SELECT id, day, title, body, created_at, updated_at FROM journals ORDER BY day DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []models.Journal
	for rows.Next() {
		j, err := scanSQLiteJournal(rows.Scan)
		if err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (s *SQLiteStore) UpdateJournal(j models.Journal) error {
	res, err := s.db.Exec(`
		UPDATE journals SET day = ?, title = ?, body = ?, updated_at = ? WHERE id = ?`,
		j.Day, j.Title, j.Body, formatStoredTime(j.UpdatedAt), j.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteJournal(id string) error {
	res, err := s.db.Exec(`DELETE FROM journals WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSQLiteJournal(scan func(dest ...any) error) (models.Journal, error) {
	var j models.Journal
	var createdAt, updatedAt string

	err := scan(&j.ID, &j.Day, &j.Title, &j.Body, &createdAt, &updatedAt)
	if err != nil {
		return models.Journal{}, err
	}
	j.CreatedAt = parseStoredTime(createdAt)
	j.UpdatedAt = parseStoredTime(updatedAt)
	return j, nil
}
