package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

func (s *PostgresStore) AddJournal(j models.Journal) error {
	_, err := s.db.Exec(`
		INSERT INTO journals (id, day, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		j.ID, j.Day, j.Title, j.Body, j.CreatedAt, j.UpdatedAt)
	return err
}

func (s *PostgresStore) GetJournal(id string) (models.Journal, error) {
	row := s.db.QueryRow(`SELECT id, day, title, body, created_at, updated_at FROM journals WHERE id = $1`, id)

	var j models.Journal
	err := row.Scan(&j.ID, &j.Day, &j.Title, &j.Body, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Journal{}, ErrNotFound
	}
	return j, err
}

func (s *PostgresStore) GetAllJournals() ([]models.Journal, error) {
	rows, err := s.db.Query(`SELECT id, day, title, body, created_at, updated_at FROM journals ORDER BY day DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journals []models.Journal
	for rows.Next() {
		var j models.Journal
		if err := rows.Scan(&j.ID, &j.Day, &j.Title, &j.Body, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		journals = append(journals, j)
	}
	return journals, rows.Err()
}

func (s *PostgresStore) UpdateJournal(j models.Journal) error {
	res, err := s.db.Exec(`
		UPDATE journals SET day = $1, title = $2, body = $3, updated_at = $4 WHERE id = $5`,
		j.Day, j.Title, j.Body, j.UpdatedAt, j.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteJournal(id string) error {
	res, err := s.db.Exec(`DELETE FROM journals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
