package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

func (s *PostgresStore) AddMeeting(m models.Meeting) error {
	_, err := s.db.Exec(`
		INSERT INTO meetings (id, title, notes, starts_at, ends_at, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Title, m.Notes, m.StartsAt, m.EndsAt, m.Location, m.CreatedAt, m.UpdatedAt)
	return err
}

func (s *PostgresStore) GetMeeting(id string) (models.Meeting, error) {
	row := s.db.QueryRow(`
		SELECT id, title, notes, starts_at, ends_at, location, created_at, updated_at
		FROM meetings WHERE id = $1`, id)

	var m models.Meeting
	err := row.Scan(&m.ID, &m.Title, &m.Notes, &m.StartsAt, &m.EndsAt, &m.Location, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meeting{}, ErrNotFound
	}
	return m, err
}

func (s *PostgresStore) GetAllMeetings() ([]models.Meeting, error) {
	rows, err := s.db.Query(`
		SELECT id, title, notes, starts_at, ends_at, location, created_at, updated_at
		FROM meetings ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		var m models.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Notes, &m.StartsAt, &m.EndsAt, &m.Location, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (s *PostgresStore) UpdateMeeting(m models.Meeting) error {
	res, err := s.db.Exec(`
		UPDATE meetings
		SET title = $1, notes = $2, starts_at = $3, ends_at = $4, location = $5, updated_at = $6
		WHERE id = $7`,
		m.Title, m.Notes, m.StartsAt, m.EndsAt, m.Location, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteMeeting(id string) error {
	res, err := s.db.Exec(`DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
