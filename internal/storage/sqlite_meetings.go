package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

func (s *SQLiteStore) AddMeeting(m models.Meeting) error {
	_, err := s.db.Exec(`
		INSERT INTO meetings (id, title, notes, starts_at, ends_at, location, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Notes, formatStoredTime(m.StartsAt), formatStoredTime(m.EndsAt),
		m.Location, formatStoredTime(m.CreatedAt), formatStoredTime(m.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetMeeting(id string) (models.Meeting, error) {
	row := s.db.QueryRow(`
		SELECT id, title, notes, starts_at, ends_at, location, created_at, updated_at
		FROM meetings WHERE id = ?`, id)
	m, err := scanSQLiteMeeting(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meeting{}, ErrNotFound
	}
	return m, err
}

func (s *SQLiteStore) GetAllMeetings() ([]models.Meeting, error) {
	rows, err := s.db.Query(`
		SELECT id, title, notes, starts_at, ends_at, location, created_at, updated_at
		FROM meetings ORDER BY starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []models.Meeting
	for rows.Next() {
		m, err := scanSQLiteMeeting(rows.Scan)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (s *SQLiteStore) UpdateMeeting(m models.Meeting) error {
	res, err := s.db.Exec(`
		UPDATE meetings
		SET title = ?, notes = ?, starts_at = ?, ends_at = ?, location = ?, updated_at = ?
		WHERE id = ?`,
		m.Title, m.Notes, formatStoredTime(m.StartsAt), formatStoredTime(m.EndsAt),
		m.Location, formatStoredTime(m.UpdatedAt), m.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteMeeting(id string) error {
	res, err := s.db.Exec(`DELETE FROM meetings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSQLiteMeeting(scan func(dest ...any) error) (models.Meeting, error) {
	var m models.Meeting
	var startsAt, endsAt, createdAt, updatedAt string

	err := scan(&m.ID, &m.Title, &m.Notes, &startsAt, &endsAt, &m.Location, &createdAt, &updatedAt)
	if err != nil {
		return models.Meeting{}, err
	}
	m.StartsAt = parseStoredTime(startsAt)
	m.EndsAt = parseStoredTime(endsAt)
	m.CreatedAt = parseStoredTime(createdAt)
	m.UpdatedAt = parseStoredTime(updatedAt)
	return m, nil
}
