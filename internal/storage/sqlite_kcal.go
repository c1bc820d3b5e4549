package storage

import (
	"database/sql"
	"errors"

	"daybook/internal/models"
)

func (s *SQLiteStore) AddKcalEntry(e models.KcalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO kcal_entries (id, day, kcal, weight_kg, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Day, e.Kcal, e.WeightKg, e.Notes,
		formatStoredTime(e.CreatedAt), formatStoredTime(e.UpdatedAt))
	return err
}

func (s *SQLiteStore) GetKcalEntry(id string) (models.KcalEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, day, kcal, weight_kg, notes, created_at, updated_at
		FROM kcal_entries WHERE id = ?`, id)
	e, err := scanSQLiteKcal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.KcalEntry{}, ErrNotFound
	}
	return e, err
}

// GetKcalEntries returns entries within the inclusive day range. Empty bounds
// are open-ended.
func (s *SQLiteStore) GetKcalEntries(startDay, endDay string) ([]models.KcalEntry, error) {
	query := `SELECT id, day, kcal, weight_kg, notes, created_at, updated_at FROM kcal_entries`
	var args []any
	switch {
	case startDay != "" && endDay != "":
		query += ` WHERE day >= ? AND day <= ?`
		args = append(args, startDay, endDay)
	case startDay != "":
		query += ` WHERE day >= ?`
		args = append(args, startDay)
	case endDay != "":
		query += ` WHERE day <= ?`
		args = append(args, endDay)
	}
	query += ` ORDER BY day`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.KcalEntry
	for rows.Next() {
		e, err := scanSQLiteKcal(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) UpdateKcalEntry(e models.KcalEntry) error {
	res, err := s.db.Exec(`
		UPDATE kcal_entries SET day = ?, kcal = ?, weight_kg = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		e.Day, e.Kcal, e.WeightKg, e.Notes, formatStoredTime(e.UpdatedAt), e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *SQLiteStore) DeleteKcalEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM kcal_entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanSQLiteKcal(scan func(dest ...any) error) (models.KcalEntry, error) {
	var e models.KcalEntry
	var createdAt, updatedAt string

	err := scan(&e.ID, &e.Day, &e.Kcal, &e.WeightKg, &e.Notes, &createdAt, &updatedAt)
	if err != nil {
		return models.KcalEntry{}, err
	}
	e.CreatedAt = parseStoredTime(createdAt)
	e.UpdatedAt = parseStoredTime(updatedAt)
	return e, nil
}
