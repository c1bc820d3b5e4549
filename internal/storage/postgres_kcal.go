package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"daybook/internal/models"
)

func (s *PostgresStore) AddKcalEntry(e models.KcalEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO kcal_entries (id, day, kcal, weight_kg, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Day, e.Kcal, e.WeightKg, e.Notes, e.CreatedAt, e.UpdatedAt)
	return err
}

func (s *PostgresStore) GetKcalEntry(id string) (models.KcalEntry, error) {
	row := s.db.QueryRow(`
		SELECT id, day, kcal, weight_kg, notes, created_at, updated_at
		FROM kcal_entries WHERE id = $1`, id)

	var e models.KcalEntry
	err := row.Scan(&e.ID, &e.Day, &e.Kcal, &e.WeightKg, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.KcalEntry{}, ErrNotFound
	}
	return e, err
}

func (s *PostgresStore) GetKcalEntries(startDay, endDay string) ([]models.KcalEntry, error) {
	query := `SELECT id, day, kcal, weight_kg, notes, created_at, updated_at FROM kcal_entries`
	var args []any
	var where []string
	if startDay != "" {
		args = append(args, startDay)
		where = append(where, fmt.Sprintf("day >= $%d", len(args)))
	}
	if endDay != "" {
		args = append(args, endDay)
		where = append(where, fmt.Sprintf("day <= $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY day"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.KcalEntry
	for rows.Next() {
		var e models.KcalEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Kcal, &e.WeightKg, &e.Notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) UpdateKcalEntry(e models.KcalEntry) error {
	res, err := s.db.Exec(`
		UPDATE kcal_entries SET day = $1, kcal = $2, weight_kg = $3, notes = $4, updated_at = $5
		WHERE id = $6`,
		e.Day, e.Kcal, e.WeightKg, e.Notes, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteKcalEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM kcal_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
