package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"daybook/internal/migration"
	"daybook/internal/models"
	"daybook/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default settings on a fresh database
	if _, err := s.GetSettings(); errors.Is(err, ErrNotFound) {
		if err := s.SaveSettings(models.Settings{Timezone: "Local", WeightUnit: "kg"}); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daybook init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, s.migrationFS())
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) migrationFS() fs.FS {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// The embedded tree always contains sqlite/; reaching this means the
		// binary itself is broken.
		panic(err)
	}
	return sub
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, s.migrationFS())
	_, err := runner.Apply(nil)
	return err
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow(`SELECT timezone, daily_kcal_target, weight_unit FROM settings WHERE id = 1`)

	var st models.Settings
	if err := row.Scan(&st.Timezone, &st.DailyKcalTarget, &st.WeightUnit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, ErrNotFound
		}
		return models.Settings{}, err
	}
	return st, nil
}

func (s *SQLiteStore) SaveSettings(st models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, daily_kcal_target, weight_unit)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET timezone = ?, daily_kcal_target = ?, weight_unit = ?`,
		st.Timezone, st.DailyKcalTarget, st.WeightUnit,
		st.Timezone, st.DailyKcalTarget, st.WeightUnit)
	return err
}

func (s *SQLiteStore) GetNote() (models.Note, error) {
	row := s.db.QueryRow(`SELECT body, updated_at FROM note WHERE id = 1`)

	var n models.Note
	var updatedAt string
	if err := row.Scan(&n.Body, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// An empty note is not an error; the singleton row simply has
			// not been written yet.
			return models.Note{}, nil
		}
		return models.Note{}, err
	}
	n.UpdatedAt = parseStoredTime(updatedAt)
	return n, nil
}

func (s *SQLiteStore) SaveNote(n models.Note) error {
	updatedAt := formatStoredTime(time.Now())
	_, err := s.db.Exec(`
		INSERT INTO note (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET body = ?, updated_at = ?`,
		n.Body, updatedAt, n.Body, updatedAt)
	return err
}

// SQLite stores timestamps as RFC3339 strings.

func formatStoredTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseStoredTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
