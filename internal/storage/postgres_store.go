package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/lib/pq"

	"daybook/internal/migration"
	"daybook/internal/models"
	"daybook/migrations"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, s.migrationFS())
	if _, err := runner.Apply(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.GetSettings(); errors.Is(err, ErrNotFound) {
		if err := s.SaveSettings(models.Settings{Timezone: "Local", WeightUnit: "kg"}); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, s.migrationFS())
	return runner.ValidateVersion()
}

func (s *PostgresStore) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

func (s *PostgresStore) migrationFS() fs.FS {
	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(err)
	}
	return sub
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(st models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, timezone, daily_kcal_target, weight_unit)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET timezone = $1, daily_kcal_target = $2, weight_unit = $3`,
		st.Timezone, st.DailyKcalTarget, st.WeightUnit)
	return err
}

func (s *PostgresStore) GetNote() (models.Note, error) {
	row := s.db.QueryRow(`SELECT body, updated_at FROM note WHERE id = 1`)

	var n models.Note
	if err := row.Scan(&n.Body, &n.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, nil
		}
		return models.Note{}, err
	}
	return n, nil
}

func (s *PostgresStore) SaveNote(n models.Note) error {
	_, err := s.db.Exec(`
		INSERT INTO note (id, body, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET body = $1, updated_at = $2`,
		n.Body, time.Now())
	return err
}
