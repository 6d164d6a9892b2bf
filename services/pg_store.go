package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/panyam/ramtool/solver"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS ram_scenarios (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	body       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps scenarios in the ram_scenarios table.  The scenario
// itself lives in the body column as JSON.
type PostgresStore struct {
	db *sql.DB

	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return NewPostgresStoreFromDB(db), nil
}

// NewPostgresStoreFromDB wraps an already open handle.
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	s.schemaOnce.Do(func() {
		if _, err := s.db.ExecContext(ctx, pgSchema); err != nil {
			slog.Error("Failed to create ram_scenarios table", "error", err)
			s.schemaErr = fmt.Errorf("ensure schema: %w", err)
		}
	})
	return s.schemaErr
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*ScenarioRecord, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT id, name, body, updated_at FROM ram_scenarios WHERE id = $1`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSuchEntity
	}
	return rec, err
}

func (s *PostgresStore) Save(ctx context.Context, rec *ScenarioRecord) error {
	if err := ValidateID(rec.Id); err != nil {
		return err
	}
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(rec.Scenario)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario %s: %w", rec.Id, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO ram_scenarios (id, name, body, updated_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		rec.Id, rec.Name, string(body), rec.UpdatedAt.UTC())
	if err != nil {
		slog.Error("Failed to upsert scenario", "id", rec.Id, "error", err)
		return fmt.Errorf("failed to save scenario %s: %w", rec.Id, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*ScenarioRecord, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, body, updated_at FROM ram_scenarios ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	out := []*ScenarioRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM ram_scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNoSuchEntity
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*ScenarioRecord, error) {
	var (
		rec       ScenarioRecord
		body      []byte
		updatedAt time.Time
	)
	if err := row.Scan(&rec.Id, &rec.Name, &body, &updatedAt); err != nil {
		return nil, err
	}
	rec.Scenario = &solver.Scenario{}
	if err := json.Unmarshal(body, rec.Scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", rec.Id, err)
	}
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
