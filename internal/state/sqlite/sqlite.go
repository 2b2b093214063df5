// Package sqlite backs the Store with a single-file SQLite database. Useful
// when several grab jobs on one host share a state location: the database
// serializes the read-then-write sequence that the file store guards with a
// lock file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/swgrab/internal/domain"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS observations (
	target      TEXT PRIMARY KEY,
	available   INTEGER NOT NULL,
	http_status INTEGER NOT NULL,
	latency_ms  REAL NOT NULL,
	detail      TEXT NOT NULL,
	checked_at  TEXT NOT NULL
);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Load(ctx context.Context, target string) (*domain.ObservedState, error) {
	const q = `SELECT available, http_status, latency_ms, detail, checked_at
FROM observations WHERE target = ?`
	var (
		obs       domain.ObservedState
		available int
		checkedAt string
	)
	err := s.db.QueryRowContext(ctx, q, target).
		Scan(&available, &obs.HTTPStatus, &obs.LatencyMS, &obs.Detail, &checkedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load observation: %w", err)
	}
	obs.Available = available != 0
	obs.CheckedAt, err = time.Parse(time.RFC3339Nano, checkedAt)
	if err != nil {
		return nil, fmt.Errorf("parse checked_at: %w", err)
	}
	return &obs, nil
}

func (s *Store) Save(ctx context.Context, target string, obs domain.ObservedState) error {
	const q = `
INSERT INTO observations (target, available, http_status, latency_ms, detail, checked_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(target) DO UPDATE SET
	available   = excluded.available,
	http_status = excluded.http_status,
	latency_ms  = excluded.latency_ms,
	detail      = excluded.detail,
	checked_at  = excluded.checked_at`
	available := 0
	if obs.Available {
		available = 1
	}
	_, err := s.db.ExecContext(ctx, q, target, available, obs.HTTPStatus, obs.LatencyMS,
		obs.Detail, obs.CheckedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save observation: %w", err)
	}
	return nil
}
