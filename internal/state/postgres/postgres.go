// Package postgres backs the Store with a shared PostgreSQL database, for
// fleets of grab jobs reporting into one place.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamed0406/swgrab/internal/domain"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(ctxPing); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: p}
	if err := s.migrate(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() { s.pool.Close() }

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS observations (
	target      TEXT PRIMARY KEY,
	available   BOOLEAN NOT NULL,
	http_status INTEGER NOT NULL,
	latency_ms  DOUBLE PRECISION NOT NULL,
	detail      TEXT NOT NULL,
	checked_at  TIMESTAMPTZ NOT NULL
)`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Load(ctx context.Context, target string) (*domain.ObservedState, error) {
	const q = `SELECT available, http_status, latency_ms, detail, checked_at
FROM observations WHERE target = $1`
	var obs domain.ObservedState
	err := s.pool.QueryRow(ctx, q, target).
		Scan(&obs.Available, &obs.HTTPStatus, &obs.LatencyMS, &obs.Detail, &obs.CheckedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load observation: %w", err)
	}
	return &obs, nil
}

func (s *Store) Save(ctx context.Context, target string, obs domain.ObservedState) error {
	const q = `
INSERT INTO observations (target, available, http_status, latency_ms, detail, checked_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (target) DO UPDATE SET
	available   = EXCLUDED.available,
	http_status = EXCLUDED.http_status,
	latency_ms  = EXCLUDED.latency_ms,
	detail      = EXCLUDED.detail,
	checked_at  = EXCLUDED.checked_at`
	_, err := s.pool.Exec(ctx, q, target, obs.Available, obs.HTTPStatus, obs.LatencyMS,
		obs.Detail, obs.CheckedAt)
	if err != nil {
		return fmt.Errorf("save observation: %w", err)
	}
	return nil
}
