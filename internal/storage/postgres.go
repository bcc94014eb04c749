package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    pack TEXT NOT NULL,
    player TEXT NOT NULL DEFAULT '',
    score INTEGER NOT NULL,
    levels INTEGER NOT NULL DEFAULT 0,
    seconds INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    seq BIGSERIAL
);
ALTER TABLE runs ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE INDEX IF NOT EXISTS idx_runs_pack_score ON runs(pack, score DESC);
`

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveRun inserts a completed run.
func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	prepare(run)

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, pack, player, score, levels, seconds, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID.String(), run.Pack, run.Player, run.Score, run.Levels, run.Seconds, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// TopRuns returns the best runs of a pack. Ties go to the earlier run,
// then to insertion order.
func (s *PostgresStore) TopRuns(ctx context.Context, pack string, limit int) ([]Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, pack, player, score, levels, seconds, created_at
		 FROM runs WHERE pack = $1
		 ORDER BY score DESC, created_at ASC, seq ASC
		 LIMIT $2`, pack, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}

	runs, err := pgx.CollectRows(rows, scanRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan runs: %w", err)
	}
	return runs, nil
}

// HighScore returns the best score of a pack, or 0.
func (s *PostgresStore) HighScore(ctx context.Context, pack string) (int, error) {
	var score int
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(score), 0) FROM runs WHERE pack = $1`, pack).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// Stats returns aggregate figures for a pack.
func (s *PostgresStore) Stats(ctx context.Context, pack string) (*Stats, error) {
	stats := &Stats{Pack: pack}
	var last *time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8,
		        COALESCE(MIN(seconds), 0), MAX(created_at)
		 FROM runs WHERE pack = $1`, pack,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.BestSeconds, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	if last != nil {
		stats.LastPlayed = last.UTC()
	}
	return stats, nil
}

// ClearRuns deletes every run of a pack.
func (s *PostgresStore) ClearRuns(ctx context.Context, pack string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM runs WHERE pack = $1`, pack); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRun(row pgx.CollectableRow) (Run, error) {
	var (
		r  Run
		id string
	)
	if err := row.Scan(&id, &r.Pack, &r.Player, &r.Score, &r.Levels, &r.Seconds, &r.CreatedAt); err != nil {
		return Run{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("bad run id %q: %w", id, err)
	}
	r.ID = parsed
	r.CreatedAt = r.CreatedAt.UTC()
	return r, nil
}

var _ Store = (*PostgresStore)(nil)
