package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Timestamps are written with a fixed-width fraction so text ordering stays
// chronological. Parsing accepts the fraction as optional.
const (
	sqliteTimeLayout  = "2006-01-02 15:04:05.000000"
	sqliteParseLayout = "2006-01-02 15:04:05"
)

// SQLiteStore manages the SQLite database connection for run persistence.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It expands a leading ~, creates the parent directories if needed and
// runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			pack TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			levels INTEGER NOT NULL DEFAULT 0,
			seconds INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_pack ON runs(pack);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(pack, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed run.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	prepare(run)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, pack, player, score, levels, seconds, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Pack, run.Player, run.Score, run.Levels, run.Seconds,
		run.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// TopRuns retrieves the top N runs for the given pack.
// Ties go to the earlier run, then to insertion order.
func (s *SQLiteStore) TopRuns(ctx context.Context, pack string, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pack, player, score, levels, seconds, created_at
		 FROM runs
		 WHERE pack = ?
		 ORDER BY score DESC, created_at ASC, rowid ASC
		 LIMIT ?`,
		pack, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			id        string
			createdAt any
		)
		if err := rows.Scan(&id, &r.Pack, &r.Player, &r.Score, &r.Levels, &r.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", id, err)
		}
		r.CreatedAt = parseSQLiteTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the highest score for the given pack.
// Returns 0 if no runs exist.
func (s *SQLiteStore) HighScore(ctx context.Context, pack string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM runs WHERE pack = ?",
		pack,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics for a pack.
func (s *SQLiteStore) Stats(ctx context.Context, pack string) (*Stats, error) {
	stats := &Stats{Pack: pack}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(MIN(seconds), 0)
		 FROM runs WHERE pack = ?`,
		pack,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.BestSeconds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRowContext(ctx,
		`SELECT created_at FROM runs WHERE pack = ? ORDER BY created_at DESC LIMIT 1`,
		pack,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseSQLiteTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given pack.
func (s *SQLiteStore) ClearRuns(ctx context.Context, pack string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE pack = ?", pack); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseSQLiteTime handles both driver-decoded times and raw text.
func parseSQLiteTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(sqliteParseLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC()
		}
	case []byte:
		return parseSQLiteTime(string(t))
	}
	return time.Time{}
}

var _ Store = (*SQLiteStore)(nil)
