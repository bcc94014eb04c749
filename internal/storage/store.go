// Package storage persists completed maze runs for the high-score table.
// SQLite (pure Go, modernc.org/sqlite) is the default backend; a
// postgres:// DSN selects PostgreSQL through pgx.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store records and queries completed runs.
type Store interface {
	// SaveRun inserts a run. A zero ID or CreatedAt is filled in.
	SaveRun(ctx context.Context, run *Run) error
	// TopRuns returns the best runs for a pack, highest score first.
	TopRuns(ctx context.Context, pack string, limit int) ([]Run, error)
	// HighScore returns the best score for a pack, or 0.
	HighScore(ctx context.Context, pack string) (int, error)
	// Stats returns aggregate figures for a pack.
	Stats(ctx context.Context, pack string) (*Stats, error)
	// ClearRuns deletes every run of a pack.
	ClearRuns(ctx context.Context, pack string) error
	// Close releases database resources.
	Close() error
}

// Run is one finished game: every level of a pack completed.
type Run struct {
	ID        uuid.UUID
	Pack      string
	Player    string
	Score     int
	Levels    int
	Seconds   int
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a pack.
type Stats struct {
	Pack        string
	Runs        int
	HighScore   int
	AvgScore    float64
	BestSeconds int
	LastPlayed  time.Time
}

// DefaultLimit is used when TopRuns is called with a non-positive limit.
const DefaultLimit = 10

// Open picks a backend from the DSN: postgres:// and postgresql:// URLs
// use PostgreSQL, anything else is a SQLite file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if IsPostgresDSN(dsn) {
		pg, err := NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// IsPostgresDSN reports whether dsn is a PostgreSQL connection URL.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// prepare fills the generated fields of a run before insert.
func prepare(run *Run) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC().Truncate(time.Microsecond)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
