package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/outreach-cli/internal/model"
)

// Run is one recorded enrichment run.
type Run struct {
	ID          string
	InputPath   string
	Status      string
	Stats       model.RunStats
	Checkpoints int64
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// SQLiteStore records run history using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input_path  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	processed   INTEGER NOT NULL DEFAULT 0,
	enriched    INTEGER NOT NULL DEFAULT 0,
	errors      INTEGER NOT NULL DEFAULT 0,
	emails      INTEGER NOT NULL DEFAULT 0,
	phones      INTEGER NOT NULL DEFAULT 0,
	checkpoints INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Migrate creates the schema if missing.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// StartRun records a new running run and returns its ID.
func (s *SQLiteStore) StartRun(ctx context.Context, inputPath string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_path, status, started_at) VALUES (?, ?, 'running', ?)`,
		id, inputPath, time.Now().UTC(),
	)
	if err != nil {
		return "", eris.Wrap(err, "sqlite: insert run")
	}
	return id, nil
}

// FinishRun records final statistics for a run.
func (s *SQLiteStore) FinishRun(ctx context.Context, id string, stats model.RunStats, checkpoints int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET status = 'complete', processed = ?, enriched = ?, errors = ?,
		     emails = ?, phones = ?, checkpoints = ?, finished_at = ?
		 WHERE id = ?`,
		stats.Processed, stats.Enriched, stats.Errors,
		stats.EmailsFound, stats.PhonesFound, checkpoints,
		time.Now().UTC(), id,
	)
	return eris.Wrap(err, "sqlite: finish run")
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_path, status, processed, enriched, errors,
		        emails, phones, checkpoints, started_at, finished_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished sql.NullTime
		if err := rows.Scan(
			&r.ID, &r.InputPath, &r.Status,
			&r.Stats.Processed, &r.Stats.Enriched, &r.Stats.Errors,
			&r.Stats.EmailsFound, &r.Stats.PhonesFound, &r.Checkpoints,
			&r.StartedAt, &finished,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}
