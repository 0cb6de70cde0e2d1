package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Counts are the per-run totals written when a run finishes.
type Counts struct {
	Matched int
	Updated int
	Skipped int
	Failed  int
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID         string
	Mode       string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     Counts
	Error      string
}

// Finished reports whether the run recorded a completion time.
func (r RunRecord) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Event is one per-gallery outcome.
type Event struct {
	RunID     string
	Pass      string
	GalleryID string
	Action    string
	Detail    string
	CreatedAt time.Time
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Run is an open run. It records events until Finish is called.
type Run struct {
	store *Store
	id    string
}

// ID returns the run's UUID.
func (r *Run) ID() string {
	return r.id
}

// BeginRun inserts a new run for mode. source names the entry point
// (plugin or cli).
func (s *Store) BeginRun(ctx context.Context, mode, source string) (*Run, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, mode, source, started_at) VALUES (?, ?, ?, ?)`,
		id, mode, source, timestamp(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &Run{store: s, id: id}, nil
}

// RecordEvent appends one gallery outcome to the run.
func (r *Run) RecordEvent(ctx context.Context, pass, galleryID, action, detail string) error {
	_, err := r.store.db.ExecContext(ctx,
		`INSERT INTO run_events (run_id, pass, gallery_id, action, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		r.id, pass, galleryID, action, nullableString(detail), timestamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert run event: %w", err)
	}
	return nil
}

// Finish stamps the completion time, totals, and the run error if any.
func (r *Run) Finish(ctx context.Context, counts Counts, runErr error) error {
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}
	_, err := r.store.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, matched = ?, updated = ?, skipped = ?, failed = ?, error_message = ?
         WHERE id = ?`,
		timestamp(time.Now()), counts.Matched, counts.Updated, counts.Skipped, counts.Failed,
		nullableString(message), r.id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, source, started_at, finished_at, matched, updated, skipped, failed, error_message
         FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			startedAt  string
			finishedAt sql.NullString
			errMessage sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Source, &startedAt, &finishedAt,
			&rec.Counts.Matched, &rec.Counts.Updated, &rec.Counts.Skipped, &rec.Counts.Failed, &errMessage); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = parseTimestamp(startedAt)
		if finishedAt.Valid {
			rec.FinishedAt = parseTimestamp(finishedAt.String)
		}
		rec.Error = errMessage.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// Events returns the events of one run in insertion order.
func (s *Store) Events(ctx context.Context, runID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, pass, gallery_id, action, detail, created_at
         FROM run_events WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ev        Event
			detail    sql.NullString
			createdAt string
		)
		if err := rows.Scan(&ev.RunID, &ev.Pass, &ev.GalleryID, &ev.Action, &detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		ev.Detail = detail.String
		ev.CreatedAt = parseTimestamp(createdAt)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run events: %w", err)
	}
	return out, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTimestamp(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
