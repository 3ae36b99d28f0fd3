package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"seqfetch/internal/accession"
)

// Store persists download session history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at the given path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
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

// RecordSession stores one completed invocation together with its per-run
// outcomes in a single transaction.
func (s *Store) RecordSession(ctx context.Context, session Session, outcomes map[accession.Run]bool) error {
	if session.ID == "" {
		return errors.New("session ID required")
	}

	session.Total = len(outcomes)
	session.Succeeded = 0
	for _, ok := range outcomes {
		if ok {
			session.Succeeded++
		}
	}
	session.Failed = session.Total - session.Succeeded

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO sessions (
            id, series, started_at, finished_at, workers, split,
            total, succeeded, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		nullableString(session.Series),
		session.StartedAt.UTC().Format(time.RFC3339Nano),
		session.FinishedAt.UTC().Format(time.RFC3339Nano),
		session.Workers,
		boolToInt(session.Split),
		session.Total,
		session.Succeeded,
		session.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	runs := make([]accession.Run, 0, len(outcomes))
	for run := range outcomes {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i] < runs[j] })

	for _, run := range runs {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO session_runs (session_id, run, succeeded) VALUES (?, ?, ?)`,
			session.ID,
			string(run),
			boolToInt(outcomes[run]),
		); err != nil {
			return fmt.Errorf("insert session run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// ListSessions returns the most recent sessions, newest first. A limit of
// zero or less returns all sessions.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// SessionRuns returns the per-run outcomes for one session ordered by run.
func (s *Store) SessionRuns(ctx context.Context, sessionID string) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, run, succeeded FROM session_runs WHERE session_id = ? ORDER BY run`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("session runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var (
			record    RunRecord
			succeeded int
		)
		if err := rows.Scan(&record.SessionID, &record.Run, &succeeded); err != nil {
			return nil, err
		}
		record.Succeeded = succeeded != 0
		records = append(records, record)
	}
	return records, rows.Err()
}

// LastOutcome reports the most recent recorded outcome for a run, or nil when
// the run has never been attempted.
func (s *Store) LastOutcome(ctx context.Context, run accession.Run) (*RunRecord, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT sr.session_id, sr.run, sr.succeeded
         FROM session_runs sr
         JOIN sessions s ON s.id = sr.session_id
         WHERE sr.run = ?
         ORDER BY s.started_at DESC
         LIMIT 1`,
		string(run),
	)

	var (
		record    RunRecord
		succeeded int
	)
	err := row.Scan(&record.SessionID, &record.Run, &succeeded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last outcome: %w", err)
	}
	record.Succeeded = succeeded != 0
	return &record, nil
}

const sessionColumns = "id, series, started_at, finished_at, workers, split, total, succeeded, failed"

func scanSession(scanner interface{ Scan(dest ...any) error }) (Session, error) {
	var (
		session     Session
		series      sql.NullString
		startedRaw  string
		finishedRaw string
		split       int
	)
	if err := scanner.Scan(
		&session.ID,
		&series,
		&startedRaw,
		&finishedRaw,
		&session.Workers,
		&split,
		&session.Total,
		&session.Succeeded,
		&session.Failed,
	); err != nil {
		return Session{}, err
	}

	session.Series = series.String
	session.Split = split != 0
	if started, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		session.StartedAt = started
	}
	if finished, err := time.Parse(time.RFC3339Nano, finishedRaw); err == nil {
		session.FinishedAt = finished
	}
	return session, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
