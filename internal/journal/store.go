// Package journal persists an audit record of past scan runs in SQLite.
//
// The journal is observability only: match decisions never consult it, so
// scans remain independent across invocations.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases then refuse to open until cleared.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Record is one community's outcome within a scan run.
type Record struct {
	ID              int64
	RunID           string
	Community       string
	Mode            string
	Status          Status
	FailureReason   string
	ScannedPosts    int
	ScannedComments int
	MatchedPosts    int
	MatchedComments int
	PostMean        float64
	PostMin         int
	PostMax         int
	PostStdDev      float64
	CommentMean     float64
	CommentMin      int
	CommentMax      int
	CommentStdDev   float64
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Status classifies a community scan outcome.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
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

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Append inserts one community record and returns its row ID.
func (s *Store) Append(ctx context.Context, rec Record) (int64, error) {
	if rec.RunID == "" {
		return 0, errors.New("run id required")
	}
	if rec.Community == "" {
		return 0, errors.New("community required")
	}
	if rec.Status == "" {
		rec.Status = StatusOK
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_records (
            run_id, community, mode, status, failure_reason,
            scanned_posts, scanned_comments, matched_posts, matched_comments,
            post_score_mean, post_score_min, post_score_max, post_score_stddev,
            comment_score_mean, comment_score_min, comment_score_max, comment_score_stddev,
            started_at, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Community,
		rec.Mode,
		string(rec.Status),
		nullableString(rec.FailureReason),
		rec.ScannedPosts,
		rec.ScannedComments,
		rec.MatchedPosts,
		rec.MatchedComments,
		rec.PostMean,
		rec.PostMin,
		rec.PostMax,
		rec.PostStdDev,
		rec.CommentMean,
		rec.CommentMin,
		rec.CommentMax,
		rec.CommentStdDev,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert scan record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, community, mode, status, failure_reason,
            scanned_posts, scanned_comments, matched_posts, matched_comments,
            post_score_mean, post_score_min, post_score_max, post_score_stddev,
            comment_score_mean, comment_score_min, comment_score_max, comment_score_stddev,
            started_at, finished_at
        FROM scan_records ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scan records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var status string
	var failure sql.NullString
	var started, finished string
	err := rows.Scan(
		&rec.ID, &rec.RunID, &rec.Community, &rec.Mode, &status, &failure,
		&rec.ScannedPosts, &rec.ScannedComments, &rec.MatchedPosts, &rec.MatchedComments,
		&rec.PostMean, &rec.PostMin, &rec.PostMax, &rec.PostStdDev,
		&rec.CommentMean, &rec.CommentMin, &rec.CommentMax, &rec.CommentStdDev,
		&started, &finished,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan record row: %w", err)
	}
	rec.Status = Status(status)
	if failure.Valid {
		rec.FailureReason = failure.String
	}
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Record{}, fmt.Errorf("parse started_at: %w", err)
	}
	if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Record{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
