package auditlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"dvdbackup/internal/report"
)

// Store persists rip-run and per-file diagnostic history.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the audit log database at path, applying
// migrations. The parent directory is created if it doesn't exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure audit log directory: %w", err)
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
	if err := store.applyMigrations(context.Background()); err != nil {
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

// RecordRun inserts the run header and one row per file report. It is
// called once, after a rip completes, and never consulted by the copy
// engine itself.
func (s *Store) RecordRun(ctx context.Context, summary report.RunSummary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, device, target_dir, strategy, error_policy, started_at, finished_at, files_total, files_failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.Device,
		summary.TargetDir,
		summary.Strategy,
		summary.ErrorPolicy,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		len(summary.Files),
		summary.FilesFailed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, f := range summary.Files {
		errMsg := sql.NullString{}
		if f.Err != nil {
			errMsg = sql.NullString{String: f.Err.Error(), Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO file_reports (run_id, file_path, gaps_found, gaps_filled, bytes_filled, samples_verified, verification_passed, error_message, created_at)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID,
			f.FilePath,
			f.BlankBefore,
			f.Filled,
			f.BytesFilled,
			f.SamplesVerified,
			boolToInt(f.VerificationPassed),
			errMsg,
			now,
		)
		if err != nil {
			return fmt.Errorf("insert file report for %s: %w", f.FilePath, err)
		}
	}

	return tx.Commit()
}

// RunHeader summarizes a stored run without its per-file rows.
type RunHeader struct {
	RunID       string
	Device      string
	TargetDir   string
	Strategy    string
	ErrorPolicy string
	StartedAt   time.Time
	FinishedAt  time.Time
	FilesTotal  int
	FilesFailed int
}

// RecentRuns returns the most recently recorded runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunHeader, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, device, target_dir, strategy, error_policy, started_at, finished_at, files_total, files_failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var headers []RunHeader
	for rows.Next() {
		var h RunHeader
		var started, finished string
		if err := rows.Scan(&h.RunID, &h.Device, &h.TargetDir, &h.Strategy, &h.ErrorPolicy, &started, &finished, &h.FilesTotal, &h.FilesFailed); err != nil {
			return nil, fmt.Errorf("scan run header: %w", err)
		}
		h.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		h.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

// FileReportRow is a stored per-file diagnostic row for a given run.
type FileReportRow struct {
	FilePath           string
	GapsFound          int
	GapsFilled         int
	BytesFilled        uint64
	SamplesVerified    int
	VerificationPassed bool
	ErrorMessage       string
	CreatedAt          time.Time
}

// FileReportsForRun returns every stored file report for the given run ID.
func (s *Store) FileReportsForRun(ctx context.Context, runID string) ([]FileReportRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_path, gaps_found, gaps_filled, bytes_filled, samples_verified, verification_passed, error_message, created_at
         FROM file_reports WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query file reports: %w", err)
	}
	defer rows.Close()

	var reports []FileReportRow
	for rows.Next() {
		var r FileReportRow
		var verified int
		var errMsg sql.NullString
		var created string
		if err := rows.Scan(&r.FilePath, &r.GapsFound, &r.GapsFilled, &r.BytesFilled, &r.SamplesVerified, &verified, &errMsg, &created); err != nil {
			return nil, fmt.Errorf("scan file report: %w", err)
		}
		r.VerificationPassed = verified != 0
		r.ErrorMessage = errMsg.String
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
