package auditlog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"dvdbackup/internal/auditlog"
	"dvdbackup/internal/report"
)

func mustOpen(t *testing.T) *auditlog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")
	store, err := auditlog.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenAppliesMigrations(t *testing.T) {
	store := mustOpen(t)

	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	summary := report.RunSummary{
		RunID:       "run-1",
		Device:      "/dev/sr0",
		TargetDir:   "/mnt/rips/MOVIE",
		Strategy:    "forward",
		ErrorPolicy: "skip",
		StartedAt:   start,
		FinishedAt:  start.Add(5 * time.Minute),
		Files: []report.FileReport{
			{FilePath: "VTS_01_1.VOB", BlankBefore: 3, Filled: 3, BytesFilled: 6144, SamplesVerified: 8, VerificationPassed: true},
			{FilePath: "VTS_01_2.VOB", Err: errors.New("read error at block 50")},
		},
	}

	if err := store.RecordRun(context.Background(), summary); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].RunID != "run-1" || runs[0].FilesTotal != 2 || runs[0].FilesFailed != 1 {
		t.Fatalf("unexpected run header: %#v", runs[0])
	}

	rows, err := store.FileReportsForRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("FileReportsForRun failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 file report rows, got %d", len(rows))
	}
	if rows[1].ErrorMessage != "read error at block 50" {
		t.Fatalf("expected error message preserved, got %q", rows[1].ErrorMessage)
	}
}

func TestRecentRunsEmptyDatabase(t *testing.T) {
	store := mustOpen(t)

	runs, err := store.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}
