package report

import (
	"strings"
	"testing"
	"time"
)

func TestFileReportClean(t *testing.T) {
	clean := FileReport{FilePath: "VTS_01_1.VOB"}
	if !clean.Clean() {
		t.Fatal("expected report with no gaps or errors to be clean")
	}

	dirty := FileReport{FilePath: "VTS_01_1.VOB", Filled: 3}
	if dirty.Clean() {
		t.Fatal("expected filled report to not be clean")
	}
}

func TestRunSummaryFilesFailed(t *testing.T) {
	s := RunSummary{
		Files: []FileReport{
			{FilePath: "a", VerificationPassed: true},
			{FilePath: "b", Err: errBoom},
			{FilePath: "c", Filled: 5, VerificationPassed: false},
		},
	}
	if got := s.FilesFailed(); got != 2 {
		t.Fatalf("expected 2 failed files, got %d", got)
	}
}

func TestRunSummaryTotalBytesFilled(t *testing.T) {
	s := RunSummary{
		Files: []FileReport{
			{BytesFilled: 2048},
			{BytesFilled: 4096},
		},
	}
	if got := s.TotalBytesFilled(); got != 6144 {
		t.Fatalf("expected 6144 total bytes, got %d", got)
	}
}

func TestRunSummaryDuration(t *testing.T) {
	unfinished := RunSummary{StartedAt: time.Now()}
	if unfinished.Duration() != 0 {
		t.Fatal("expected zero duration for unfinished run")
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	finished := RunSummary{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	if finished.Duration() != 90*time.Second {
		t.Fatalf("expected 90s duration, got %s", finished.Duration())
	}
}

func TestRenderFileTableIncludesFilePaths(t *testing.T) {
	out := RenderFileTable([]FileReport{
		{FilePath: "VTS_01_1.VOB", Filled: 3, BytesFilled: 6144},
	})
	if !strings.Contains(out, "VTS_01_1.VOB") {
		t.Fatalf("expected table to contain file path, got:\n%s", out)
	}
}

func TestFileReportPercentages(t *testing.T) {
	f := FileReport{
		ExpectedBlocks:  10,
		BlankBefore:     5,
		BlankAfter:      1,
		TruncatedBefore: 4,
		TruncatedAfter:  2,
	}
	if got := f.BlankBeforePercent(); got != 50 {
		t.Fatalf("expected 50%% blank before, got %v", got)
	}
	if got := f.BlankAfterPercent(); got != 10 {
		t.Fatalf("expected 10%% blank after, got %v", got)
	}
	if got := f.TruncatedBeforePercent(); got != 40 {
		t.Fatalf("expected 40%% truncated before, got %v", got)
	}
	if got := f.TruncatedAfterPercent(); got != 20 {
		t.Fatalf("expected 20%% truncated after, got %v", got)
	}
}

func TestFileReportPercentagesZeroExpectedBlocks(t *testing.T) {
	f := FileReport{BlankBefore: 3}
	if got := f.BlankBeforePercent(); got != 0 {
		t.Fatalf("expected 0%% when ExpectedBlocks is 0, got %v", got)
	}
}

func TestFileLineIncludesPercentagesAndStatus(t *testing.T) {
	line := FileLine(FileReport{
		FilePath:       "VTS_01_1.VOB",
		ExpectedBlocks: 10,
		Filled:         3,
		BlankBefore:    3,
	})
	if !strings.Contains(line, "file=VTS_01_1.VOB") {
		t.Fatalf("expected file path in line: %q", line)
	}
	if !strings.Contains(line, "blank_before=30.0%") {
		t.Fatalf("expected blank_before percentage in line: %q", line)
	}
	if !strings.Contains(line, "status=filled") {
		t.Fatalf("expected filled status in line: %q", line)
	}
}

func TestSummaryLineIncludesCoreFields(t *testing.T) {
	s := RunSummary{
		RunID:  "run-1",
		Device: "/dev/sr0",
		Files:  []FileReport{{FilePath: "a"}},
	}
	line := SummaryLine(s)
	if !strings.Contains(line, "run=run-1") || !strings.Contains(line, "device=/dev/sr0") {
		t.Fatalf("unexpected summary line: %q", line)
	}
}

var errBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }
