package report

import "time"

// FileReport is the per-file outcome of a gap-fill pass, mirroring the
// counts a rerun should be able to reproduce exactly when nothing changed
// on disc between passes.
type FileReport struct {
	FilePath           string
	ExpectedBlocks     uint64
	BlankBefore        int
	BlankAfter         int
	TruncatedBefore    uint64
	TruncatedAfter     uint64
	Filled             int
	BytesFilled        uint64
	SamplesVerified    int
	VerificationPassed bool
	Err                error
}

// Clean reports whether the file needed no work and had no failures: the
// idempotent, already-complete case.
func (r FileReport) Clean() bool {
	return r.Err == nil && r.BlankAfter == 0 && r.TruncatedAfter == 0 && r.Filled == 0
}

// percent expresses count/ExpectedBlocks as a percentage, or 0 when
// ExpectedBlocks is 0 (nothing to divide by, e.g. a failed-before-scan
// file).
func (r FileReport) percent(count uint64) float64 {
	if r.ExpectedBlocks == 0 {
		return 0
	}
	return float64(count) / float64(r.ExpectedBlocks) * 100
}

// BlankBeforePercent is the fraction of expected blocks that were blank
// before the run.
func (r FileReport) BlankBeforePercent() float64 { return r.percent(uint64(r.BlankBefore)) }

// BlankAfterPercent is the fraction of expected blocks still blank after
// the run.
func (r FileReport) BlankAfterPercent() float64 { return r.percent(uint64(r.BlankAfter)) }

// TruncatedBeforePercent is the fraction of expected blocks missing from
// the file's tail before the run.
func (r FileReport) TruncatedBeforePercent() float64 { return r.percent(r.TruncatedBefore) }

// TruncatedAfterPercent is the fraction of expected blocks still missing
// from the file's tail after the run.
func (r FileReport) TruncatedAfterPercent() float64 { return r.percent(r.TruncatedAfter) }

// RunSummary aggregates FileReports across one rip run.
type RunSummary struct {
	RunID       string
	Device      string
	TargetDir   string
	Strategy    string
	ErrorPolicy string
	StartedAt   time.Time
	FinishedAt  time.Time
	Files       []FileReport
	GapMap      string
}

// FilesFailed counts files whose report carries a non-nil error, or that
// had blocks filled without VerificationPassed being set.
func (s RunSummary) FilesFailed() int {
	n := 0
	for _, f := range s.Files {
		if f.Err != nil || !f.VerificationPassed && f.Filled > 0 {
			n++
		}
	}
	return n
}

// TotalBytesFilled sums BytesFilled across every file in the run.
func (s RunSummary) TotalBytesFilled() uint64 {
	var total uint64
	for _, f := range s.Files {
		total += f.BytesFilled
	}
	return total
}

// Duration reports how long the run took, or zero if it hasn't finished.
func (s RunSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}
