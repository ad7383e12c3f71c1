package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ShouldColorize reports whether ANSI colors should be applied for the
// given writer, mirroring color's own auto-detection but exposed so
// callers can decide once and pass the result through.
func ShouldColorize(w io.Writer) bool {
	if !color.NoColor {
		if file, ok := w.(*os.File); ok {
			fd := file.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	return false
}

func statusCell(f FileReport) string {
	switch {
	case f.Err != nil:
		return color.RedString("error: %v", f.Err)
	case f.Filled > 0 && f.BlankAfter == 0 && f.TruncatedAfter == 0:
		return color.GreenString("filled")
	case f.BlankAfter > 0 || f.TruncatedAfter > 0:
		return color.RedString("incomplete")
	default:
		return color.GreenString("clean")
	}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func humanizeBytes(v uint64) string {
	return humanize.IBytes(v)
}

func percentCell(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// SummaryLine renders the single-line summary for a run. rip prints it after
// the per-file output whether or not that output is a terminal.
func SummaryLine(s RunSummary) string {
	return fmt.Sprintf(
		"run=%s device=%s files=%d failed=%d filled=%s duration=%s",
		s.RunID,
		s.Device,
		len(s.Files),
		s.FilesFailed(),
		humanizeBytes(s.TotalBytesFilled()),
		s.Duration(),
	)
}

// FileLine renders one FileReport as the plain-text per-file line used for
// non-TTY/log output: filled block count plus before/after zero and
// truncated percentages, each relative to ExpectedBlocks.
func FileLine(f FileReport) string {
	status := "clean"
	switch {
	case f.Err != nil:
		status = fmt.Sprintf("error: %v", f.Err)
	case f.Filled > 0 && f.BlankAfter == 0 && f.TruncatedAfter == 0:
		status = "filled"
	case f.BlankAfter > 0 || f.TruncatedAfter > 0:
		status = "incomplete"
	}
	return fmt.Sprintf(
		"file=%s filled=%d blank_before=%.1f%% blank_after=%.1f%% truncated_before=%.1f%% truncated_after=%.1f%% status=%s",
		f.FilePath,
		f.Filled,
		f.BlankBeforePercent(),
		f.BlankAfterPercent(),
		f.TruncatedBeforePercent(),
		f.TruncatedAfterPercent(),
		status,
	)
}
