// Package report turns the gap-fill engine's per-file results into
// human-facing output: a go-pretty table for TTY sessions or one plain line
// per file otherwise, followed in both cases by a one-line run summary.
package report
