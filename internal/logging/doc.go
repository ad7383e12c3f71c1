// Package logging builds structured log/slog loggers for dvdbackup, with a
// human-readable console handler and a machine-readable JSON handler, plus
// small helpers for attaching component names and request-scoped fields.
package logging
