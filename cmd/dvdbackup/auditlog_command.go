package main

import (
	"context"
	"fmt"

	"dvdbackup/internal/auditlog"
	"dvdbackup/internal/config"
	"dvdbackup/internal/report"
)

// recordAuditLog persists summary to the SQLite audit log when it's enabled
// either in configuration or via the --audit-log flag override.
func recordAuditLog(ctx context.Context, cfg *config.Config, flags ripFlags, summary report.RunSummary) error {
	enabled := flags.auditLog || (cfg != nil && cfg.AuditLog.Enabled)
	if !enabled || cfg == nil {
		return nil
	}

	store, err := auditlog.Open(cfg.AuditLog.Path)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer store.Close()

	return store.RecordRun(ctx, summary)
}
