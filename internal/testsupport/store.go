package testsupport

import (
	"path/filepath"
	"testing"

	"dvdbackup/internal/auditlog"
	"dvdbackup/internal/config"
)

// MustOpenAuditLog opens an auditlog.Store rooted under cfg's audit log
// path (or a fresh temp file when cfg is nil) and registers cleanup.
func MustOpenAuditLog(t testing.TB, cfg *config.Config) *auditlog.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audit.db")
	if cfg != nil && cfg.AuditLog.Path != "" {
		path = cfg.AuditLog.Path
	}

	store, err := auditlog.Open(path)
	if err != nil {
		t.Fatalf("auditlog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
