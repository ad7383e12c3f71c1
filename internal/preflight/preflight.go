package preflight

import (
	"context"
	"fmt"
	"path/filepath"

	"dvdbackup/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	_ = ctx

	var results []Result

	results = append(results, CheckDeviceAccess("Optical drive", cfg.Drive.Device))
	results = append(results, CheckDirectoryAccess("Target directory", cfg.Paths.TargetDir))

	if cfg.AuditLog.Enabled {
		results = append(results, CheckDirectoryAccess("Audit log directory", filepath.Dir(cfg.AuditLog.Path)))
	}

	for _, status := range CheckSystemDeps() {
		result := Result{Name: fmt.Sprintf("%s binary", status.Name), Passed: status.Available}
		if status.Available {
			result.Detail = fmt.Sprintf("%s (found)", status.Command)
		} else if status.Optional {
			result.Passed = true
			result.Detail = fmt.Sprintf("%s (optional, %s)", status.Command, status.Detail)
		} else {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	return results
}
