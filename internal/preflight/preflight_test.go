package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dvdbackup/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDeviceAccess_NotExist(t *testing.T) {
	result := CheckDeviceAccess("Optical drive", filepath.Join(t.TempDir(), "sr0"))
	if result.Passed {
		t.Fatal("expected failure for missing device")
	}
}

func TestCheckDeviceAccess_NotADevice(t *testing.T) {
	f := filepath.Join(t.TempDir(), "not-a-device")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDeviceAccess("Optical drive", f)
	if result.Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.TargetDir = t.TempDir()
	cfg.AuditLog.Enabled = false

	results := RunAll(context.Background(), &cfg)
	if len(results) != 2+len(CheckSystemDeps()) {
		t.Fatalf("expected drive + target dir + system dep checks, got %d", len(results))
	}
	found := false
	for _, r := range results {
		if r.Name == "Target directory" {
			found = true
			if !r.Passed {
				t.Errorf("target directory check failed: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected target directory check in results")
	}
}

func TestRunAll_IncludesAuditLogWhenEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.TargetDir = t.TempDir()
	cfg.AuditLog.Enabled = true
	cfg.AuditLog.Path = filepath.Join(t.TempDir(), "audit.db")

	results := RunAll(context.Background(), &cfg)
	found := false
	for _, r := range results {
		if r.Name == "Audit log directory" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected audit log directory check in results")
	}
}

func TestClassifyDiscType(t *testing.T) {
	tests := []struct {
		fstype string
		want   string
	}{
		{"udf", "Blu-ray"},
		{"iso9660", "DVD"},
		{"ext4", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		if got := classifyDiscType(tt.fstype); got != tt.want {
			t.Errorf("classifyDiscType(%q) = %q, want %q", tt.fstype, got, tt.want)
		}
	}
}

func TestDiscProbeDiscDetail(t *testing.T) {
	notDetected := DiscProbe{}
	if notDetected.DiscDetail() != "No disc detected" {
		t.Fatalf("unexpected detail for undetected disc: %q", notDetected.DiscDetail())
	}

	detected := DiscProbe{Detected: true, Device: "/dev/sr0", Label: "MOVIE", Type: "DVD"}
	want := "DVD disc 'MOVIE' on /dev/sr0"
	if got := detected.DiscDetail(); got != want {
		t.Fatalf("DiscDetail() = %q, want %q", got, want)
	}
}
