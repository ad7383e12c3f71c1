package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"dvdbackup/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDeviceAccess verifies that the optical drive device node exists and
// is at least readable.
func CheckDeviceAccess(name, device string) Result {
	info, err := os.Stat(device)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", device)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", device, err)}
	}
	if info.Mode()&os.ModeDevice == 0 && info.Mode()&os.ModeCharDevice == 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a device node)", device)}
	}
	if err := unix.Access(device, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", device, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", device)}
}

// CheckSystemDeps evaluates the system-level binaries dvdbackup relies on
// beyond the raw block I/O it performs itself.
func CheckSystemDeps() []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "eject",
			Command:     "eject",
			Description: "Ejects the tray after a successful rip",
			Optional:    true,
		},
		{
			Name:        "lsblk",
			Command:     "lsblk",
			Description: "Classifies inserted media as DVD or Blu-ray",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
