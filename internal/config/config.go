package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var SampleConfig string

// Drive contains configuration for the optical drive being ripped.
type Drive struct {
	Device string `toml:"device"`
}

// Paths contains directories dvdbackup reads from and writes to.
type Paths struct {
	TargetDir string `toml:"target_dir"`
	LogDir    string `toml:"log_dir"`
}

// GapFill contains tuning knobs for the gap-filling copy engine.
type GapFill struct {
	Strategy       string `toml:"strategy"`
	RandomSeed     uint32 `toml:"random_seed"`
	ErrorPolicy    string `toml:"error_policy"`
	SampleCount    int    `toml:"sample_count"`
	NoOverwrite    bool   `toml:"no_overwrite"`
	EjectOnSuccess bool   `toml:"eject_on_success"`
}

// AuditLog contains configuration for the optional SQLite diagnostic journal.
type AuditLog struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	Enabled bool   `toml:"enabled"`
	Topic   string `toml:"ntfy_topic"`
	Timeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for dvdbackup.
type Config struct {
	Drive         Drive         `toml:"drive"`
	Paths         Paths         `toml:"paths"`
	GapFill       GapFill       `toml:"gap_fill"`
	AuditLog      AuditLog      `toml:"audit_log"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/dvdbackup/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When path is empty,
// Load falls back to the default config path and, failing that, to a
// project-local dvdbackup.toml, and finally to built-in defaults.
func Load(path string) (cfg *Config, resolvedPath string, exists bool, err error) {
	c := Default()

	resolvedPath, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, openErr := os.Open(resolvedPath)
		if openErr != nil {
			return nil, "", false, fmt.Errorf("open config: %w", openErr)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if decodeErr := decoder.Decode(&c); decodeErr != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", decodeErr)
		}
	}

	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}

	return &c, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, statErr := os.Stat(expanded); statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", statErr)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/dvdbackup/config.toml")
	if err != nil {
		return "", false, err
	}
	if info, statErr := os.Stat(defaultPath); statErr == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("dvdbackup.toml")
	if err != nil {
		return "", false, err
	}
	if info, statErr := os.Stat(projectPath); statErr == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the configuration references.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.TargetDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves a possibly `~`-prefixed path to an absolute one, for
// callers (CLI flag handling) that need the same expansion Load applies
// internally.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(SampleConfig), 0o644)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
