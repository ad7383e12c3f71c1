package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGapFill()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error

	if strings.TrimSpace(c.Drive.Device) == "" {
		c.Drive.Device = defaultDevice
	}

	if strings.TrimSpace(c.Paths.TargetDir) == "" {
		c.Paths.TargetDir = defaultTargetDir
	}
	if c.Paths.TargetDir, err = expandPath(c.Paths.TargetDir); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}

	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	if strings.TrimSpace(c.AuditLog.Path) == "" {
		c.AuditLog.Path = defaultAuditLogPath
	}
	if c.AuditLog.Path, err = expandPath(c.AuditLog.Path); err != nil {
		return fmt.Errorf("audit_log.path: %w", err)
	}

	return nil
}

func (c *Config) normalizeGapFill() {
	if strings.TrimSpace(c.GapFill.Strategy) == "" {
		c.GapFill.Strategy = defaultGapStrategy
	}
	if strings.TrimSpace(c.GapFill.ErrorPolicy) == "" {
		c.GapFill.ErrorPolicy = defaultErrorPolicy
	}
	if c.GapFill.SampleCount == 0 {
		c.GapFill.SampleCount = defaultSampleCount
	}
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
}
