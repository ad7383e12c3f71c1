// Package config loads and validates dvdbackup's TOML configuration file,
// covering the disc device, output layout, gap-fill tuning, and the
// optional audit log and notification integrations.
package config
