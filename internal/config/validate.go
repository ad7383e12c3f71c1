package config

import "fmt"

var validGapStrategies = map[string]bool{
	"forward":    true,
	"reverse":    true,
	"outside-in": true,
	"random":     true,
}

var validErrorPolicies = map[string]bool{
	"abort":          true,
	"skip":           true,
	"skip-multiblock": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the configuration values are internally consistent.
func (c *Config) Validate() error {
	if !validGapStrategies[c.GapFill.Strategy] {
		return fmt.Errorf("gap_fill.strategy: unsupported value %q", c.GapFill.Strategy)
	}
	if !validErrorPolicies[c.GapFill.ErrorPolicy] {
		return fmt.Errorf("gap_fill.error_policy: unsupported value %q", c.GapFill.ErrorPolicy)
	}
	if c.GapFill.SampleCount < 0 {
		return fmt.Errorf("gap_fill.sample_count: must be non-negative, got %d", c.GapFill.SampleCount)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
