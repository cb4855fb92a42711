package config

import (
	"errors"
	"fmt"

	"mkvdefaulter/internal/language"
	"mkvdefaulter/internal/tracks"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if c.Tools.TimeoutSeconds < 0 {
		return errors.New("tools.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if _, err := tracks.ParseMethod(c.Defaults.Method); err != nil {
		return fmt.Errorf("defaults.method: %w", err)
	}
	if c.Defaults.Depth < 0 {
		return errors.New("defaults.depth must be >= 0")
	}
	if c.Defaults.PoolSize < 1 {
		return errors.New("defaults.pool_size must be >= 1")
	}
	if c.Defaults.Audio != "" {
		if language.IsOff(c.Defaults.Audio) {
			return errors.New("defaults.audio cannot be \"off\"")
		}
		if !language.Known(c.Defaults.Audio) {
			return fmt.Errorf("defaults.audio: unknown language code %q", c.Defaults.Audio)
		}
	}
	if c.Defaults.Subtitle != "" && !language.IsOff(c.Defaults.Subtitle) && !language.Known(c.Defaults.Subtitle) {
		return fmt.Errorf("defaults.subtitle: unknown language code %q", c.Defaults.Subtitle)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "none", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of none, debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
