package config

import (
	"fmt"
	"os"
	"strings"

	"mkvdefaulter/internal/discovery"
)

func (c *Config) normalize() error {
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeDefaults()
	return c.normalizeLogging()
}

func (c *Config) normalizeTools() error {
	var err error
	if c.Tools.Mkvmerge, err = normalizeBinary(c.Tools.Mkvmerge, "MKVMERGE", defaultMkvmerge); err != nil {
		return fmt.Errorf("tools.mkvmerge: %w", err)
	}
	if c.Tools.Mkvpropedit, err = normalizeBinary(c.Tools.Mkvpropedit, "MKVPROPEDIT", defaultMkvpropedit); err != nil {
		return fmt.Errorf("tools.mkvpropedit: %w", err)
	}
	return nil
}

// normalizeBinary applies the environment and name fallbacks and expands
// values that look like paths. Bare names are left for PATH lookup.
func normalizeBinary(value, envKey, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if env, ok := os.LookupEnv(envKey); ok {
			value = strings.TrimSpace(env)
		}
	}
	if value == "" {
		value = fallback
	}
	if !strings.ContainsAny(value, `/\~`) {
		return value, nil
	}
	return expandPath(value)
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Audio = strings.ToLower(strings.TrimSpace(c.Defaults.Audio))
	c.Defaults.Subtitle = strings.ToLower(strings.TrimSpace(c.Defaults.Subtitle))
	c.Defaults.Method = strings.ToLower(strings.TrimSpace(c.Defaults.Method))
	if c.Defaults.Method == "" {
		c.Defaults.Method = defaultMethod
	}
	c.Defaults.Extensions = discovery.ParseExtensions(strings.Join(c.Defaults.Extensions, ","))
	if c.Defaults.PoolSize == 0 {
		c.Defaults.PoolSize = defaultPoolSize
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
