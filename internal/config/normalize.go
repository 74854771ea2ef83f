package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"srtwrap/internal/caption"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFormat(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFormat() error {
	if value, ok := os.LookupEnv("SRTWRAP_MAX_WIDTH"); ok && strings.TrimSpace(value) != "" {
		width, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("SRTWRAP_MAX_WIDTH: %w", err)
		}
		c.Format.MaxWidth = width
	}
	if c.Format.MaxWidth == 0 {
		c.Format.MaxWidth = caption.DefaultMaxWidth
	}
	if c.Format.PairSize == 0 {
		c.Format.PairSize = caption.DefaultPairSize
	}
	if c.Format.MarkSuffix == "" {
		c.Format.MarkSuffix = caption.DefaultMarkSuffix
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.BackupSuffix = strings.TrimSpace(c.Output.BackupSuffix)
	if c.Output.BackupSuffix == "" {
		c.Output.BackupSuffix = defaultBackupSuffix
	}
	c.Output.WriteMode = strings.ToLower(strings.TrimSpace(c.Output.WriteMode))
	switch c.Output.WriteMode {
	case "", "in-place", WriteModeInPlace:
		c.Output.WriteMode = WriteModeInPlace
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("SRTWRAP_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
