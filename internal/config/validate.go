package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFormat(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFormat() error {
	if c.Format.MaxWidth <= 0 {
		return fmt.Errorf("format.max_width must be positive, got %d", c.Format.MaxWidth)
	}
	if c.Format.PairSize <= 0 {
		return fmt.Errorf("format.pair_size must be positive, got %d", c.Format.PairSize)
	}
	if strings.ContainsAny(c.Format.MarkSuffix, "\r\n") {
		return errors.New("format.mark_suffix must not contain line breaks")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.WriteMode {
	case WriteModeInPlace, WriteModeAtomic:
	default:
		return fmt.Errorf("output.write_mode must be %q or %q, got %q", WriteModeInPlace, WriteModeAtomic, c.Output.WriteMode)
	}
	if strings.ContainsAny(c.Output.BackupSuffix, `/\`) {
		return errors.New("output.backup_suffix must not contain path separators")
	}
	return nil
}
