package config

import (
	"errors"
	"fmt"

	lb "github.com/setanarut/stickerlayers"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLayers(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePipeline() error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	}
	if c.AlphaThreshold < 0 || c.AlphaThreshold > 255 {
		return fmt.Errorf("alpha_threshold must be between 0 and 255, got %d", c.AlphaThreshold)
	}
	if c.TargetHeightIn <= 0 {
		return errors.New("target_height_in must be positive")
	}
	return nil
}

func (c *Config) validateLayers() error {
	if c.Printing.BorderMarginMm < 0 {
		return errors.New("printing.border_margin_mm must not be negative")
	}
	if c.Cutting.BorderMarginMm < 0 {
		return errors.New("cutting.border_margin_mm must not be negative")
	}
	if c.Cutting.TabHeightIn < 0 {
		return errors.New("cutting.tab_height_in must not be negative")
	}
	if _, err := lb.ParseFillColor(c.Printing.Color); err != nil {
		return fmt.Errorf("printing.color: %w", err)
	}
	if _, err := lb.ParseFillColor(c.Cutting.Color); err != nil {
		return fmt.Errorf("cutting.color: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
