package config

import "strings"

func (c *Config) normalize() {
	c.Printing.Color = strings.ToLower(strings.TrimSpace(c.Printing.Color))
	c.Cutting.Color = strings.ToLower(strings.TrimSpace(c.Cutting.Color))
	if c.Printing.Color == "" {
		c.Printing.Color = defaultPrintingColor
	}
	if c.Cutting.Color == "" {
		c.Cutting.Color = defaultCuttingColor
	}
	c.Segmentation.Model = strings.TrimSpace(c.Segmentation.Model)
	c.Segmentation.InferenceURL = strings.TrimRight(strings.TrimSpace(c.Segmentation.InferenceURL), "/")
	if c.Segmentation.Model == "" {
		c.Segmentation.Model = defaultSegmentationModel
	}
	if c.Segmentation.TimeoutSeconds <= 0 {
		c.Segmentation.TimeoutSeconds = defaultSegmentationTimeout
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
