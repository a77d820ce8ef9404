package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	lb "github.com/setanarut/stickerlayers"
)

//go:embed sample_config.toml
var sampleConfig string

// Printing configures the ink layer.
type Printing struct {
	BorderMarginMm float64 `toml:"border_margin_mm"`
	Color          string  `toml:"color"`
}

// Cutting configures the cut-line layer.
type Cutting struct {
	BorderMarginMm float64 `toml:"border_margin_mm"`
	Color          string  `toml:"color"`
	TabHeightIn    float64 `toml:"tab_height_in"`
}

// Segmentation configures where masks come from.
type Segmentation struct {
	Model          string `toml:"model"`
	InferenceURL   string `toml:"inference_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	DPI            float64 `toml:"dpi"`
	AlphaThreshold int     `toml:"alpha_threshold"`
	TargetHeightIn float64 `toml:"target_height_in"`
	TrimHalo       bool    `toml:"trim_halo"`
	Vectorize      bool    `toml:"vectorize"`

	Printing     Printing     `toml:"printing"`
	Cutting      Cutting      `toml:"cutting"`
	Segmentation Segmentation `toml:"segmentation"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the per-user config location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stickerlayers/config.toml")
}

// Load reads the config at path, or from the default locations when path is
// empty. A missing file yields the defaults. It returns the config, the path
// that was resolved and whether that file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("stickerlayers.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue, "~"))
	}
	return filepath.Abs(pathValue)
}

// CreateSample writes the commented sample configuration to path. It refuses
// to overwrite an existing file.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists: %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

// SegmentationTimeout returns the inference request timeout.
func (c *Config) SegmentationTimeout() time.Duration {
	return time.Duration(c.Segmentation.TimeoutSeconds) * time.Second
}

// PipelineOptions converts the config into pipeline options. The config must
// have passed Validate.
func (c *Config) PipelineOptions() lb.Options {
	opt := lb.OptionsForHeight(c.TargetHeightIn)
	opt.DPI = c.DPI
	opt.AlphaThreshold = uint8(c.AlphaThreshold)
	opt.TrimHalo = c.TrimHalo
	opt.Vectorize = c.Vectorize
	opt.Printing.BorderMargin = lb.Millimeters(c.Printing.BorderMarginMm)
	opt.Printing.Color, _ = lb.ParseFillColor(c.Printing.Color)
	opt.Cutting.BorderMargin = lb.Millimeters(c.Cutting.BorderMarginMm)
	opt.Cutting.Color, _ = lb.ParseFillColor(c.Cutting.Color)
	if c.Cutting.TabHeightIn > 0 {
		opt.TabHeight = lb.Inches(c.Cutting.TabHeightIn)
	}
	return opt
}
