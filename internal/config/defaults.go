package config

const (
	defaultDPI                 = 300
	defaultAlphaThreshold      = 1
	defaultTargetHeightIn      = 3
	defaultPrintingMarginMm    = 7
	defaultPrintingColor       = "black"
	defaultCuttingMarginMm     = 14
	defaultCuttingColor        = "red"
	defaultSegmentationModel   = "briaai/RMBG-1.4"
	defaultSegmentationTimeout = 120
	defaultLogLevel            = "info"
	defaultLogFormat           = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DPI:            defaultDPI,
		AlphaThreshold: defaultAlphaThreshold,
		TargetHeightIn: defaultTargetHeightIn,
		Printing: Printing{
			BorderMarginMm: defaultPrintingMarginMm,
			Color:          defaultPrintingColor,
		},
		Cutting: Cutting{
			BorderMarginMm: defaultCuttingMarginMm,
			Color:          defaultCuttingColor,
		},
		Segmentation: Segmentation{
			Model:          defaultSegmentationModel,
			TimeoutSeconds: defaultSegmentationTimeout,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
