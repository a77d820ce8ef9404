package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	lb "github.com/setanarut/stickerlayers"
	"github.com/setanarut/stickerlayers/internal/config"
	"github.com/setanarut/stickerlayers/internal/logging"
	"github.com/setanarut/stickerlayers/internal/segment"
	"github.com/setanarut/stickerlayers/utils"
)

type buildFlags struct {
	input    string
	mask     string
	maskURL  string
	model    string
	output   string
	height   float64
	dpi      float64
	vector   bool
	trimHalo bool
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Create the printing and cutting layers for an image",
		Long: `Create the printing and cutting layers for an image.

The subject comes from --input combined with a mask (--mask file or the
inference service at --mask-url / segmentation.inference_url). Without a
mask the input's own alpha channel is used, so a background-removed PNG can
be passed directly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runBuild(cmd, ctx, cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Source image (PNG, JPEG, WebP, BMP, TIFF)")
	cmd.Flags().StringVar(&flags.mask, "mask", "", "Segmentation mask image with the same size as the input")
	cmd.Flags().StringVar(&flags.maskURL, "mask-url", "", "Inference service URL returning a mask (overrides config)")
	cmd.Flags().StringVar(&flags.model, "model", "", "Segmentation model identifier (overrides config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output directory")
	cmd.Flags().Float64Var(&flags.height, "height", 0, "Printed subject height in inches (3 or 7 use preset tabs)")
	cmd.Flags().Float64Var(&flags.dpi, "dpi", 0, "DPI for all physical conversions (overrides config)")
	cmd.Flags().BoolVar(&flags.vector, "vector", false, "Also write SVG outlines")
	cmd.Flags().BoolVar(&flags.trimHalo, "trim-halo", false, "Trim layers to their opaque bounds after the border")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	cmd.MarkFlagsMutuallyExclusive("mask", "mask-url")

	return cmd
}

func runBuild(cmd *cobra.Command, cmdCtx *commandContext, base *config.Config, flags buildFlags) error {
	cfg := applyBuildOverrides(*base, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}
	opt := cfg.PipelineOptions()

	runCtx := logging.WithRunID(cmd.Context(), uuid.NewString())
	logger := logging.WithContext(runCtx, cmdCtx.loggerValue())

	img, err := utils.ReadImage(flags.input)
	if err != nil {
		return err
	}
	builder := lb.NewLayerBuilder(img, nil)

	if provider := maskProvider(&cfg, flags); provider != nil {
		logger.Info("segmenting", slog.String("model", cfg.Segmentation.Model))
		if err := builder.Segment(runCtx, provider, cfg.Segmentation.Model); err != nil {
			logger.Error("segmentation failed", slog.String(logging.FieldStage, "segment"), slog.Any("error", err))
			return err
		}
	}

	logger.Info("building layers",
		slog.String("input", flags.input),
		slog.Float64("height_in", cfg.TargetHeightIn),
		slog.Float64("dpi", opt.DPI),
	)
	if err := builder.Build(runCtx, opt); err != nil {
		var se *lb.StageError
		if errors.As(err, &se) {
			logger.Error("build failed", slog.String(logging.FieldStage, se.Stage), slog.Any("error", se.Err))
		}
		return err
	}

	written, err := writeLayers(builder, flags.output)
	if err != nil {
		return err
	}
	summary := newLayerTable(opt.DPI)
	for _, w := range written {
		logger.Debug("wrote layer", slog.String(logging.FieldLayer, w.name), slog.String("path", w.path))
		if w.img != nil {
			summary.add(w.name, w.img, w.path)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.render())
	return nil
}

func applyBuildOverrides(cfg config.Config, flags buildFlags) config.Config {
	if flags.height > 0 {
		cfg.TargetHeightIn = flags.height
	}
	if flags.dpi > 0 {
		cfg.DPI = flags.dpi
	}
	if flags.vector {
		cfg.Vectorize = true
	}
	if flags.trimHalo {
		cfg.TrimHalo = true
	}
	if m := strings.TrimSpace(flags.model); m != "" {
		cfg.Segmentation.Model = m
	}
	if u := strings.TrimSpace(flags.maskURL); u != "" {
		cfg.Segmentation.InferenceURL = u
	}
	return cfg
}

func maskProvider(cfg *config.Config, flags buildFlags) lb.MaskProvider {
	if flags.mask != "" {
		return segment.FileProvider{Path: flags.mask}
	}
	if cfg.Segmentation.InferenceURL != "" {
		return segment.NewHTTPProvider(cfg.Segmentation.InferenceURL, &http.Client{Timeout: cfg.SegmentationTimeout()})
	}
	return nil
}

type writtenLayer struct {
	name string
	path string
	img  *image.NRGBA
}

func writeLayers(builder *lb.LayerBuilder, dir string) ([]writtenLayer, error) {
	rasters := []struct {
		name string
		img  *image.NRGBA
	}{
		{"subject", builder.SubjectLayer()},
		{"printing", builder.PrintingLayer()},
		{"cutting", builder.CuttingLayer()},
	}
	var written []writtenLayer
	for _, r := range rasters {
		path := filepath.Join(dir, r.name+".png")
		if err := utils.SaveImage(r.img, path); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, writtenLayer{name: r.name, path: path, img: r.img})
	}

	printingVec, cuttingVec := builder.Vectors()
	vectors := []struct {
		name string
		doc  *lb.VectorDocument
	}{
		{"printing", printingVec},
		{"cutting", cuttingVec},
	}
	for _, v := range vectors {
		if v.doc == nil {
			continue
		}
		path := filepath.Join(dir, v.name+".svg")
		if err := utils.SaveSVG(v.doc, path); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, writtenLayer{name: v.name, path: path})
	}
	return written, nil
}
