package stickerlayers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

// Segmentation models known to produce usable masks.
const (
	ModelRMBG   = "briaai/RMBG-1.4"
	ModelMODNet = "Xenova/modnet"
)

// MaskProvider produces an opacity mask for img, aligned 1:1 with its pixels.
// Model loading and caching live behind this interface.
type MaskProvider interface {
	Mask(ctx context.Context, img image.Image, model string) (*image.Gray, error)
}

// LayerOptions configures one output layer.
type LayerOptions struct {
	// Margin added around the subject. The halo itself reaches half of it.
	BorderMargin Length
	Color        FillColor
}

type Options struct {
	// DPI used for every physical conversion in a run. Mixing DPIs between
	// layers shifts them against each other when printed side by side.
	DPI float64
	// Pixels with alpha >= AlphaThreshold count as subject when trimming.
	// 1 keeps everything the mask did not fully remove.
	AlphaThreshold uint8
	// Printed height of the subject before borders are added.
	TargetHeight Length
	// Printing layer: ink fill with a narrow bleed.
	Printing LayerOptions
	// Cutting layer: wider safety border, bottom tab, holes closed.
	Cutting LayerOptions
	// Height of the stand tab painted at the bottom of the cutting layer.
	TabHeight Length
	// Re-trim both layers to their opaque bounds after the halo.
	TrimHalo bool
	// Trace both layers to vector outlines.
	Vectorize bool
}

func DefaultOptions() Options {
	return Options{
		DPI:            300,
		AlphaThreshold: 1,
		TargetHeight:   Inches(3),
		Printing: LayerOptions{
			BorderMargin: Millimeters(7),
			Color:        Black,
		},
		Cutting: LayerOptions{
			BorderMargin: Millimeters(14),
			Color:        Red,
		},
		TabHeight: Inches(1),
	}
}

// tabPresets maps printed heights offered to users to their tab height.
var tabPresets = map[float64]float64{
	3: 1.0,
	7: 2.5,
}

// OptionsForHeight returns the defaults for a subject printed heightIn inches
// tall. Preset heights get their matching tab; other heights scale the 3in tab.
func OptionsForHeight(heightIn float64) Options {
	opt := DefaultOptions()
	opt.TargetHeight = Inches(heightIn)
	if tab, ok := tabPresets[heightIn]; ok {
		opt.TabHeight = Inches(tab)
	} else if heightIn > 0 {
		opt.TabHeight = Inches(heightIn / 3)
	}
	return opt
}

func (o Options) validate() error {
	if o.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive, got %v", ErrInvalidDimensions, o.DPI)
	}
	if o.TargetHeight.Value <= 0 {
		return fmt.Errorf("%w: target height must be positive", ErrInvalidDimensions)
	}
	return nil
}

// LayerBuilder runs the sticker pipeline for one source image. It holds every
// intermediate so callers can show or export any of them.
type LayerBuilder struct {
	InputImage image.Image
	Mask       *image.Gray
	Tracer     Tracer

	Subject        *image.NRGBA
	Printing       *image.NRGBA
	Cutting        *image.NRGBA
	PrintingVector *VectorDocument
	CuttingVector  *VectorDocument
}

// NewLayerBuilder prepares a run for input. mask may be nil when input already
// carries the subject's alpha (a background-removed PNG).
func NewLayerBuilder(input image.Image, mask *image.Gray) *LayerBuilder {
	return &LayerBuilder{
		InputImage: input,
		Mask:       mask,
		Tracer:     ContourTracer{},
	}
}

// Segment asks p for the mask of the input image.
func (lb *LayerBuilder) Segment(ctx context.Context, p MaskProvider, model string) error {
	start := time.Now()
	mask, err := p.Mask(ctx, lb.InputImage, model)
	if err != nil {
		return stageErr("segment", err)
	}
	if mask == nil {
		return stageErr("segment", ErrNoMask)
	}
	lb.Mask = mask
	Logger().Debug("mask received", "model", model, "elapsed", time.Since(start))
	return nil
}

func (lb *LayerBuilder) SubjectLayer() *image.NRGBA  { return lb.Subject }
func (lb *LayerBuilder) PrintingLayer() *image.NRGBA { return lb.Printing }
func (lb *LayerBuilder) CuttingLayer() *image.NRGBA  { return lb.Cutting }

// Vectors returns the traced layers; both are nil unless Options.Vectorize was set.
func (lb *LayerBuilder) Vectors() (printing, cutting *VectorDocument) {
	return lb.PrintingVector, lb.CuttingVector
}

// Build runs every stage. On error no layer from this call is kept. ctx is
// checked between stages.
func (lb *LayerBuilder) Build(ctx context.Context, opt Options) error {
	lb.Subject, lb.Printing, lb.Cutting = nil, nil, nil
	lb.PrintingVector, lb.CuttingVector = nil, nil

	if err := opt.validate(); err != nil {
		return stageErr("options", err)
	}
	if lb.InputImage == nil {
		return stageErr("input", ErrInvalidDimensions)
	}

	subject, err := lb.makeSubject(ctx, opt)
	if err != nil {
		return err
	}
	printing, err := lb.makePrintingLayer(ctx, subject, opt)
	if err != nil {
		return err
	}
	cutting, err := lb.makeCuttingLayer(ctx, subject, opt)
	if err != nil {
		return err
	}

	var printingVec, cuttingVec *VectorDocument
	if opt.Vectorize {
		tracer := lb.Tracer
		if tracer == nil {
			tracer = ContourTracer{}
		}
		if printingVec, err = traceLayer(ctx, tracer, "printing", printing); err != nil {
			return err
		}
		if cuttingVec, err = traceLayer(ctx, tracer, "cutting", cutting); err != nil {
			return err
		}
	}

	lb.Subject, lb.Printing, lb.Cutting = subject, printing, cutting
	lb.PrintingVector, lb.CuttingVector = printingVec, cuttingVec

	Logger().Info("layers built",
		"subject", fmt.Sprintf("%dx%d", subject.Rect.Dx(), subject.Rect.Dy()),
		"printing", fmt.Sprintf("%dx%d", printing.Rect.Dx(), printing.Rect.Dy()),
		"cutting", fmt.Sprintf("%dx%d", cutting.Rect.Dx(), cutting.Rect.Dy()),
		"dpi", opt.DPI,
		"vectorized", opt.Vectorize,
	)
	return nil
}

// ============ SUBJECT ============

// makeSubject: mask -> trim -> resize.
func (lb *LayerBuilder) makeSubject(ctx context.Context, opt Options) (*image.NRGBA, error) {
	if err := checkpoint(ctx, "composite"); err != nil {
		return nil, err
	}
	var subject *image.NRGBA
	if lb.Mask != nil {
		masked, err := ApplyMask(lb.InputImage, lb.Mask)
		if err != nil {
			return nil, err
		}
		subject = masked
	} else {
		subject = toNRGBA(lb.InputImage)
	}

	if err := checkpoint(ctx, "trim"); err != nil {
		return nil, err
	}
	trimmed, err := Trim(subject, opt.AlphaThreshold)
	if err != nil {
		return nil, err
	}

	if err := checkpoint(ctx, "resize"); err != nil {
		return nil, err
	}
	return ResizeToHeight(trimmed, opt.TargetHeight, opt.DPI)
}

// ============ PRINTING LAYER ============

// makePrintingLayer: halo -> flat ink fill.
func (lb *LayerBuilder) makePrintingLayer(ctx context.Context, subject *image.NRGBA, opt Options) (*image.NRGBA, error) {
	if err := checkpoint(ctx, "border"); err != nil {
		return nil, err
	}
	haloed, err := AddBorder(subject, opt.Printing.BorderMargin, opt.DPI, opt.Printing.Color)
	if err != nil {
		return nil, err
	}
	if haloed, err = lb.retrim(haloed, opt); err != nil {
		return nil, err
	}
	return FillSilhouette(haloed, opt.Printing.Color), nil
}

// ============ CUTTING LAYER ============

// makeCuttingLayer: wide halo -> flat fill -> bottom tab -> column fill.
func (lb *LayerBuilder) makeCuttingLayer(ctx context.Context, subject *image.NRGBA, opt Options) (*image.NRGBA, error) {
	c := opt.Cutting.Color
	if err := checkpoint(ctx, "border"); err != nil {
		return nil, err
	}
	haloed, err := AddBorder(subject, opt.Cutting.BorderMargin, opt.DPI, c)
	if err != nil {
		return nil, err
	}
	if haloed, err = lb.retrim(haloed, opt); err != nil {
		return nil, err
	}
	filled := FillSilhouette(haloed, c)

	if err := checkpoint(ctx, "tab"); err != nil {
		return nil, err
	}
	tabbed, err := AddBottomTab(filled, opt.TabHeight, opt.DPI, c)
	if err != nil {
		return nil, err
	}
	return FillColumns(tabbed, c), nil
}

func (lb *LayerBuilder) retrim(img *image.NRGBA, opt Options) (*image.NRGBA, error) {
	if !opt.TrimHalo {
		return img, nil
	}
	return Trim(img, opt.AlphaThreshold)
}

// ============ VECTORS ============

// traceLayer runs t on one layer. Failures of tracers that do not report a
// stage are wrapped in ErrTracing.
func traceLayer(ctx context.Context, t Tracer, layer string, img *image.NRGBA) (*VectorDocument, error) {
	doc, err := t.Trace(ctx, img)
	if err == nil {
		return doc, nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return nil, err
	}
	return nil, stageErr("trace", fmt.Errorf("%w: %s layer: %w", ErrTracing, layer, err))
}

func checkpoint(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return stageErr(stage, err)
	}
	return nil
}
