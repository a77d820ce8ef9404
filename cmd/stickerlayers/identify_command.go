package main

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	lb "github.com/setanarut/stickerlayers"
	"github.com/setanarut/stickerlayers/utils"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var dpi float64
	var colors int
	var method string

	cmd := &cobra.Command{
		Use:   "identify [file]",
		Short: "Inspect an image: size, subject bounds, print size and ink palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dpi <= 0 {
				dpi = cfg.DPI
			}
			return runIdentify(cmd, args[0], dpi, uint8(cfg.AlphaThreshold), colors, utils.ParsePaletteMethod(method))
		},
	}

	cmd.Flags().Float64Var(&dpi, "dpi", 0, "DPI used for physical sizes (defaults to config)")
	cmd.Flags().IntVar(&colors, "colors", 5, "Number of palette colors")
	cmd.Flags().StringVar(&method, "method", "dominantcolor", "Palette method (dominantcolor, kmeans)")
	return cmd
}

func runIdentify(cmd *cobra.Command, path string, dpi float64, threshold uint8, colors int, method utils.PaletteMethod) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	img, err := utils.ReadImage(path)
	if err != nil {
		return err
	}
	nrgba := imaging.Clone(img)
	stats := lb.Measure(nrgba, dpi)

	subject := fmt.Sprintf("none (no pixel with alpha >= %d)", threshold)
	if box, ok := lb.AlphaBounds(nrgba, threshold); ok {
		subject = fmt.Sprintf("%s, %d x %d (alpha >= %d)", box, box.Width(), box.Height(), threshold)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, propertyTable([][2]string{
		{"File", path},
		{"File size", fmt.Sprintf("%d bytes (%.1f MB)", info.Size(), float64(info.Size())/(1024*1024))},
		{"Dimensions", fmt.Sprintf("%d x %d", stats.Width, stats.Height)},
		{"Print size", fmt.Sprintf("%.2f x %.2f in at %g dpi", stats.WidthIn, stats.HeightIn, dpi)},
		{"Subject", subject},
		{"Coverage", fmt.Sprintf("%.1f%%", stats.Coverage*100)},
		{"Balance", fmt.Sprintf("%+.3f", stats.Balance)},
	}))

	palette := utils.SubjectPalette(img, colors, method)
	if len(palette) == 0 {
		fmt.Fprintln(out, "Palette: none")
		return nil
	}
	fmt.Fprintln(out, paletteTable(method, palette))
	return nil
}
