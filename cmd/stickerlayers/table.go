package main

import (
	"fmt"
	"image"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	lb "github.com/setanarut/stickerlayers"
	"github.com/setanarut/stickerlayers/utils"
)

// newTable returns a rounded table writer. Headers keep their case.
func newTable(header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row(header))
	return tw
}

// alignRight right-aligns the given 1-based columns.
func alignRight(tw table.Writer, columns ...int) {
	configs := make([]table.ColumnConfig, 0, len(columns))
	for _, n := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:      n,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
}

// layerTable summarizes the layers written by a build, one row per layer.
type layerTable struct {
	dpi float64
	tw  table.Writer
}

func newLayerTable(dpi float64) *layerTable {
	tw := newTable("Layer", "Pixels", "Inches", "Coverage", "Balance", "File")
	alignRight(tw, 2, 3, 4, 5)
	return &layerTable{dpi: dpi, tw: tw}
}

func (t *layerTable) add(name string, img *image.NRGBA, file string) {
	s := lb.Measure(img, t.dpi)
	t.tw.AppendRow(table.Row{
		name,
		fmt.Sprintf("%dx%d", s.Width, s.Height),
		fmt.Sprintf("%.2f x %.2f", s.WidthIn, s.HeightIn),
		fmt.Sprintf("%.1f%%", s.Coverage*100),
		fmt.Sprintf("%+.3f", s.Balance),
		file,
	})
}

func (t *layerTable) render() string {
	return t.tw.Render()
}

// propertyTable renders label/value pairs.
func propertyTable(pairs [][2]string) string {
	tw := newTable("Property", "Value")
	for _, p := range pairs {
		tw.AppendRow(table.Row{p[0], p[1]})
	}
	return tw.Render()
}

func paletteTable(method utils.PaletteMethod, palette []utils.Swatch) string {
	tw := newTable("#", "Color ("+method.String()+")", "Share")
	alignRight(tw, 1, 3)
	for i, sw := range palette {
		tw.AppendRow(table.Row{
			i + 1,
			sw.Color.Hex(),
			fmt.Sprintf("%.1f%%", sw.Weight*100),
		})
	}
	return tw.Render()
}
