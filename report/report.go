// Package report renders sentiment plots as PNG images.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("report: no data to plot")

var (
	colorPositive = color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0x99}
	colorNeutral  = color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0x99}
	colorNegative = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0x99}
	colorGuide    = color.NRGBA{A: 0xb3}
	palette       = []color.Color{
		color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0x99},
		color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0x99},
		color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0x99},
		color.NRGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0x99},
	}
)

// Series is one named sample of compound scores.
type Series struct {
	Name   string
	Values []float64
}

func dashed(l *plotter.Line) {
	l.Color = colorGuide
	l.Width = vg.Points(0.8)
	l.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
}

func hline(y, x0, x1 float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}})
	if err != nil {
		return nil, err
	}
	dashed(l)
	return l, nil
}

func vline(x, y0, y1 float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}})
	if err != nil {
		return nil, err
	}
	dashed(l)
	return l, nil
}

func render(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
