package report

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// HistogramBins is the bin count used over the compound range [-1, 1].
const HistogramBins = 20

// BinCounts counts values into n equal bins over [lo, hi]. The last bin
// is closed; values outside the range are ignored.
func BinCounts(vs []float64, n int, lo, hi float64) []float64 {
	counts := make([]float64, n)
	width := (hi - lo) / float64(n)
	for _, v := range vs {
		if v < lo || v > hi || math.IsNaN(v) {
			continue
		}
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}
	return counts
}

func nonEmpty(series []Series) bool {
	for _, s := range series {
		if len(s.Values) > 0 {
			return true
		}
	}
	return false
}

// Histogram overlays the compound distributions of several series.
func Histogram(series []Series, title string) ([]byte, error) {
	if !nonEmpty(series) {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sentiment score (compound)"
	p.Y.Label.Text = "Number of sentences"
	p.Add(plotter.NewGrid())

	width := 2.0 / HistogramBins
	top := 0.0
	for i, s := range series {
		counts := BinCounts(s.Values, HistogramBins, -1, 1)
		bins := make([]plotter.HistogramBin, HistogramBins)
		for b := range bins {
			lo := -1 + float64(b)*width
			bins[b] = plotter.HistogramBin{Min: lo, Max: lo + width, Weight: counts[b]}
			top = math.Max(top, counts[b])
		}
		h := &plotter.Histogram{
			Bins:      bins,
			Width:     width,
			FillColor: palette[i%len(palette)],
			LineStyle: plotter.DefaultLineStyle,
		}
		h.LineStyle.Width = vg.Points(0.3)
		p.Add(h)
		p.Legend.Add(s.Name, h)
	}

	zero, err := vline(0, 0, top)
	if err != nil {
		return nil, err
	}
	p.Add(zero)
	p.X.Min, p.X.Max = -1, 1
	p.Legend.Top = true

	return render(p, 8*vg.Inch, 5*vg.Inch)
}

// BoxPlot draws one box per series with its mean marked.
func BoxPlot(series []Series, title string) ([]byte, error) {
	if !nonEmpty(series) {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Sentiment score (compound)"
	p.Add(plotter.NewGrid())

	names := make([]string, len(series))
	var means plotter.XYs
	for i, s := range series {
		names[i] = s.Name
		if len(s.Values) == 0 {
			continue
		}
		b, err := plotter.NewBoxPlot(vg.Points(50), float64(i), plotter.Values(s.Values))
		if err != nil {
			return nil, err
		}
		b.FillColor = palette[i%len(palette)]
		p.Add(b)
		var sum float64
		for _, v := range s.Values {
			sum += v
		}
		means = append(means, plotter.XY{X: float64(i), Y: sum / float64(len(s.Values))})
	}
	p.NominalX(names...)

	zero, err := hline(0, -0.5, float64(len(series))-0.5)
	if err != nil {
		return nil, err
	}
	p.Add(zero)

	if len(means) > 0 {
		m, err := plotter.NewScatter(means)
		if err != nil {
			return nil, err
		}
		m.GlyphStyle.Shape = draw.TriangleGlyph{}
		m.GlyphStyle.Radius = vg.Points(3)
		m.GlyphStyle.Color = colorPositive
		p.Add(m)
		p.Legend.Add("mean", m)
	}

	return render(p, 6*vg.Inch, 5*vg.Inch)
}
