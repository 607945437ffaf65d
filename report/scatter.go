package report

import (
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

type ScatterOptions struct {
	Title, XLabel, YLabel string

	Thresholds     sentiment.Thresholds
	TopN           int     // groups to annotate
	MinYGap        float64 // minimum vertical distance between labels
	LabelOverrides map[string]string
	MaxLabelLen    int
}

// Label is an annotation anchored at (X, Y) and drawn at (X, TextY).
type Label struct {
	Group string
	Text  string
	X, Y  float64
	TextY float64
}

// FormatLabel applies overrides and truncates to max runes with an ellipsis.
func FormatLabel(group string, overrides map[string]string, max int) string {
	label := group
	if o, ok := overrides[group]; ok {
		label = o
	}
	r := []rune(label)
	if max > 0 && len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return label
}

// PlaceLabels picks the TopN groups by impact (count × |avg|) and assigns
// each a text height. Labels are placed from the lowest average upwards and
// pushed up by MinYGap until they clear every label already placed.
func PlaceLabels(groups []analysis.WordGroup, opts ScatterOptions) []Label {
	ranked := append([]analysis.WordGroup(nil), groups...)
	impact := func(g analysis.WordGroup) float64 { return float64(g.Count) * math.Abs(g.AvgCompound) }
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := impact(ranked[i]), impact(ranked[j])
		if a != b {
			return a > b
		}
		return ranked[i].Group < ranked[j].Group
	})
	if opts.TopN >= 0 && len(ranked) > opts.TopN {
		ranked = ranked[:opts.TopN]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvgCompound != ranked[j].AvgCompound {
			return ranked[i].AvgCompound < ranked[j].AvgCompound
		}
		return ranked[i].Group < ranked[j].Group
	})

	out := make([]Label, 0, len(ranked))
	var used []float64
	for _, g := range ranked {
		y := g.AvgCompound
		if opts.MinYGap > 0 {
			for collides(y, used, opts.MinYGap) {
				y += opts.MinYGap
			}
		}
		used = append(used, y)
		out = append(out, Label{
			Group: g.Group,
			Text:  FormatLabel(g.Group, opts.LabelOverrides, opts.MaxLabelLen),
			X:     float64(g.Count),
			Y:     g.AvgCompound,
			TextY: y,
		})
	}
	return out
}

func collides(y float64, used []float64, gap float64) bool {
	for _, u := range used {
		if math.Abs(y-u) < gap {
			return true
		}
	}
	return false
}

// WordScatter plots group frequency against average sentiment, coloured by
// the sentiment class of each group's average.
func WordScatter(groups []analysis.WordGroup, opts ScatterOptions) ([]byte, error) {
	if len(groups) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	byClass := map[sentiment.Label]plotter.XYs{}
	xMin, xMax := math.Inf(1), math.Inf(-1)
	for _, g := range groups {
		x := float64(g.Count)
		cls := opts.Thresholds.Label(g.AvgCompound)
		byClass[cls] = append(byClass[cls], plotter.XY{X: x, Y: g.AvgCompound})
		xMin = math.Min(xMin, x)
		xMax = math.Max(xMax, x)
	}
	p.X.Min = math.Max(0, xMin-1)
	p.X.Max = xMax + 1
	p.Y.Min = -1.05
	p.Y.Max = 1.05

	zero, err := hline(0, p.X.Min, p.X.Max)
	if err != nil {
		return nil, err
	}
	p.Add(zero)

	for _, cls := range []struct {
		label sentiment.Label
		name  string
		c     color.Color
	}{
		{sentiment.Positive, "Positive", colorPositive},
		{sentiment.Neutral, "Neutral", colorNeutral},
		{sentiment.Negative, "Negative", colorNegative},
	} {
		pts := byClass[cls.label]
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Color = cls.c
		s.GlyphStyle.Radius = vg.Points(3.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(cls.name, s)
	}

	labels := PlaceLabels(groups, opts)
	if len(labels) > 0 {
		xyl := plotter.XYLabels{}
		for _, l := range labels {
			if l.TextY != l.Y {
				leader, err := plotter.NewLine(plotter.XYs{{X: l.X, Y: l.Y}, {X: l.X, Y: l.TextY}})
				if err != nil {
					return nil, err
				}
				leader.Color = color.Gray{Y: 0x80}
				leader.Width = vg.Points(0.5)
				p.Add(leader)
			}
			xyl.XYs = append(xyl.XYs, plotter.XY{X: l.X, Y: l.TextY})
			xyl.Labels = append(xyl.Labels, l.Text)
		}
		ann, err := plotter.NewLabels(xyl)
		if err != nil {
			return nil, err
		}
		ann.Offset = vg.Point{X: vg.Points(4)}
		p.Add(ann)
	}

	return render(p, 10*vg.Inch, 6*vg.Inch)
}
