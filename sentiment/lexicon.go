package sentiment

import (
	"context"
	"math"

	"github.com/jonreiter/govader"
)

// Lexicon scores text with the VADER rule-based analyzer.
type Lexicon struct {
	sia *govader.SentimentIntensityAnalyzer
	th  Thresholds
}

func NewLexicon(th Thresholds) *Lexicon {
	return &Lexicon{sia: govader.NewSentimentIntensityAnalyzer(), th: th}
}

func (l *Lexicon) Name() string { return "lexicon" }

func (l *Lexicon) Score(_ context.Context, text string) (Result, error) {
	c := l.Compound(text)
	lbl := l.th.Label(c)
	return Result{Compound: c, Label: lbl, Class: string(lbl), Confidence: math.Abs(c)}, nil
}

// Compound returns the raw VADER compound score; empty text scores 0.
func (l *Lexicon) Compound(text string) float64 {
	if text == "" {
		return 0
	}
	return l.sia.PolarityScores(text).Compound
}
