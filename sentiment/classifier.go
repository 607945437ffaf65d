package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ClassScore is one class probability returned by a classifier.
type ClassScore struct {
	Label string
	Score float64
}

// Predictor is an external three-class sentiment classifier.
type Predictor interface {
	Predict(ctx context.Context, text string) ([]ClassScore, error)
}

// CompoundMode selects how class probabilities become a compound score.
type CompoundMode string

const (
	// Winner uses only the top class: c-(1-c) for positive, (1-c)-c for
	// negative, 0 for neutral.
	Winner CompoundMode = "winner"
	// Distribution uses P(positive)-P(negative) over all returned classes.
	Distribution CompoundMode = "distribution"
)

var ErrNoPrediction = errors.New("classifier returned no classes")

// Classifier adapts a Predictor to the Scorer interface.
type Classifier struct {
	p    Predictor
	th   Thresholds
	mode CompoundMode
}

func NewClassifier(p Predictor, th Thresholds, mode CompoundMode) *Classifier {
	if mode == "" {
		mode = Winner
	}
	return &Classifier{p: p, th: th, mode: mode}
}

func (c *Classifier) Name() string { return "classifier" }

func (c *Classifier) Score(ctx context.Context, text string) (Result, error) {
	scores, err := c.p.Predict(ctx, text)
	if err != nil {
		return Result{}, err
	}
	if len(scores) == 0 {
		return Result{}, ErrNoPrediction
	}

	probs := map[Label]float64{}
	best, bestScore := Label(""), -1.0
	for _, s := range scores {
		lbl, err := normalizeClass(s.Label)
		if err != nil {
			return Result{}, err
		}
		probs[lbl] += s.Score
		if s.Score > bestScore {
			best, bestScore = lbl, s.Score
		}
	}

	var compound float64
	switch c.mode {
	case Distribution:
		compound = probs[Positive] - probs[Negative]
	default:
		compound = winnerCompound(best, bestScore)
	}
	return Result{
		Compound:   compound,
		Label:      c.th.Label(compound),
		Class:      string(best),
		Confidence: bestScore,
	}, nil
}

func winnerCompound(class Label, conf float64) float64 {
	switch class {
	case Positive:
		return conf - (1 - conf)
	case Negative:
		return (1 - conf) - conf
	default:
		return 0
	}
}

// normalizeClass accepts "positive"/"neutral"/"negative" in any case and the
// LABEL_0..2 ids used by older cardiffnlp checkpoints.
func normalizeClass(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "pos", "label_2":
		return Positive, nil
	case "neutral", "neu", "label_1":
		return Neutral, nil
	case "negative", "neg", "label_0":
		return Negative, nil
	}
	return "", fmt.Errorf("unknown sentiment class %q", s)
}
