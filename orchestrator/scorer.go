package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/clients"
	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

// hfPredictor calls a hosted text-classification model.
type hfPredictor struct {
	http  *clients.HTTP
	url   string
	token string
}

func (h hfPredictor) Predict(ctx context.Context, text string) ([]sentiment.ClassScore, error) {
	scores, err := h.http.Classify(ctx, h.url, h.token, text)
	if err != nil {
		return nil, err
	}
	out := make([]sentiment.ClassScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, sentiment.ClassScore{Label: s.Label, Score: s.Score})
	}
	return out, nil
}

func thresholds(c *cfg.Root) sentiment.Thresholds {
	return sentiment.Thresholds{Pos: c.Sentiment.PosThreshold, Neg: c.Sentiment.NegThreshold}
}

// BuildScorer constructs the configured sentiment backend.
func BuildScorer(c *cfg.Root, h *clients.HTTP) (sentiment.Scorer, error) {
	switch c.Sentiment.Backend {
	case cfg.BackendLexicon:
		return sentiment.NewLexicon(thresholds(c)), nil
	case cfg.BackendClassifier:
		url := strings.TrimRight(c.Services.Classifier.URL, "/") + "/" + c.Services.Classifier.Model
		p := hfPredictor{http: h, url: url, token: c.Secrets.HFToken}
		return sentiment.NewClassifier(p, thresholds(c), sentiment.CompoundMode(c.Sentiment.CompoundMode)), nil
	}
	return nil, fmt.Errorf("unknown sentiment backend %q", c.Sentiment.Backend)
}
