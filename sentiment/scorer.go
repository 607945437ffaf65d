package sentiment

import (
	"context"
	"fmt"
	"iter"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

// Result is the backend-independent outcome of scoring one text.
type Result struct {
	Compound float64 // in [-1, 1]
	Label    Label
	// Class and Confidence carry the raw prediction when the backend
	// is a classifier. Downstream stages only read Compound and Label.
	Class      string
	Confidence float64
}

// Scorer assigns a compound score and label to a sentence.
type Scorer interface {
	Score(ctx context.Context, text string) (Result, error)
	Name() string
}

// Scored is a sentence with its sentiment.
type Scored struct {
	transcript.Sentence
	Result
}

// ScoreError reports the sentence a backend failed on.
type ScoreError struct {
	Backend  string
	Sentence string
	Err      error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("%s: scoring %q: %v", e.Backend, e.Sentence, e.Err)
}

func (e *ScoreError) Unwrap() error { return e.Err }

// ScoreAll scores every sentence in order. The first backend failure
// aborts the run.
func ScoreAll(ctx context.Context, sc Scorer, sents iter.Seq[transcript.Sentence]) ([]Scored, error) {
	var out []Scored
	for s := range sents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := sc.Score(ctx, s.Text)
		if err != nil {
			return nil, &ScoreError{Backend: sc.Name(), Sentence: s.Text, Err: err}
		}
		out = append(out, Scored{Sentence: s, Result: res})
	}
	return out, nil
}

// Compounds returns the compound score of each row.
func Compounds(rows []Scored) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Compound
	}
	return out
}
