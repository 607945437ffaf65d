package sentiment

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

type fakePredictor map[string][]ClassScore

func (f fakePredictor) Predict(_ context.Context, text string) ([]ClassScore, error) {
	s, ok := f[text]
	if !ok {
		return nil, errors.New("model unavailable")
	}
	return s, nil
}

func TestClassifier_Winner(t *testing.T) {
	p := fakePredictor{
		"good": {{"positive", 0.9}, {"neutral", 0.07}, {"negative", 0.03}},
		"bad":  {{"negative", 0.8}, {"neutral", 0.15}, {"positive", 0.05}},
		"meh":  {{"Neutral", 0.6}, {"positive", 0.3}, {"negative", 0.1}},
		"old":  {{"LABEL_2", 0.75}},
	}
	c := NewClassifier(p, DefaultThresholds, "")

	res, err := c.Score(context.Background(), "good")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, res.Compound, 1e-9)
	assert.Equal(t, Positive, res.Label)
	assert.Equal(t, "positive", res.Class)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)

	res, err = c.Score(context.Background(), "bad")
	require.NoError(t, err)
	assert.InDelta(t, -0.6, res.Compound, 1e-9)
	assert.Equal(t, Negative, res.Label)

	res, err = c.Score(context.Background(), "meh")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Compound)
	assert.Equal(t, Neutral, res.Label)

	res, err = c.Score(context.Background(), "old")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Compound, 1e-9)
}

func TestClassifier_Distribution(t *testing.T) {
	p := fakePredictor{"mixed": {{"positive", 0.5}, {"neutral", 0.2}, {"negative", 0.3}}}
	c := NewClassifier(p, DefaultThresholds, Distribution)

	res, err := c.Score(context.Background(), "mixed")
	require.NoError(t, err)
	assert.InDelta(t, 0.2, res.Compound, 1e-9)
	assert.Equal(t, Positive, res.Label)
}

func TestClassifier_Errors(t *testing.T) {
	c := NewClassifier(fakePredictor{"empty": nil, "weird": {{"joy", 1}}}, DefaultThresholds, Winner)

	_, err := c.Score(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrNoPrediction)

	_, err = c.Score(context.Background(), "weird")
	assert.ErrorContains(t, err, "unknown sentiment class")
}

func TestScoreAll_FailsLoudly(t *testing.T) {
	p := fakePredictor{"fine": {{"positive", 0.7}}}
	c := NewClassifier(p, DefaultThresholds, Winner)
	sents := slices.Values([]transcript.Sentence{
		{Text: "fine", LineNumber: 1},
		{Text: "boom", LineNumber: 2},
		{Text: "fine", LineNumber: 3},
	})

	rows, err := ScoreAll(context.Background(), c, sents)
	assert.Nil(t, rows)
	var se *ScoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "boom", se.Sentence)
	assert.Equal(t, "classifier", se.Backend)
	assert.ErrorContains(t, err, "model unavailable")
}

func TestScoreAll(t *testing.T) {
	p := fakePredictor{"a": {{"positive", 0.7}}, "b": {{"negative", 0.9}}}
	sents := slices.Values([]transcript.Sentence{{Text: "a", Role: transcript.RoleInterviewee}, {Text: "b"}})

	rows, err := ScoreAll(context.Background(), NewClassifier(p, DefaultThresholds, Winner), sents)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, transcript.RoleInterviewee, rows[0].Role)
	assert.InDeltaSlice(t, []float64{0.4, -0.8}, Compounds(rows), 1e-9)
}
