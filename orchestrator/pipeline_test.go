package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/tabular"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

type dotSplitter struct{}

func (dotSplitter) Split(text string) []string {
	var out []string
	for _, s := range strings.SplitAfter(text, ". ") {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

type keywordScorer struct{ fail string }

func (k keywordScorer) Name() string { return "keywords" }

func (k keywordScorer) Score(_ context.Context, text string) (sentiment.Result, error) {
	if k.fail != "" && strings.Contains(text, k.fail) {
		return sentiment.Result{}, errors.New("backend down")
	}
	c := 0.0
	switch {
	case strings.Contains(text, "love"), strings.Contains(text, "great"):
		c = 0.6
	case strings.Contains(text, "slow"):
		c = -0.6
	}
	return sentiment.Result{Compound: c, Label: sentiment.DefaultThresholds.Label(c)}, nil
}

const annTranscript = `[Ann Lee] 00:00:01: I love Canva templates. Canva templates are great.
[Interviewer] 00:00:05: Do you use Figma?

[Ann Lee] 00:00:09: Figma is slow. Canva templates save time.
Ann Lee: Canva export is slow.
`

func writeInput(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Ann_Lee.txt"), []byte(annTranscript), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("%PDF"), 0o644))
	return dir
}

func TestRunSources(t *testing.T) {
	p := NewPipelineWith(cfg.Default(), keywordScorer{}, dotSplitter{})
	sources, err := transcript.LoadDir(writeInput(t))
	require.NoError(t, err)

	res, err := p.RunSources(context.Background(), sources)
	require.NoError(t, err)

	assert.Equal(t, "keywords", res.Backend)
	assert.Len(t, res.Lines, 4)
	assert.Equal(t, transcript.RoleInterviewer, res.Lines[1].Role)
	assert.Len(t, res.Sentences, 6)
	assert.Len(t, res.Scored, 6)
	assert.Len(t, res.Other, 2)
	assert.Len(t, res.SubjectOnly, 4)

	require.Len(t, res.WordStats, 1)
	assert.Equal(t, "templates", res.WordStats[0].Word)
	assert.Equal(t, 3, res.WordStats[0].Count)
	assert.InDelta(t, 0.4, res.WordStats[0].AvgCompound, 1e-12)

	require.Len(t, res.Groups, 1)
	assert.Equal(t, "template(s)", res.Groups[0].Group)

	require.Len(t, res.Roles, 2)
	assert.Equal(t, "Ann Lee", res.Roles[0].Speaker)
	assert.Equal(t, 5, res.Roles[0].Sentences)
	assert.Equal(t, "Ann Lee's interviewer", res.Roles[1].Speaker)

	assert.Equal(t, 4, res.SubjectDist.Count)
	assert.Equal(t, 2, res.OtherDist.Count)
}

func TestRunWritesOutputs(t *testing.T) {
	c := cfg.Default()
	c.Pipeline.SaveIntermediate = true
	p := NewPipelineWith(c, keywordScorer{}, dotSplitter{})
	out := t.TempDir()

	res, err := p.Run(context.Background(), writeInput(t), out)
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionID)

	for _, name := range []string{
		"00_combined.csv", "01_with_roles.csv", "02_sentences.csv", "03_sentiment.csv",
		"04_canva_only.csv", "04_other_services.csv", "05_word_stats.csv", "06_word_groups.csv",
	} {
		assert.FileExists(t, filepath.Join(out, "intermediate", name))
	}
	groups, err := tabular.ReadFile(filepath.Join(out, "intermediate", "06_word_groups.csv"), tabular.GroupHeader...)
	require.NoError(t, err)
	require.Len(t, groups.Rows, 1)
	assert.Equal(t, "template(s)", groups.Get(groups.Rows[0], "group"))
	assert.Equal(t, "templates", groups.Get(groups.Rows[0], "original_words"))
	avg, err := groups.Float(groups.Rows[0], "avg_hf_compound")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, avg, 1e-12)
	for _, name := range []string{
		"canva_word_freq_sentiment.png",
		"sentiment_hist_canva_vs_others.png",
		"sentiment_box_canva_vs_others.png",
	} {
		b, err := os.ReadFile(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.True(t, bytes.HasPrefix(b, []byte("\x89PNG")), name)
	}

	raw, err := os.ReadFile(filepath.Join(out, res.SessionID, "result.json"))
	require.NoError(t, err)
	var bundle PersistBundle
	require.NoError(t, json.Unmarshal(raw, &bundle))
	assert.Equal(t, res.SessionID, bundle.SessionID)
	assert.Equal(t, 6, bundle.Sentences)
	assert.Len(t, bundle.Groups, 1)
}

func TestRunFailsOnScorerError(t *testing.T) {
	p := NewPipelineWith(cfg.Default(), keywordScorer{fail: "Figma"}, dotSplitter{})
	_, err := p.Run(context.Background(), writeInput(t), t.TempDir())

	var se *sentiment.ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Do you use Figma?", se.Sentence)
	assert.Equal(t, "keywords", se.Backend)
}

func TestRunNoTranscripts(t *testing.T) {
	p := NewPipelineWith(cfg.Default(), keywordScorer{}, dotSplitter{})
	_, err := p.Run(context.Background(), t.TempDir(), t.TempDir())
	assert.ErrorIs(t, err, transcript.ErrNoTranscripts)

	_, err = p.RunSources(context.Background(), nil)
	assert.ErrorIs(t, err, transcript.ErrNoTranscripts)
}

func TestPlotsSkipEmpty(t *testing.T) {
	p := NewPipelineWith(cfg.Default(), keywordScorer{}, dotSplitter{})
	plots, err := p.Plots(&Result{}, PlotLabels{})
	require.NoError(t, err)
	assert.Nil(t, plots.Scatter)
	assert.Nil(t, plots.Histogram)
	assert.Nil(t, plots.BoxPlot)
}

func TestReplot(t *testing.T) {
	p := NewPipelineWith(cfg.Default(), keywordScorer{}, dotSplitter{})
	res, err := p.RunSources(context.Background(), mustLoad(t))
	require.NoError(t, err)

	plots, err := p.Replot(res.WordStats, res.Scored, PlotLabels{Title: "Edited"})
	require.NoError(t, err)
	assert.NotNil(t, plots.Scatter)
	assert.NotNil(t, plots.Histogram)
	assert.NotNil(t, plots.BoxPlot)

	out := t.TempDir()
	require.NoError(t, p.SavePlots(out, plots))
	assert.FileExists(t, filepath.Join(out, "canva_word_freq_sentiment.png"))

	plots, err = p.Replot(res.WordStats, nil, PlotLabels{})
	require.NoError(t, err)
	assert.NotNil(t, plots.Scatter)
	assert.Nil(t, plots.Histogram)
}

func mustLoad(t *testing.T) []transcript.Source {
	t.Helper()
	sources, err := transcript.LoadDir(writeInput(t))
	require.NoError(t, err)
	return sources
}
