package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/clients"
	cfg "github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/config"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/report"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/tabular"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

// Pipeline runs the transcript stages. Its collaborators are built once
// and only read afterwards, so one Pipeline may serve many runs.
type Pipeline struct {
	cfg      *cfg.Root
	scorer   sentiment.Scorer
	splitter transcript.Splitter

	stop    analysis.StopSet
	others  *analysis.MentionMatcher
	subject *analysis.MentionMatcher
	groups  analysis.Groups
}

// NewPipeline builds the configured scorer and the Punkt splitter.
func NewPipeline(c *cfg.Root) (*Pipeline, error) {
	sc, err := BuildScorer(c, clients.NewHTTP())
	if err != nil {
		return nil, err
	}
	sp, err := transcript.NewPunktSplitter()
	if err != nil {
		return nil, err
	}
	return NewPipelineWith(c, sc, sp), nil
}

// NewPipelineWith uses the given scorer and splitter.
func NewPipelineWith(c *cfg.Root, sc sentiment.Scorer, sp transcript.Splitter) *Pipeline {
	a := c.Analysis
	return &Pipeline{
		cfg:      c,
		scorer:   sc,
		splitter: sp,
		stop:     analysis.NewStopSet(analysis.EnglishStopwords(), a.CustomStopwords),
		others:   analysis.NewMentionMatcher(a.OtherServices),
		subject:  analysis.NewMentionMatcher([]string{a.Subject}),
		groups:   analysis.NewGroups(a.Groups.Defs),
	}
}

// Run reads every transcript in inputDir, analyzes them and writes plots,
// optional intermediate CSVs and a result.json session bundle under
// outputDir.
func (p *Pipeline) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	logrus.WithField("stage", "00").Infof("parsing transcripts in %s", inputDir)
	sources, err := transcript.LoadDir(inputDir)
	if err != nil {
		return nil, err
	}
	for _, s := range sources {
		logrus.WithFields(logrus.Fields{"stage": "00", "file": s.Filename, "lines": len(s.Raw)}).Debug("parsed")
	}

	res, err := p.RunSources(ctx, sources)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, err
	}
	if p.cfg.Pipeline.SaveIntermediate {
		if err := p.saveIntermediate(filepath.Join(outputDir, "intermediate"), res); err != nil {
			return nil, err
		}
	}

	plots, err := p.Plots(res, PlotLabels{})
	if err != nil {
		return nil, err
	}
	if err := p.SavePlots(outputDir, plots); err != nil {
		return nil, err
	}

	sid, path, err := persist(outputDir, inputDir, res)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	res.SessionID = sid
	logrus.WithFields(logrus.Fields{"session": sid, "path": path}).Info("pipeline complete")
	return res, nil
}

// RunSources runs stages 00-05 on transcripts already in memory.
func (p *Pipeline) RunSources(ctx context.Context, sources []transcript.Source) (*Result, error) {
	if len(sources) == 0 {
		return nil, transcript.ErrNoTranscripts
	}
	res := &Result{Backend: p.scorer.Name()}

	lines := transcript.Parse(sources)
	logrus.WithFields(logrus.Fields{"stage": "00", "rows": len(lines)}).Info("rows parsed")

	res.Lines = transcript.TagRoles(lines)
	logrus.WithFields(logrus.Fields{"stage": "01", "rows": len(res.Lines)}).Info("roles tagged")

	res.Sentences = slices.Collect(transcript.Explode(p.splitter, res.Lines))
	logrus.WithFields(logrus.Fields{"stage": "02", "rows": len(res.Sentences)}).Info("sentences split")

	logrus.WithFields(logrus.Fields{"stage": "03", "backend": res.Backend}).Info("scoring sentences")
	scored, err := sentiment.ScoreAll(ctx, p.scorer, slices.Values(res.Sentences))
	if err != nil {
		return nil, err
	}
	res.Scored = scored

	res.SubjectOnly, res.Other = analysis.SplitByMention(res.Scored, p.others)
	logrus.WithFields(logrus.Fields{
		"stage":   "04",
		"subject": len(res.SubjectOnly),
		"other":   len(res.Other),
	}).Info("separated other-service mentions")

	res.WordStats = p.wordStats(res.SubjectOnly)
	if len(res.WordStats) == 0 {
		logrus.WithField("stage", "05").Warnf("no %s sentences mentioning %q", p.cfg.Analysis.WordStats.Role, p.cfg.Analysis.Subject)
	}
	res.Groups = p.Regroup(res.WordStats)
	logrus.WithFields(logrus.Fields{"stage": "05", "words": len(res.WordStats), "groups": len(res.Groups)}).Info("word stats built")

	res.Roles = analysis.SummarizeRoles(res.Scored)
	res.SubjectDist = analysis.Describe(sentiment.Compounds(res.SubjectOnly))
	res.OtherDist = analysis.Describe(sentiment.Compounds(res.Other))
	return res, nil
}

// Plots renders stages 06 and 07. Empty inputs leave the plot nil.
func (p *Pipeline) Plots(res *Result, labels PlotLabels) (Plots, error) {
	var out Plots
	var err error

	out.Scatter, err = p.ScatterPNG(res.Groups, labels)
	if err != nil {
		return Plots{}, err
	}

	subj := p.subjectTitle()
	series := []report.Series{
		{Name: subj + "-only sentences", Values: sentiment.Compounds(res.SubjectOnly)},
		{Name: "Sentences mentioning other services", Values: sentiment.Compounds(res.Other)},
	}
	out.Histogram, err = report.Histogram(series, "Sentiment Distribution: "+subj+"-only vs Other Services")
	if err != nil && !errors.Is(err, report.ErrNoData) {
		return Plots{}, err
	}
	series[0].Name, series[1].Name = subj+"-only", "Other services"
	out.BoxPlot, err = report.BoxPlot(series, "Sentiment Comparison: "+subj+"-only vs Other Services")
	if err != nil && !errors.Is(err, report.ErrNoData) {
		return Plots{}, err
	}
	return out, nil
}

// Replot redraws plots from previously saved word stats and, when given,
// scored sentences. Sentences are split on other-service mentions again.
func (p *Pipeline) Replot(stats []analysis.WordStat, scored []sentiment.Scored, labels PlotLabels) (Plots, error) {
	res := &Result{WordStats: stats, Groups: p.Regroup(stats), Scored: scored}
	res.SubjectOnly, res.Other = analysis.SplitByMention(scored, p.others)
	return p.Plots(res, labels)
}

// ScatterPNG renders the word group scatter plot, or nil when there are
// no groups.
func (p *Pipeline) ScatterPNG(groups []analysis.WordGroup, labels PlotLabels) ([]byte, error) {
	png, err := report.WordScatter(groups, p.scatterOptions(labels))
	if errors.Is(err, report.ErrNoData) {
		logrus.WithField("stage", "06").Warnf("skipping word-sentiment plot (no groups with count >= %d)", p.cfg.Analysis.Groups.MinCount)
		return nil, nil
	}
	return png, err
}

func (p *Pipeline) saveIntermediate(dir string, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	lines := make([]transcript.Line, len(res.Lines))
	for i, l := range res.Lines {
		lines[i] = l.Line
	}
	files := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"00_combined.csv", tabular.LineHeader, tabular.LineRows(lines)},
		{"01_with_roles.csv", tabular.TaggedHeader, tabular.TaggedRows(res.Lines)},
		{"02_sentences.csv", tabular.SentenceHeader, tabular.SentenceRows(res.Sentences)},
		{"03_sentiment.csv", tabular.ScoredHeader, tabular.ScoredRows(res.Scored)},
		{p.fileName("04_{subject}_only.csv"), tabular.ScoredHeader, tabular.ScoredRows(res.SubjectOnly)},
		{"04_other_services.csv", tabular.ScoredHeader, tabular.ScoredRows(res.Other)},
		{"05_word_stats.csv", tabular.WordStatHeader, tabular.WordStatRows(res.WordStats)},
		{"06_word_groups.csv", tabular.GroupHeader, tabular.GroupRows(res.Groups)},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := tabular.WriteFile(path, f.header, f.rows); err != nil {
			return err
		}
		logrus.WithField("path", path).Debug("saved intermediate")
	}
	return nil
}

// SavePlots writes the non-nil plots into dir under their configured names.
func (p *Pipeline) SavePlots(dir string, plots Plots) error {
	for _, f := range []struct {
		pattern string
		png     []byte
	}{
		{"{subject}_word_freq_sentiment.png", plots.Scatter},
		{"sentiment_hist_{subject}_vs_others.png", plots.Histogram},
		{"sentiment_box_{subject}_vs_others.png", plots.BoxPlot},
	} {
		if f.png == nil {
			continue
		}
		path := p.outPath(dir, f.pattern)
		if err := os.WriteFile(path, f.png, 0o644); err != nil {
			return err
		}
		logrus.WithField("path", path).Info("saved plot")
	}
	return nil
}
