package orchestrator

import (
	"path/filepath"
	"strings"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/report"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

func (p *Pipeline) wordStats(rows []sentiment.Scored) []analysis.WordStat {
	subject := analysis.FilterSubject(rows, transcript.Role(p.cfg.Analysis.WordStats.Role), p.subject)
	return analysis.WordStats(subject, p.stop, p.cfg.Analysis.WordStats.MinCount)
}

// Regroup folds word stats into plot groups with the configured group
// table, exclusions and minimum group count.
func (p *Pipeline) Regroup(stats []analysis.WordStat) []analysis.WordGroup {
	g := p.cfg.Analysis.Groups
	return analysis.FoldGroups(stats, p.groups, g.Exclude, g.MinCount)
}

func (p *Pipeline) scatterOptions(l PlotLabels) report.ScatterOptions {
	pc := p.cfg.Plot
	return report.ScatterOptions{
		Title:          pick(l.Title, pc.Title),
		XLabel:         pick(l.XLabel, pc.XLabel),
		YLabel:         pick(l.YLabel, pc.YLabel),
		Thresholds:     thresholds(p.cfg),
		TopN:           pc.TopNLabels,
		MinYGap:        pc.MinYGap,
		LabelOverrides: pc.LabelOverrides,
		MaxLabelLen:    pc.MaxLabelLen,
	}
}

func pick(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

// subjectTitle is the display name of the subject keyword ("canva" -> "Canva").
func (p *Pipeline) subjectTitle() string {
	s := p.cfg.Analysis.Subject
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p *Pipeline) fileName(pattern string) string {
	return strings.ReplaceAll(pattern, "{subject}", strings.ToLower(strings.ReplaceAll(p.cfg.Analysis.Subject, " ", "_")))
}

func (p *Pipeline) outPath(dir, pattern string) string {
	return filepath.Join(dir, p.fileName(pattern))
}
