package orchestrator

import (
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

// Result holds the output of every analysis stage of one run.
type Result struct {
	SessionID string
	Backend   string

	Lines     []transcript.Tagged
	Sentences []transcript.Sentence
	Scored    []sentiment.Scored
	// SubjectOnly are sentences that mention no other service.
	SubjectOnly []sentiment.Scored
	Other       []sentiment.Scored

	WordStats []analysis.WordStat
	Groups    []analysis.WordGroup
	Roles     []analysis.RoleSummary

	SubjectDist analysis.Distribution
	OtherDist   analysis.Distribution
}

// Plots are PNG renderings of a Result. A nil field means there was
// nothing to draw.
type Plots struct {
	Scatter   []byte
	Histogram []byte
	BoxPlot   []byte
}

// PlotLabels override the configured scatter plot texts when non-empty.
type PlotLabels struct {
	Title  string `json:"title,omitempty"`
	XLabel string `json:"xlabel,omitempty"`
	YLabel string `json:"ylabel,omitempty"`
}
