package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/analysis"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

var (
	LineHeader     = []string{"interviewee", "line_number", "speaker", "timestamp", "text"}
	TaggedHeader   = append(append([]string(nil), LineHeader...), "role")
	SentenceHeader = []string{"interviewee", "role", "speaker", "line_number", "sentence"}
	ScoredHeader   = append(append([]string(nil), SentenceHeader...), "hf_label", "hf_score", "hf_compound")
	WordStatHeader = []string{"word", "count", "avg_hf_compound"}
	GroupHeader    = []string{"group", "count", "avg_hf_compound", "original_words"}
)

func LineRows(lines []transcript.Line) [][]string {
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, []string{l.Interviewee, strconv.Itoa(l.LineNumber), l.Speaker, l.Timestamp, l.Text})
	}
	return out
}

func TaggedRows(lines []transcript.Tagged) [][]string {
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, []string{l.Interviewee, strconv.Itoa(l.LineNumber), l.Speaker, l.Timestamp, l.Text, string(l.Role)})
	}
	return out
}

func SentenceRows(sents []transcript.Sentence) [][]string {
	out := make([][]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, sentenceFields(s))
	}
	return out
}

func sentenceFields(s transcript.Sentence) []string {
	return []string{s.Interviewee, string(s.Role), s.Speaker, strconv.Itoa(s.LineNumber), s.Text}
}

func ScoredRows(rows []sentiment.Scored) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		class := r.Class
		if class == "" {
			class = string(r.Label)
		}
		out = append(out, append(sentenceFields(r.Sentence), class, fmtFloat(r.Confidence), fmtFloat(r.Compound)))
	}
	return out
}

func WordStatRows(stats []analysis.WordStat) [][]string {
	out := make([][]string, 0, len(stats))
	for _, s := range stats {
		out = append(out, []string{s.Word, strconv.Itoa(s.Count), fmtFloat(s.AvgCompound)})
	}
	return out
}

func GroupRows(groups []analysis.WordGroup) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, []string{g.Group, strconv.Itoa(g.Count), fmtFloat(g.AvgCompound), strings.Join(g.Words, ", ")})
	}
	return out
}

// WordStats decodes a word_stats table.
func WordStats(t *Table) ([]analysis.WordStat, error) {
	for _, c := range WordStatHeader {
		if !t.Has(c) {
			return nil, &MissingColumnError{Column: c, Header: t.Header}
		}
	}
	out := make([]analysis.WordStat, 0, len(t.Rows))
	for i, row := range t.Rows {
		n, err := t.Int(row, "count")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		avg, err := t.Float(row, "avg_hf_compound")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, analysis.WordStat{Word: t.Get(row, "word"), Count: n, AvgCompound: avg})
	}
	return out, nil
}

// Scored decodes a sentence sentiment table. Labels are recomputed from
// hf_compound with th; hf_score is optional.
func Scored(t *Table, th sentiment.Thresholds) ([]sentiment.Scored, error) {
	for _, c := range []string{"sentence", "hf_compound"} {
		if !t.Has(c) {
			return nil, &MissingColumnError{Column: c, Header: t.Header}
		}
	}
	out := make([]sentiment.Scored, 0, len(t.Rows))
	for i, row := range t.Rows {
		c, err := t.Float(row, "hf_compound")
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		s := sentiment.Scored{
			Sentence: transcript.Sentence{
				Interviewee: t.Get(row, "interviewee"),
				Role:        transcript.Role(t.Get(row, "role")),
				Speaker:     t.Get(row, "speaker"),
				Text:        t.Get(row, "sentence"),
			},
			Result: sentiment.Result{Compound: c, Label: th.Label(c), Class: t.Get(row, "hf_label")},
		}
		if t.Has("line_number") {
			if s.LineNumber, err = t.Int(row, "line_number"); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		if t.Has("hf_score") {
			if s.Confidence, err = t.Float(row, "hf_score"); err != nil {
				return nil, fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		out = append(out, s)
	}
	return out, nil
}
