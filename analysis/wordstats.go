package analysis

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jdkato/prose/tokenize"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
)

// WordStat is the sentence frequency and mean sentiment of one word.
type WordStat struct {
	Word        string  `json:"word"`
	Count       int     `json:"count"`
	AvgCompound float64 `json:"avg_hf_compound"`
}

var treebank = tokenize.NewTreebankWordTokenizer()

// Tokenize returns the distinct lowercase alphabetic tokens of length >= 3
// in s that are not stopwords, sorted.
//
// Words are split with the Penn Treebank conventions, so clitics become
// their own tokens ("don't" -> "do" "n't", "cannot" -> "can" "not") and
// fail the filters; hyphenated compounds stay whole and are dropped as
// non-alphabetic.
func Tokenize(s string, stop StopSet) []string {
	s = strings.ReplaceAll(strings.ToLower(s), "’", "'")
	seen := map[string]struct{}{}
	for _, tok := range treebank.Tokenize(s) {
		// only a sentence-final period is split off
		tok = strings.TrimRight(tok, ".")
		if utf8.RuneCountInString(tok) < 3 || !isAlpha(tok) || stop.Has(tok) {
			continue
		}
		seen[tok] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for w := range seen {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// WordStats counts, for every token, the number of sentences containing it
// and the mean compound of those sentences. Words seen in fewer than
// minCount sentences are dropped. The result does not depend on row order
// and is sorted by count desc, average desc, then word.
func WordStats(rows []sentiment.Scored, stop StopSet, minCount int) []WordStat {
	scores := map[string][]float64{}
	for _, r := range rows {
		for _, w := range Tokenize(r.Text, stop) {
			scores[w] = append(scores[w], r.Compound)
		}
	}

	out := make([]WordStat, 0, len(scores))
	for w, s := range scores {
		if len(s) < minCount {
			continue
		}
		out = append(out, WordStat{Word: w, Count: len(s), AvgCompound: orderedSum(s) / float64(len(s))})
	}
	SortWordStats(out)
	return out
}

// orderedSum sums in ascending order so float rounding is independent of
// input order.
func orderedSum(vs []float64) float64 {
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum
}

func SortWordStats(ws []WordStat) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Count != ws[j].Count {
			return ws[i].Count > ws[j].Count
		}
		if ws[i].AvgCompound != ws[j].AvgCompound {
			return ws[i].AvgCompound > ws[j].AvgCompound
		}
		return ws[i].Word < ws[j].Word
	})
}
