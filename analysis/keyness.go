package analysis

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Reference is a word frequency table for a general-English corpus.
type Reference struct {
	Counts map[string]int
	Total  int
}

// DefaultReferenceTotal approximates the alphabetic token count of the
// Brown corpus. It is used by a nil Reference, in which case every word has
// reference count 1.
const DefaultReferenceTotal = 1_000_000

//go:embed reference_en.tsv
var referenceEN string

var defaultReference = sync.OnceValue(func() *Reference {
	ref, err := LoadReference(strings.NewReader(referenceEN))
	if err != nil {
		panic(err)
	}
	return ref
})

// DefaultReference is the built-in general-English frequency table. It is
// shared and must not be modified.
func DefaultReference() *Reference { return defaultReference() }

func (r *Reference) count(w string) int {
	if r == nil {
		return 1
	}
	if c, ok := r.Counts[w]; ok && c > 0 {
		return c
	}
	return 1
}

func (r *Reference) total() int {
	if r == nil || r.Total == 0 {
		return DefaultReferenceTotal
	}
	return r.Total
}

// LoadReference reads "word<TAB>count" lines. Blank lines and lines
// starting with # are skipped; words are lowercased and merged. A
// "# total N" line declares the corpus size when the table lists only part
// of it.
func LoadReference(rd io.Reader) (*Reference, error) {
	ref := &Reference{Counts: map[string]int{}}
	declared := 0
	sc := bufio.NewScanner(rd)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if f := strings.Fields(strings.TrimPrefix(line, "#")); len(f) == 2 && f[0] == "total" {
				t, err := strconv.Atoi(f[1])
				if err != nil || t < 0 {
					return nil, fmt.Errorf("reference line %d: bad total %q", n, f[1])
				}
				declared = t
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("reference line %d: want word and count, got %q", n, line)
		}
		c, err := strconv.Atoi(fields[1])
		if err != nil || c < 0 {
			return nil, fmt.Errorf("reference line %d: bad count %q", n, fields[1])
		}
		w := strings.ToLower(fields[0])
		ref.Counts[w] += c
		ref.Total += c
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read reference: %w", err)
	}
	ref.Total = max(ref.Total, declared)
	return ref, nil
}

// LLR is Dunning's log-likelihood ratio of a word seen kCorpus times in a
// corpus of nCorpus tokens against kRef times in nRef tokens. It is zero
// when either count is zero.
func LLR(kCorpus, kRef, nCorpus, nRef int) float64 {
	if kCorpus == 0 || kRef == 0 {
		return 0
	}
	k1, k2 := float64(kCorpus), float64(kRef)
	n1, n2 := float64(nCorpus), float64(nRef)
	e1 := n1 * (k1 + k2) / (n1 + n2)
	e2 := n2 * (k1 + k2) / (n1 + n2)
	return 2 * (k1*math.Log(k1/e1) + k2*math.Log(k2/e2))
}

type Keyword struct {
	Word    string  `json:"word"`
	Keyness float64 `json:"keyness"`
	Count   int     `json:"count"`
}

var (
	urlPattern = regexp.MustCompile(`http\S+|www\S+`)
	nonAlpha   = regexp.MustCompile(`[^a-z\s]`)
)

// KeynessTokens lowercases text, removes URLs, replaces everything but
// ASCII letters with spaces and keeps non-stopword tokens longer than two
// letters. Repeats are kept.
func KeynessTokens(text string, stop StopSet) []string {
	text = urlPattern.ReplaceAllString(strings.ToLower(text), "")
	text = nonAlpha.ReplaceAllString(text, " ")
	var out []string
	for _, t := range strings.Fields(text) {
		if len(t) > 2 && !stop.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// Keyness ranks the words of texts by LLR against ref and returns the top n.
// Scores are rounded to two decimals; ties are broken by word.
func Keyness(texts []string, stop StopSet, ref *Reference, n int) []Keyword {
	counts := map[string]int{}
	total := 0
	for _, t := range texts {
		for _, w := range KeynessTokens(t, stop) {
			counts[w]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	out := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		k := LLR(c, ref.count(w), total, ref.total())
		out = append(out, Keyword{Word: w, Keyness: math.Round(k*100) / 100, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Keyness != out[j].Keyness {
			return out[i].Keyness > out[j].Keyness
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
