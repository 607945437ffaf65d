package transcript

import (
	"fmt"
	"iter"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Splitter segments free text into sentences.
type Splitter interface {
	Split(text string) []string
}

// PunktSplitter segments English text with the pretrained Punkt model.
type PunktSplitter struct {
	tok *sentences.DefaultSentenceTokenizer
}

func NewPunktSplitter() (*PunktSplitter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("punkt tokenizer: %w", err)
	}
	return &PunktSplitter{tok: tok}, nil
}

func (p *PunktSplitter) Split(text string) []string {
	sents := p.tok.Tokenize(text)
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out
}

// Explode yields one Sentence per non-empty sentence of every tagged line,
// in line order then sentence order. The sequence can be ranged over again
// and yields the same sentences.
func Explode(sp Splitter, lines []Tagged) iter.Seq[Sentence] {
	return func(yield func(Sentence) bool) {
		for _, l := range lines {
			for _, s := range sp.Split(l.Text) {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
				if !yield(Sentence{
					Interviewee: l.Interviewee,
					Role:        l.Role,
					Speaker:     l.Speaker,
					LineNumber:  l.LineNumber,
					Text:        s,
				}) {
					return
				}
			}
		}
	}
}
