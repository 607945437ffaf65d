package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLR(t *testing.T) {
	assert.Zero(t, LLR(0, 5, 100, 1000))
	assert.Zero(t, LLR(5, 0, 100, 1000))

	// Same relative frequency in both corpora carries no signal.
	assert.InDelta(t, 0, LLR(10, 100, 1000, 10000), 1e-9)

	e1 := 100.0 * 11 / 1100
	e2 := 1000.0 * 11 / 1100
	want := 2 * (10*math.Log(10/e1) + 1*math.Log(1/e2))
	assert.InDelta(t, want, LLR(10, 1, 100, 1000), 1e-12)
}

func TestKeynessTokens(t *testing.T) {
	got := KeynessTokens("Check https://canva.com/x and the NEW templates, templates!", NewStopSet(EnglishStopwords()))
	assert.Equal(t, []string{"check", "new", "templates", "templates"}, got)
}

func TestLoadReference(t *testing.T) {
	ref, err := LoadReference(strings.NewReader("# brown\nthe\t100\nDesign\t4\n\ndesign\t1\n"))
	require.NoError(t, err)
	assert.Equal(t, 105, ref.Total)
	assert.Equal(t, 5, ref.Counts["design"])

	_, err = LoadReference(strings.NewReader("word\n"))
	assert.Error(t, err)
	_, err = LoadReference(strings.NewReader("word x\n"))
	assert.Error(t, err)
}

func TestKeyness(t *testing.T) {
	ref := &Reference{Counts: map[string]int{"design": 500, "templates": 2}, Total: 100000}
	texts := []string{
		"templates templates templates design",
		"templates design canvas",
	}
	got := Keyness(texts, NewStopSet(EnglishStopwords()), ref, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "templates", got[0].Word)
	assert.Equal(t, 4, got[0].Count)
	assert.Equal(t, math.Round(got[0].Keyness*100)/100, got[0].Keyness)
	assert.GreaterOrEqual(t, got[0].Keyness, got[1].Keyness)

	assert.Empty(t, Keyness([]string{"the and of"}, NewStopSet(EnglishStopwords()), nil, 30))
}

func TestLoadReferenceDeclaredTotal(t *testing.T) {
	ref, err := LoadReference(strings.NewReader("# total 5000\nthe\t100\n"))
	require.NoError(t, err)
	assert.Equal(t, 5000, ref.Total)

	_, err = LoadReference(strings.NewReader("# total many\n"))
	assert.Error(t, err)
}

func TestDefaultReference(t *testing.T) {
	ref := DefaultReference()
	assert.Equal(t, 1014312, ref.Total)
	assert.Equal(t, 69971, ref.Counts["the"])
	assert.Greater(t, ref.Counts["people"], 100)
	assert.Same(t, ref, DefaultReference())
}

func TestKeynessCommonWordRanksBelowDomainWord(t *testing.T) {
	texts := []string{"templates templates people people"}
	stop := NewStopSet(EnglishStopwords())

	got := Keyness(texts, stop, DefaultReference(), 30)
	require.Len(t, got, 2)
	assert.Equal(t, "templates", got[0].Word)
	assert.Equal(t, "people", got[1].Word)
	assert.Greater(t, got[0].Keyness, got[1].Keyness)
	assert.Equal(t, got[0].Count, got[1].Count)
}
