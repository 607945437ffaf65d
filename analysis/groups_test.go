package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGroups = NewGroups(map[string][]string{
	"flyer(s)":    {"flyer", "flyers"},
	"template(s)": {"template", "templates"},
})

func TestFoldGroupsWeightedMean(t *testing.T) {
	stats := []WordStat{
		{Word: "flyer", Count: 3, AvgCompound: 0.2},
		{Word: "flyers", Count: 1, AvgCompound: -0.4},
	}
	got := FoldGroups(stats, testGroups, nil, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "flyer(s)", got[0].Group)
	assert.Equal(t, 4, got[0].Count)
	assert.InDelta(t, 0.05, got[0].AvgCompound, 1e-12)
	assert.Equal(t, []string{"flyer", "flyers"}, got[0].Words)
}

func TestFoldGroupsSingletonsExcludeAndMin(t *testing.T) {
	stats := []WordStat{
		{Word: "template", Count: 2, AvgCompound: 0.5},
		{Word: "templates", Count: 2, AvgCompound: 0.3},
		{Word: "export", Count: 5, AvgCompound: -0.2},
		{Word: "easy", Count: 4, AvgCompound: 0.6},
		{Word: "rare", Count: 2, AvgCompound: 0.9},
		{Word: "design", Count: 9, AvgCompound: 0.1},
	}
	got := FoldGroups(stats, testGroups, []string{"Design"}, 3)
	require.Len(t, got, 3)

	assert.Equal(t, "export", got[0].Group)
	assert.Equal(t, 5, got[0].Count)

	assert.Equal(t, "easy", got[1].Group)
	assert.Equal(t, "template(s)", got[2].Group)
	assert.Equal(t, 4, got[2].Count)
	assert.InDelta(t, 0.4, got[2].AvgCompound, 1e-12)
}

func TestGroupsOf(t *testing.T) {
	assert.Equal(t, "flyer(s)", testGroups.Of("Flyers"))
	assert.Equal(t, "poster", testGroups.Of("Poster"))
}

func TestFoldGroupsEmpty(t *testing.T) {
	assert.Empty(t, FoldGroups(nil, testGroups, nil, 3))
}
