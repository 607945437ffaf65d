package analysis

import (
	"sort"
	"strings"
)

// WordGroup folds several surface words into one point.
type WordGroup struct {
	Group       string   `json:"group"`
	Count       int      `json:"count"`
	AvgCompound float64  `json:"avg_hf_compound"`
	Words       []string `json:"original_words"`
}

// Groups maps a lowercase word to its group name.
type Groups map[string]string

// NewGroups inverts group definitions (group -> member words).
func NewGroups(defs map[string][]string) Groups {
	g := Groups{}
	for name, words := range defs {
		for _, w := range words {
			g[strings.ToLower(w)] = name
		}
	}
	return g
}

// Of returns the group of word; an ungrouped word is its own group.
func (g Groups) Of(word string) string {
	w := strings.ToLower(word)
	if name, ok := g[w]; ok {
		return name
	}
	return w
}

// FoldGroups merges word stats sharing a group: counts are summed and
// averages combined as a count-weighted mean. Words in exclude are removed
// first; groups with a total count below minGroupCount are dropped.
func FoldGroups(stats []WordStat, g Groups, exclude []string, minGroupCount int) []WordGroup {
	skip := NewStopSet(exclude)
	members := map[string][]WordStat{}
	for _, s := range stats {
		if skip.Has(strings.ToLower(s.Word)) {
			continue
		}
		name := g.Of(s.Word)
		members[name] = append(members[name], s)
	}

	out := make([]WordGroup, 0, len(members))
	for name, ms := range members {
		sort.Slice(ms, func(i, j int) bool { return ms[i].Word < ms[j].Word })
		wg := WordGroup{Group: name}
		var weighted float64
		for _, m := range ms {
			wg.Count += m.Count
			weighted += float64(m.Count) * m.AvgCompound
			wg.Words = append(wg.Words, m.Word)
		}
		if wg.Count < minGroupCount || wg.Count == 0 {
			continue
		}
		wg.AvgCompound = weighted / float64(wg.Count)
		out = append(out, wg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].AvgCompound != out[j].AvgCompound {
			return out[i].AvgCompound > out[j].AvgCompound
		}
		return out[i].Group < out[j].Group
	})
	return out
}
