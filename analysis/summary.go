package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

// RoleSummary aggregates the sentences of one speaker role in one transcript.
type RoleSummary struct {
	Interviewee string          `json:"interviewee"`
	Role        transcript.Role `json:"role"`
	Speaker     string          `json:"speaker"`
	Sentences   int             `json:"sentences"`
	AvgCompound float64         `json:"avg_compound"`
	Positive    float64         `json:"positive_share"`
	Neutral     float64         `json:"neutral_share"`
	Negative    float64         `json:"negative_share"`
}

var roleOrder = map[transcript.Role]int{
	transcript.RoleInterviewee: 0,
	transcript.RoleInterviewer: 1,
	transcript.RoleUnknown:     2,
}

// SpeakerLabel is the display name of a role within a transcript.
func SpeakerLabel(interviewee string, role transcript.Role) string {
	switch role {
	case transcript.RoleInterviewee:
		return interviewee
	case transcript.RoleInterviewer:
		return interviewee + "'s interviewer"
	default:
		return interviewee + "'s unknown role"
	}
}

// SummarizeRoles groups rows by (interviewee, role). Output is ordered by
// interviewee, then interviewee, interviewer, unknown.
func SummarizeRoles(rows []sentiment.Scored) []RoleSummary {
	type key struct {
		who  string
		role transcript.Role
	}
	groups := map[key][]sentiment.Scored{}
	for _, r := range rows {
		k := key{r.Interviewee, r.Role}
		groups[k] = append(groups[k], r)
	}

	out := make([]RoleSummary, 0, len(groups))
	for k, rs := range groups {
		s := RoleSummary{
			Interviewee: k.who,
			Role:        k.role,
			Speaker:     SpeakerLabel(k.who, k.role),
			Sentences:   len(rs),
			AvgCompound: orderedSum(sentiment.Compounds(rs)) / float64(len(rs)),
		}
		for _, r := range rs {
			switch r.Label {
			case sentiment.Positive:
				s.Positive++
			case sentiment.Negative:
				s.Negative++
			default:
				s.Neutral++
			}
		}
		n := float64(len(rs))
		s.Positive /= n
		s.Neutral /= n
		s.Negative /= n
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Interviewee != out[j].Interviewee {
			return out[i].Interviewee < out[j].Interviewee
		}
		return roleOrder[out[i].Role] < roleOrder[out[j].Role]
	})
	return out
}

// Distribution summarizes one numeric series: count, moments and quartiles.
// Std is the sample standard deviation; quartiles use linear interpolation.
type Distribution struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Q1    float64 `json:"25%"`
	Q2    float64 `json:"50%"`
	Q3    float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Describe summarizes vs. An empty series yields the zero Distribution and
// a single value has zero Std.
func Describe(vs []float64) Distribution {
	if len(vs) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), vs...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return Distribution{
		Count: len(sorted),
		Mean:  mean,
		Std:   std,
		Min:   sorted[0],
		Q1:    quantile(sorted, 0.25),
		Q2:    quantile(sorted, 0.5),
		Q3:    quantile(sorted, 0.75),
		Max:   sorted[len(sorted)-1],
	}
}

// quantile interpolates linearly between closest ranks. stat.Quantile only
// offers the empirical and LinInterp estimators, neither of which matches.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
