package analysis

import (
	"regexp"
	"strings"

	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

// MentionMatcher tests sentences for whole-word, case-insensitive mentions
// of any of a list of terms. Multi-word terms must appear contiguously.
type MentionMatcher struct {
	re *regexp.Regexp
}

func NewMentionMatcher(terms []string) *MentionMatcher {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return &MentionMatcher{}
	}
	// RE2's \b only knows ASCII word characters
	return &MentionMatcher{re: regexp.MustCompile(
		`(?i)(?:^|[^\p{L}\p{N}_])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}_])`)}
}

// Match reports whether s mentions a term. A matcher without terms matches nothing.
func (m *MentionMatcher) Match(s string) bool {
	return m.re != nil && m.re.MatchString(s)
}

// SplitByMention partitions rows into those that do not mention a term and
// those that do. Order is preserved within each part.
func SplitByMention(rows []sentiment.Scored, m *MentionMatcher) (without, with []sentiment.Scored) {
	for _, r := range rows {
		if m.Match(r.Text) {
			with = append(with, r)
		} else {
			without = append(without, r)
		}
	}
	return without, with
}

// FilterSubject keeps rows spoken in role that mention the subject.
// The role comparison ignores case.
func FilterSubject(rows []sentiment.Scored, role transcript.Role, subject *MentionMatcher) []sentiment.Scored {
	var out []sentiment.Scored
	for _, r := range rows {
		if strings.EqualFold(string(r.Role), string(role)) && subject.Match(r.Text) {
			out = append(out, r)
		}
	}
	return out
}
