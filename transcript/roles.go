package transcript

import "strings"

// RoleOf classifies a speaker against the interviewee of the file.
// Both sides are trimmed; the comparison is case-sensitive.
func RoleOf(speaker, interviewee string) Role {
	speaker = strings.TrimSpace(speaker)
	switch {
	case speaker == "":
		return RoleUnknown
	case speaker == strings.TrimSpace(interviewee):
		return RoleInterviewee
	default:
		return RoleInterviewer
	}
}

func TagRoles(lines []Line) []Tagged {
	out := make([]Tagged, 0, len(lines))
	for _, l := range lines {
		l.Speaker = strings.TrimSpace(l.Speaker)
		l.Interviewee = strings.TrimSpace(l.Interviewee)
		out = append(out, Tagged{Line: l, Role: RoleOf(l.Speaker, l.Interviewee)})
	}
	return out
}
