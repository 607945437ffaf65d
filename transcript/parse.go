package transcript

import (
	"regexp"
	"strings"
)

var (
	// a plain name only counts as a speaker when a timestamp or separator follows it
	plainSpeaker = regexp.MustCompile(`^([A-Za-z .]+?)(?:\s*(?:\d{1,2}:\d{2}:\d{2}|:)|\s+-)`)
	timestamp    = regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}`)
)

// ParseLine splits a raw transcript line into speaker, timestamp and text.
//
// Recognised shapes are "[Name] 00:01:02: text", "Name 00:01:02 - text",
// "Name: text" and "00:01:02 text". Anything else is returned whole as text.
// ParseLine never fails; when nothing useful is captured the raw line is
// returned unchanged as text.
func ParseLine(raw string) (speaker, ts, text string) {
	rest := strings.TrimSpace(raw)

	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end > 0 {
			speaker = strings.TrimSpace(rest[1:end])
			rest = strings.TrimSpace(rest[end+1:])
		}
	} else if m := plainSpeaker.FindStringSubmatchIndex(rest); m != nil {
		speaker = strings.TrimSpace(rest[m[2]:m[3]])
		rest = strings.TrimSpace(rest[m[3]:])
	}

	if loc := timestamp.FindStringIndex(rest); loc != nil {
		ts = rest[:loc[1]]
		rest = strings.TrimSpace(rest[loc[1]:])
	}

	if strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, "-") {
		rest = rest[1:]
	}
	text = strings.TrimSpace(rest)

	if speaker == "" && ts == "" && text == "" {
		return "", "", raw
	}
	return speaker, ts, text
}
