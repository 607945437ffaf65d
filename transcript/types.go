package transcript

// Role is the speaker role of a transcript line.
type Role string

const (
	RoleInterviewee Role = "interviewee"
	RoleInterviewer Role = "interviewer"
	RoleUnknown     Role = "unknown"
)

// Line is one non-blank raw line of a transcript file.
type Line struct {
	Interviewee string
	LineNumber  int // 1-based, counted over non-blank lines
	Speaker     string
	Timestamp   string // free-form, usually HH:MM:SS
	Text        string
}

type Tagged struct {
	Line
	Role Role
}

// Sentence is one sentence of a tagged line.
type Sentence struct {
	Interviewee string
	Role        Role
	Speaker     string
	LineNumber  int
	Text        string
}
