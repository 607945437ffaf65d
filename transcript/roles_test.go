package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOf(t *testing.T) {
	assert.Equal(t, RoleInterviewee, RoleOf("Jane Doe", "Jane Doe"))
	assert.Equal(t, RoleInterviewer, RoleOf("Moderator", "Jane Doe"))
	assert.Equal(t, RoleUnknown, RoleOf("", "Jane Doe"))
	assert.Equal(t, RoleInterviewee, RoleOf("  Jane Doe ", "Jane Doe  "))
	assert.Equal(t, RoleInterviewer, RoleOf("jane doe", "Jane Doe"), "comparison is case-sensitive")
	assert.Equal(t, RoleUnknown, RoleOf("   ", "Jane Doe"))
}

func TestTagRoles(t *testing.T) {
	lines := []Line{
		{Interviewee: "Jane Doe", LineNumber: 1, Speaker: "Moderator", Text: "Hi"},
		{Interviewee: "Jane Doe", LineNumber: 2, Speaker: " Jane Doe", Text: "Hello"},
		{Interviewee: "Jane Doe", LineNumber: 3, Text: "continued"},
	}
	tagged := TagRoles(lines)

	assert.Len(t, tagged, 3)
	assert.Equal(t, RoleInterviewer, tagged[0].Role)
	assert.Equal(t, RoleInterviewee, tagged[1].Role)
	assert.Equal(t, "Jane Doe", tagged[1].Speaker)
	assert.Equal(t, RoleUnknown, tagged[2].Role)
	assert.Equal(t, " Jane Doe", lines[1].Speaker, "input is not modified")
}
