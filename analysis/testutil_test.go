package analysis

import (
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/sentiment"
	"github.com/Yale-Undergraduate-Consulting-Group/yucg-verse/transcript"
)

func row(who string, role transcript.Role, text string, compound float64) sentiment.Scored {
	return sentiment.Scored{
		Sentence: transcript.Sentence{Interviewee: who, Role: role, Speaker: who, LineNumber: 1, Text: text},
		Result:   sentiment.Result{Compound: compound, Label: sentiment.DefaultThresholds.Label(compound)},
	}
}
