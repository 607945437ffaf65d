package sentiment

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// Thresholds map a compound score onto a Label.
type Thresholds struct {
	Pos float64
	Neg float64
}

var DefaultThresholds = Thresholds{Pos: 0.05, Neg: -0.05}

// Label returns Positive when c >= Pos, Negative when c <= Neg, else Neutral.
func (t Thresholds) Label(c float64) Label {
	switch {
	case c >= t.Pos:
		return Positive
	case c <= t.Neg:
		return Negative
	default:
		return Neutral
	}
}
