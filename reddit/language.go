package reddit

import (
	"errors"

	"github.com/abadojack/whatlanggo"
)

var ErrUndetectable = errors.New("language could not be detected")

// Detector decides whether a post body is written in English.
type Detector interface {
	IsEnglish(text string) (bool, error)
}

// Whatlang detects languages with trigram profiles.
type Whatlang struct{}

func (Whatlang) IsEnglish(text string) (bool, error) {
	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return false, ErrUndetectable
	}
	return info.Lang == whatlanggo.Eng, nil
}
