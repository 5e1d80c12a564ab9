// Package strength classifies passwords into four qualitative levels.
//
// The classification is a heuristic over length and character-class coverage,
// not an entropy estimate. Its thresholds and labels must stay stable because
// the labels are stored alongside history entries.
package strength

import (
	"fmt"
	"unicode/utf8"
)

// Level is an ordered strength category.
type Level int

const (
	Weak Level = iota
	Medium
	Strong
	VeryStrong
)

// Stored labels, one per level.
const (
	LabelWeak       = "Débil"
	LabelMedium     = "Media"
	LabelStrong     = "Fuerte"
	LabelVeryStrong = "Muy Fuerte"
)

// MaxScore is the highest score Score can return.
const MaxScore = 6

// Label returns the persisted label for the level.
func (l Level) Label() string {
	switch l {
	case Medium:
		return LabelMedium
	case Strong:
		return LabelStrong
	case VeryStrong:
		return LabelVeryStrong
	default:
		return LabelWeak
	}
}

func (l Level) String() string {
	switch l {
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very-strong"
	default:
		return "weak"
	}
}

// ParseLabel maps a stored label back to its level.
func ParseLabel(label string) (Level, error) {
	switch label {
	case LabelWeak:
		return Weak, nil
	case LabelMedium:
		return Medium, nil
	case LabelStrong:
		return Strong, nil
	case LabelVeryStrong:
		return VeryStrong, nil
	default:
		return Weak, fmt.Errorf("unknown strength label %q", label)
	}
}

// Score returns 0..MaxScore: one point each for a length of at least 10, 14
// and 18 characters, and one point each for an ASCII uppercase letter, an ASCII
// digit, and any character outside [A-Za-z0-9].
func Score(password string) int {
	score := 0
	n := utf8.RuneCountInString(password)
	if n >= 10 {
		score++
	}
	if n >= 14 {
		score++
	}
	if n >= 18 {
		score++
	}

	var hasUpper, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
		default:
			hasOther = true
		}
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasOther {
		score++
	}
	return score
}

// Classify maps a password to its level.
func Classify(password string) Level {
	if password == "" {
		return Weak
	}
	return FromScore(Score(password))
}

// FromScore maps a score to its level.
func FromScore(score int) Level {
	switch {
	case score < 3:
		return Weak
	case score < 4:
		return Medium
	case score < MaxScore:
		return Strong
	default:
		return VeryStrong
	}
}
