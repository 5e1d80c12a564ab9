// Package generator builds password character pools and draws passwords from them.
package generator

import (
	"strings"

	"github.com/verte-zerg/easypass/internal/model"
)

// Spanish ISO QWERTY hand zones. Ñ sits under the right pinky.
const (
	leftLower  = "qwertasdfgzxcvb"
	rightLower = "yuiophjklñnm"
	leftUpper  = "QWERTASDFGZXCVB"
	rightUpper = "YUIOPHJKLÑNM"
	leftDigit  = "12345"
	rightDigit = "67890"

	// Shifted number row symbols. The whole set is treated as right-hand keys
	// for alternation even though some sit under the left hand.
	symbols = "!@#$%&/()=?¿¡*+"

	// Ambiguous lists glyphs that are easily confused in common fonts.
	Ambiguous = "l1IO0"
)

// Class identifies the character category a rune came from.
type Class int

const (
	ClassNone Class = iota
	ClassLower
	ClassUpper
	ClassDigit
	ClassSymbol
)

// Hand is a keyboard side.
type Hand int

const (
	Left Hand = iota
	Right
)

// Other returns the opposite hand.
func (h Hand) Other() Hand {
	if h == Left {
		return Right
	}
	return Left
}

func (h Hand) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Pool is an ordered set of candidate characters.
type Pool []rune

// Contains reports whether r is in the pool.
func (p Pool) Contains(r rune) bool {
	for _, c := range p {
		if c == r {
			return true
		}
	}
	return false
}

func (p Pool) String() string {
	return string(p)
}

// HandPools holds the per-hand pools used by alternating generation.
type HandPools struct {
	Left  Pool
	Right Pool
}

// For returns the pool for the given hand.
func (hp HandPools) For(h Hand) Pool {
	if h == Left {
		return hp.Left
	}
	return hp.Right
}

// BuildPool unions the enabled categories into a single pool.
// The result is empty when no category is enabled.
func BuildPool(cfg model.Settings) Pool {
	var b strings.Builder
	if cfg.Lowercase {
		b.WriteString(leftLower + rightLower)
	}
	if cfg.Uppercase {
		b.WriteString(leftUpper + rightUpper)
	}
	if cfg.Digits {
		b.WriteString(leftDigit + rightDigit)
	}
	if cfg.Symbols {
		b.WriteString(symbols)
	}
	return filterPool(b.String(), cfg.ExcludeAmbiguous)
}

// BuildHandPools splits the enabled categories by hand. A hand that ends up
// empty borrows the other hand's pool, or the unified pool when both are empty.
func BuildHandPools(cfg model.Settings) HandPools {
	var left, right strings.Builder
	if cfg.Lowercase {
		left.WriteString(leftLower)
		right.WriteString(rightLower)
	}
	if cfg.Uppercase {
		left.WriteString(leftUpper)
		right.WriteString(rightUpper)
	}
	if cfg.Digits {
		left.WriteString(leftDigit)
		right.WriteString(rightDigit)
	}
	if cfg.Symbols {
		right.WriteString(symbols)
	}

	hp := HandPools{
		Left:  filterPool(left.String(), cfg.ExcludeAmbiguous),
		Right: filterPool(right.String(), cfg.ExcludeAmbiguous),
	}
	if len(hp.Left) == 0 {
		if len(hp.Right) > 0 {
			hp.Left = hp.Right
		} else {
			hp.Left = BuildPool(cfg)
		}
	}
	if len(hp.Right) == 0 {
		if len(hp.Left) > 0 {
			hp.Right = hp.Left
		} else {
			hp.Right = BuildPool(cfg)
		}
	}
	return hp
}

// IsAmbiguous reports whether r is on the ambiguous denylist.
func IsAmbiguous(r rune) bool {
	return strings.ContainsRune(Ambiguous, r)
}

// ClassOf returns the category a rune belongs to, or ClassNone for runes the
// generator never produces.
func ClassOf(r rune) Class {
	switch {
	case strings.ContainsRune(leftLower+rightLower, r):
		return ClassLower
	case strings.ContainsRune(leftUpper+rightUpper, r):
		return ClassUpper
	case strings.ContainsRune(leftDigit+rightDigit, r):
		return ClassDigit
	case strings.ContainsRune(symbols, r):
		return ClassSymbol
	default:
		return ClassNone
	}
}

func filterPool(chars string, excludeAmbiguous bool) Pool {
	pool := make(Pool, 0, len(chars))
	for _, r := range chars {
		if excludeAmbiguous && IsAmbiguous(r) {
			continue
		}
		pool = append(pool, r)
	}
	return pool
}
