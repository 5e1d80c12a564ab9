// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Length bounds accepted by the CLI and the interactive UI.
const (
	MinLength = 6
	MaxLength = 32
)

// DefaultHistoryLimit is the number of entries kept in history.
const DefaultHistoryLimit = 50

var (
	ErrLengthOutOfRange = fmt.Errorf("length must be between %d and %d", MinLength, MaxLength)
	ErrNoCategories     = errors.New("at least one character category must be enabled")
)

// Settings configures a single password generation.
type Settings struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
	EasyTyping       bool
}

// DefaultSettings returns the settings used before anything is stored.
func DefaultSettings() Settings {
	return Settings{
		Length:     16,
		Uppercase:  true,
		Lowercase:  true,
		Digits:     true,
		Symbols:    true,
		EasyTyping: true,
	}
}

// HasCategory reports whether any character category is enabled.
func (s Settings) HasCategory() bool {
	return s.Uppercase || s.Lowercase || s.Digits || s.Symbols
}

// Validate checks the bounds enforced at the UI boundary. The generator itself
// accepts any non-negative length.
func (s Settings) Validate() error {
	if s.Length < MinLength || s.Length > MaxLength {
		return ErrLengthOutOfRange
	}
	if !s.HasCategory() {
		return ErrNoCategories
	}
	return nil
}

// ClampLength returns n limited to [MinLength, MaxLength].
func ClampLength(n int) int {
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}

// Theme selects the UI palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme validates a theme name.
func ParseTheme(v string) (Theme, error) {
	switch Theme(v) {
	case ThemeDark, ThemeLight:
		return Theme(v), nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected %q or %q)", v, ThemeDark, ThemeLight)
	}
}

// Preferences is the persisted settings record.
type Preferences struct {
	Settings  Settings
	Theme     Theme
	UpdatedAt time.Time
}

// HistoryEntry is one previously generated password.
type HistoryEntry struct {
	ID        string
	Value     string
	CreatedAt time.Time
	Strength  string
	Favorite  bool
}

// HistoryFilter narrows history listings.
type HistoryFilter struct {
	Search        string
	FavoritesOnly bool
	Limit         int
}
