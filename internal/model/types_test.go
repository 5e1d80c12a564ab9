package model

import (
	"errors"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name string
		s    Settings
		want error
	}{
		{name: "defaults", s: DefaultSettings()},
		{name: "too short", s: Settings{Length: 5, Lowercase: true}, want: ErrLengthOutOfRange},
		{name: "too long", s: Settings{Length: 33, Lowercase: true}, want: ErrLengthOutOfRange},
		{name: "no categories", s: Settings{Length: 10}, want: ErrNoCategories},
		{name: "bounds", s: Settings{Length: MaxLength, Symbols: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestClampLength(t *testing.T) {
	if got := ClampLength(2); got != MinLength {
		t.Fatalf("expected %d, got %d", MinLength, got)
	}
	if got := ClampLength(40); got != MaxLength {
		t.Fatalf("expected %d, got %d", MaxLength, got)
	}
	if got := ClampLength(12); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestParseTheme(t *testing.T) {
	if _, err := ParseTheme("light"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseTheme("blue"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
