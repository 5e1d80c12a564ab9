// Package tui provides the Bubble Tea password generator interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/easypass/internal/generator"
)

type styledRune struct {
	s     string
	width int
}

// buildStyledRunes colours every character by the category it came from.
func buildStyledRunes(password []rune, p palette) []styledRune {
	out := make([]styledRune, 0, len(password))
	for _, r := range password {
		style := p.classStyle(generator.ClassOf(r))
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks the password into lines of at most width cells.
// Passwords have no spaces, so every break is a hard one.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	for _, item := range runes {
		if lineWidth+item.width > width && len(line) > 0 {
			out.WriteString(renderStyledRunes(line))
			out.WriteRune('\n')
			line = line[:0]
			lineWidth = 0
		}
		line = append(line, item)
		lineWidth += item.width
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}
