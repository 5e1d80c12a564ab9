package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/easypass/internal/generator"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/strength"
)

type palette struct {
	lower  lipgloss.Style
	upper  lipgloss.Style
	digit  lipgloss.Style
	symbol lipgloss.Style

	title  lipgloss.Style
	muted  lipgloss.Style
	status lipgloss.Style
	errMsg lipgloss.Style
	meter  lipgloss.Style
	levels map[strength.Level]lipgloss.Style
}

type colors struct {
	text, accent, digit, symbol, muted, red, gold, green, blue string
}

var (
	darkColors = colors{
		text:   "#F0F0F0",
		accent: "#C89A3A",
		digit:  "#69B1FF",
		symbol: "#FF85C0",
		muted:  "#6E6E6E",
		red:    "#FF4D4F",
		gold:   "#C89A3A",
		green:  "#52C41A",
		blue:   "#1890FF",
	}
	lightColors = colors{
		text:   "#262626",
		accent: "#AD6800",
		digit:  "#0958D9",
		symbol: "#C41D7F",
		muted:  "#8C8C8C",
		red:    "#CF1322",
		gold:   "#AD6800",
		green:  "#389E0D",
		blue:   "#096DD9",
	}
)

func paletteFor(theme model.Theme) palette {
	c := darkColors
	if theme == model.ThemeLight {
		c = lightColors
	}
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	badge := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color(hex)).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(hex))
	}
	return palette{
		lower:  fg(c.text),
		upper:  fg(c.accent).Bold(true),
		digit:  fg(c.digit),
		symbol: fg(c.symbol),
		title:  fg(c.accent).Bold(true),
		muted:  fg(c.muted),
		status: fg(c.green),
		errMsg: fg(c.red),
		meter:  fg(c.text),
		levels: map[strength.Level]lipgloss.Style{
			strength.Weak:       badge(c.red),
			strength.Medium:     badge(c.gold),
			strength.Strong:     badge(c.green),
			strength.VeryStrong: badge(c.blue),
		},
	}
}

func (p palette) classStyle(class generator.Class) lipgloss.Style {
	switch class {
	case generator.ClassUpper:
		return p.upper
	case generator.ClassDigit:
		return p.digit
	case generator.ClassSymbol:
		return p.symbol
	default:
		return p.lower
	}
}

func (p palette) levelStyle(level strength.Level) lipgloss.Style {
	if style, ok := p.levels[level]; ok {
		return style
	}
	return p.muted
}
