package historyui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/easypass/internal/model"
)

type styles struct {
	activeNav   lipgloss.Style
	inactiveNav lipgloss.Style
	header      lipgloss.Style
	errMsg      lipgloss.Style
	status      lipgloss.Style
	tableMuted  lipgloss.Style
	modal       lipgloss.Style
	table       table.Styles
}

type colors struct {
	text, accent, dim, border, muted, cell, red, green string
}

var (
	darkColors = colors{
		text:   "#F0F0F0",
		accent: "#C89A3A",
		dim:    "#B0B0B0",
		border: "#4A4A4A",
		muted:  "#6E6E6E",
		cell:   "#B8B8B8",
		red:    "#FF4D4F",
		green:  "#52C41A",
	}
	lightColors = colors{
		text:   "#262626",
		accent: "#AD6800",
		dim:    "#595959",
		border: "#BFBFBF",
		muted:  "#8C8C8C",
		cell:   "#434343",
		red:    "#CF1322",
		green:  "#389E0D",
	}
)

// stylesFor matches the generator screen's palette for the same theme.
func stylesFor(theme model.Theme) styles {
	c := darkColors
	if theme == model.ThemeLight {
		c = lightColors
	}
	fg := func(hex string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return styles{
		activeNav: fg(c.text).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(c.accent)),
		inactiveNav: fg(c.dim).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(c.border)),
		header:     fg(c.muted),
		errMsg:     fg(c.red),
		status:     fg(c.green),
		tableMuted: fg(c.cell),
		modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(c.accent)).
			Padding(1, 2),
		table: historyTableStyles(c),
	}
}

func historyTableStyles(c colors) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(c.border)).
		Foreground(lipgloss.Color(c.dim)).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	s.Cell = s.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	s.Selected = s.Cell.
		Foreground(lipgloss.Color(c.text)).
		Bold(true)
	return s
}
