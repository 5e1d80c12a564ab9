package historyui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/stats"
)

const (
	idColWidth       = 8
	strengthColWidth = 10
	createdColWidth  = 16
	favColWidth      = 3
	minValueWidth    = 8
	maxValueWidth    = model.MaxLength + 2
)

func historyColumns(width int) []table.Column {
	fixed := idColWidth + strengthColWidth + createdColWidth + favColWidth + 5
	valueWidth := maxValueWidth
	if width > 0 {
		valueWidth = minInt(maxValueWidth, maxInt(minValueWidth, width-fixed))
	}
	return []table.Column{
		{Title: "ID", Width: idColWidth},
		{Title: "Password", Width: valueWidth},
		{Title: "Strength", Width: strengthColWidth},
		{Title: "Created", Width: createdColWidth},
		{Title: "Fav", Width: favColWidth},
	}
}

func buildRows(entries []model.HistoryEntry, now time.Time, masked bool) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		value := e.Value
		if masked {
			value = strings.Repeat("•", len([]rune(e.Value)))
		}
		fav := ""
		if e.Favorite {
			fav = "★"
		}
		rows = append(rows, table.Row{
			stats.ShortID(e.ID),
			value,
			e.Strength,
			stats.Age(e.CreatedAt, now),
			fav,
		})
	}
	return rows
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
