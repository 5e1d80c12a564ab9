// Package stats contains history summaries and plain-text reporting.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/easypass/internal/model"
)

const (
	idPrefixLen  = 8
	barWidth     = 20
	minValueCols = 8
)

// HistoryOptions controls RenderHistory output.
type HistoryOptions struct {
	Now        time.Time
	Width      int
	MaskValues bool
}

// Age formats a timestamp relative to now.
func Age(created, now time.Time) string {
	return humanize.RelTime(created, now, "ago", "from now")
}

// ShortID returns the displayed prefix of an entry ID.
func ShortID(id string) string {
	if len(id) <= idPrefixLen {
		return id
	}
	return id[:idPrefixLen]
}

// RenderHistory prints history entries as a table.
func RenderHistory(w io.Writer, entries []model.HistoryEntry, opts HistoryOptions) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No passwords in history.")
		return err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	headers := []string{"ID", "Password", "Strength", "Created", "Fav"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		value := e.Value
		if opts.MaskValues {
			value = strings.Repeat("•", len([]rune(e.Value)))
		}
		fav := ""
		if e.Favorite {
			fav = "*"
		}
		rows = append(rows, []string{ShortID(e.ID), value, e.Strength, Age(e.CreatedAt, now), fav})
	}
	if opts.Width > 0 {
		fitValueColumn(headers, rows, 1, opts.Width)
	}
	for _, line := range formatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints history totals and the strength breakdown.
func RenderSummary(w io.Writer, report Report) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Entries: %d\n", report.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Favorites: %d\n", report.Favorites); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"Strength", "Count", "Share", ""}
	rows := make([][]string, 0, len(Levels)+1)
	for _, level := range Levels {
		n := report.Counts[level]
		rows = append(rows, []string{level.Label(), fmt.Sprintf("%d", n), share(n, report.Total), bar(n, report.Total)})
	}
	if report.Unknown > 0 {
		rows = append(rows, []string{"(unknown)", fmt.Sprintf("%d", report.Unknown), share(report.Unknown, report.Total), bar(report.Unknown, report.Total)})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func share(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}

func bar(n, total int) string {
	if total == 0 || n == 0 {
		return ""
	}
	filled := n * barWidth / total
	if filled == 0 {
		filled = 1
	}
	return strings.Repeat("#", filled)
}

// fitValueColumn truncates column col so the rendered table fits in width.
func fitValueColumn(headers []string, rows [][]string, col, width int) {
	others := 0
	for i := range headers {
		if i == col {
			continue
		}
		w := displayWidth(headers[i])
		for _, row := range rows {
			if cw := displayWidth(row[i]); cw > w {
				w = cw
			}
		}
		others += w + 2
	}
	avail := width - others
	if avail < minValueCols {
		avail = minValueCols
	}
	for _, row := range rows {
		row[col] = truncate(row[col], avail)
	}
}
