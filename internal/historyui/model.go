// Package historyui provides the Bubble Tea history browser.
package historyui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/stats"
)

const (
	tabHistory = iota
	tabSummary
)

const statusTTL = 2 * time.Second

type clearStatusMsg struct {
	seq int
}

// Model implements the Bubble Tea history UI.
type Model struct {
	app    *app.App
	filter model.HistoryFilter
	styles styles

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	table     table.Model
	summary   viewport.Model

	width  int
	height int

	searchMode   bool
	search       textinput.Model
	confirmClear bool
	masked       bool

	status    string
	statusSeq int
}

// NewModel constructs a history UI model drawn in the given theme.
func NewModel(a *app.App, filter model.HistoryFilter, theme model.Theme) *Model {
	m := &Model{
		app:    a,
		filter: filter,
		styles: stylesFor(theme),
		tabs:   []string{"History", "Summary"},
	}
	m.search = newSearchInput()
	m.search.SetValue(filter.Search)
	m.table = table.New(
		table.WithColumns(historyColumns(0)),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	m.table.SetStyles(m.styles.table)
	m.summary = viewport.New(0, 0)
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.updateLayout()
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirmClear {
			return m.updateConfirm(msg)
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "left", "h", "right", "l", "tab":
			m.toggleTab()
			return m, tea.ClearScreen
		case "/":
			m.searchMode = true
			m.updateLayout()
			return m, m.search.Focus()
		case "c", "y", "enter":
			return m, m.copySelected()
		case "x", "delete":
			return m, m.removeSelected()
		case "f", "*":
			return m, m.toggleFavorite()
		case "F":
			m.filter.FavoritesOnly = !m.filter.FavoritesOnly
			m.refresh()
			return m, nil
		case "m":
			m.masked = !m.masked
			m.refreshRows()
			return m, nil
		case "D":
			if len(m.report.Entries) > 0 || m.report.Total > 0 {
				m.confirmClear = true
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabHistory {
				m.table.GotoTop()
			} else {
				m.summary.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.table.GotoBottom()
			} else {
				m.summary.GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabHistory {
				m.table, cmd = m.table.Update(msg)
			} else {
				m.summary, cmd = m.summary.Update(msg)
			}
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.confirmClear {
		return fitLines(m.renderConfirm(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// Selected returns the highlighted entry.
func (m *Model) Selected() (model.HistoryEntry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.report.Entries) {
		return model.HistoryEntry{}, false
	}
	return m.report.Entries[idx], true
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "part of a password"
	input.CharLimit = model.MaxLength
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(m.styles.activeNav.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.searchMode {
		footerHeight++
	}
	if m.errMsg != "" || (m.status != "" && !m.searchMode) {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.table.SetColumns(historyColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(maxInt(1, bodyHeight-1))
	m.summary.Width = m.width
	m.summary.Height = bodyHeight
	m.search.Width = maxInt(10, m.width-lipgloss.Width(m.search.Prompt)-2)
}

func (m *Model) toggleTab() {
	if m.activeTab == tabHistory {
		m.activeTab = tabSummary
		m.table.Blur()
		return
	}
	m.activeTab = tabHistory
	m.table.Focus()
}

func (m *Model) refresh() {
	report, err := stats.BuildReport(context.Background(), m.app.Store(), m.filter)
	if err != nil {
		m.errMsg = err.Error()
		m.report = stats.Report{}
		m.table.SetRows(nil)
		m.summary.SetContent("Failed to load history.")
		return
	}
	m.errMsg = ""
	m.report = report
	m.refreshRows()

	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, report); err != nil {
		m.summary.SetContent(fmt.Sprintf("Failed to render summary: %v", err))
		return
	}
	m.summary.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) refreshRows() {
	m.table.SetRows(buildRows(m.report.Entries, m.app.Now(), m.masked))
	if n := len(m.report.Entries); m.table.Cursor() >= n {
		m.table.SetCursor(maxInt(0, n-1))
	}
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchMode = false
		m.search.Blur()
		m.search.SetValue("")
		m.applySearch()
		m.updateLayout()
		return m, nil
	case tea.KeyEnter:
		m.searchMode = false
		m.search.Blur()
		m.updateLayout()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applySearch()
	return m, cmd
}

func (m *Model) applySearch() {
	value := strings.TrimSpace(m.search.Value())
	if value == m.filter.Search {
		return
	}
	m.filter.Search = value
	m.refresh()
	m.table.GotoTop()
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmClear = false
	if msg.String() != "y" && msg.String() != "Y" {
		return m, m.flash("Clear cancelled")
	}
	n, err := m.app.ClearHistory(context.Background())
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.refresh()
	return m, m.flash(fmt.Sprintf("Cleared %d entries", n))
}

func (m *Model) copySelected() tea.Cmd {
	entry, ok := m.Selected()
	if !ok {
		return nil
	}
	if err := m.app.Copy(entry.Value); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	return m.flash("Copied to clipboard")
}

func (m *Model) removeSelected() tea.Cmd {
	entry, ok := m.Selected()
	if !ok {
		return nil
	}
	if _, err := m.app.Remove(context.Background(), entry.ID); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.refresh()
	return m.flash("Removed " + stats.ShortID(entry.ID))
}

func (m *Model) toggleFavorite() tea.Cmd {
	entry, ok := m.Selected()
	if !ok {
		return nil
	}
	updated, err := m.app.ToggleFavorite(context.Background(), entry.ID)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	pos := m.table.Cursor()
	m.refresh()
	m.table.SetCursor(minInt(pos, maxInt(0, len(m.report.Entries)-1)))
	if updated.Favorite {
		return m.flash("Marked as favorite")
	}
	return m.flash("Removed from favorites")
}

func (m *Model) flash(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	m.updateLayout()
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, m.styles.activeNav.Render(tab))
		} else {
			parts = append(parts, m.styles.inactiveNav.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	return tabs + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	search := m.filter.Search
	if search == "" {
		search = "-"
	}
	scope := "all"
	if m.filter.FavoritesOnly {
		scope = "favorites"
	}
	summary := fmt.Sprintf("Showing %d of %d  search=%s  scope=%s", len(m.report.Entries), m.report.Total, search, scope)
	return m.styles.header.Render(truncateLine(summary, m.width))
}

func (m *Model) renderBody() string {
	if m.activeTab == tabSummary {
		return m.summary.View()
	}
	if len(m.report.Entries) == 0 {
		if m.filter.Search != "" || m.filter.FavoritesOnly {
			return "No entries match."
		}
		return "No passwords in history."
	}
	return m.styles.tableMuted.Render(m.table.View())
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Move: up/down  Search: /  Copy: c  Fav: f  Favorites only: F  Mask: m  Delete: x  Clear: D  Quit: q"
	if m.searchMode {
		help = "Type to filter  enter: keep  esc: clear"
	}
	return m.styles.header.Render(truncateLine(help, m.width))
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.searchMode {
		lines = append(lines, m.search.View())
	}
	switch {
	case m.errMsg != "":
		lines = append(lines, m.styles.errMsg.Render(m.errMsg))
	case m.status != "" && !m.searchMode:
		lines = append(lines, m.styles.status.Render(m.status))
	}
	lines = append(lines, m.renderHelp())
	return strings.Join(lines, "\n")
}

func (m *Model) renderConfirm() string {
	body := []string{
		m.styles.errMsg.Bold(true).Render("Clear history?"),
		fmt.Sprintf("This removes all %d stored passwords.", m.report.Total),
		m.styles.header.Render("y to confirm / any other key to cancel"),
	}
	box := m.styles.modal.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
