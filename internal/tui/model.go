package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/strength"
)

const statusTTL = 2 * time.Second

// Options tunes the generator UI.
type Options struct {
	// Record stores explicitly generated passwords in history. Passwords
	// redrawn after a settings change are shown but never stored.
	Record bool
}

type clearStatusMsg struct {
	seq int
}

// Model implements the Bubble Tea generator UI.
type Model struct {
	app    *app.App
	prefs  model.Preferences
	record bool

	pal  palette
	keys keyMap
	help help.Model

	width  int
	height int

	current   model.HistoryEntry
	status    string
	statusErr bool
	statusSeq int

	initCmd tea.Cmd
}

// NewModel constructs a generator TUI model and draws the first password.
func NewModel(a *app.App, prefs model.Preferences, opts Options) *Model {
	m := &Model{
		app:    a,
		prefs:  prefs,
		record: opts.Record,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.applyTheme()
	m.initCmd = m.regenerate(m.record)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Regenerate):
		return m.regenerate(m.record)
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrent()
	case key.Matches(msg, m.keys.Longer):
		return m.updateSettings(func(s *model.Settings) { s.Length++ })
	case key.Matches(msg, m.keys.Shorter):
		return m.updateSettings(func(s *model.Settings) { s.Length-- })
	case key.Matches(msg, m.keys.Upper):
		return m.updateSettings(func(s *model.Settings) { s.Uppercase = !s.Uppercase })
	case key.Matches(msg, m.keys.Lower):
		return m.updateSettings(func(s *model.Settings) { s.Lowercase = !s.Lowercase })
	case key.Matches(msg, m.keys.Digits):
		return m.updateSettings(func(s *model.Settings) { s.Digits = !s.Digits })
	case key.Matches(msg, m.keys.Symbols):
		return m.updateSettings(func(s *model.Settings) { s.Symbols = !s.Symbols })
	case key.Matches(msg, m.keys.Ambiguous):
		return m.updateSettings(func(s *model.Settings) { s.ExcludeAmbiguous = !s.ExcludeAmbiguous })
	case key.Matches(msg, m.keys.EasyTyping):
		return m.updateSettings(func(s *model.Settings) { s.EasyTyping = !s.EasyTyping })
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	default:
		return nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{
		m.pal.title.Render("easypass"),
		"",
		m.renderPassword(),
		"",
		m.renderStrength(),
		m.renderSettings(),
		m.renderStatus(),
		"",
		m.help.View(m.keys),
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Current returns the password on screen.
func (m *Model) Current() model.HistoryEntry {
	return m.current
}

// Preferences returns the settings the UI ended with.
func (m *Model) Preferences() model.Preferences {
	return m.prefs
}

func (m *Model) renderPassword() string {
	if m.current.Value == "" {
		return m.pal.muted.Render("(no password)")
	}
	styled := buildStyledRunes([]rune(m.current.Value), m.pal)
	width := 0
	if m.width > 0 {
		width = int(float64(m.width) * 0.70)
		if width < 1 {
			width = 1
		}
	}
	return wrapStyledRunes(styled, width)
}

func (m *Model) renderStrength() string {
	level, err := strength.ParseLabel(m.current.Strength)
	if err != nil {
		return ""
	}
	score := strength.Score(m.current.Value)
	meter := strings.Repeat("█", score) + strings.Repeat("░", strength.MaxScore-score)
	badge := m.pal.levelStyle(level).Render(level.Label())
	return lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", m.pal.meter.Render(meter), m.pal.muted.Render(fmt.Sprintf(" %d/%d", score, strength.MaxScore)))
}

func (m *Model) renderSettings() string {
	return m.pal.muted.Render(formatSettings(m.prefs.Settings))
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.pal.errMsg.Render(m.status)
	}
	return m.pal.status.Render(m.status)
}

func formatSettings(s model.Settings) string {
	toggles := []struct {
		label string
		on    bool
	}{
		{"A-Z", s.Uppercase},
		{"a-z", s.Lowercase},
		{"0-9", s.Digits},
		{"!@#", s.Symbols},
		{"no l1IO0", s.ExcludeAmbiguous},
		{"easy typing", s.EasyTyping},
	}
	parts := make([]string, 0, len(toggles)+1)
	parts = append(parts, fmt.Sprintf("Length %d", s.Length))
	for _, t := range toggles {
		mark := " "
		if t.on {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, t.label))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) regenerate(record bool) tea.Cmd {
	entry, err := m.app.Generate(context.Background(), m.prefs.Settings, record)
	if err != nil {
		if errors.Is(err, app.ErrNoCharacters) {
			m.current = model.HistoryEntry{}
		} else {
			m.current = entry
		}
		return m.flash(err.Error(), true)
	}
	m.current = entry
	return nil
}

func (m *Model) updateSettings(change func(*model.Settings)) tea.Cmd {
	next := m.prefs
	change(&next.Settings)
	next.Settings.Length = model.ClampLength(next.Settings.Length)
	if next.Settings == m.prefs.Settings {
		return nil
	}
	if !next.Settings.HasCategory() {
		return m.flash("keep at least one character category enabled", true)
	}
	if err := m.save(next); err != nil {
		return m.flash(err.Error(), true)
	}
	return m.regenerate(false)
}

func (m *Model) toggleTheme() tea.Cmd {
	next := m.prefs
	next.Theme = model.ThemeLight
	if m.prefs.Theme == model.ThemeLight {
		next.Theme = model.ThemeDark
	}
	if err := m.save(next); err != nil {
		return m.flash(err.Error(), true)
	}
	m.applyTheme()
	return nil
}

func (m *Model) save(next model.Preferences) error {
	saved, err := m.app.SavePreferences(context.Background(), next)
	if err != nil {
		return err
	}
	m.prefs = saved
	return nil
}

func (m *Model) copyCurrent() tea.Cmd {
	if m.current.Value == "" {
		return m.flash("nothing to copy", true)
	}
	if err := m.app.Copy(m.current.Value); err != nil {
		return m.flash(err.Error(), true)
	}
	return m.flash("Copied to clipboard", false)
}

func (m *Model) flash(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) applyTheme() {
	m.pal = paletteFor(m.prefs.Theme)
	m.help.Styles.ShortKey = m.pal.title
	m.help.Styles.FullKey = m.pal.title
}
