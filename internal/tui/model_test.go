package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/generator"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/store"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, prefs model.Preferences, record bool) (*Model, *app.App, *fakeClipboard) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "easypass.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	cb := &fakeClipboard{}
	gen := generator.NewWithSources(generator.NewSeededSource(1), generator.NewSeededSource(2))
	a := app.New(st, gen, app.Options{Clipboard: cb})
	return NewModel(a, prefs, Options{Record: record}), a, cb
}

func defaultPrefs() model.Preferences {
	return model.Preferences{Settings: model.DefaultSettings(), Theme: model.ThemeDark}
}

func press(m *Model, keys string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func TestNewModelRecordsFirstPassword(t *testing.T) {
	m, a, _ := newTestModel(t, defaultPrefs(), true)
	current := m.Current()
	if len([]rune(current.Value)) != 16 {
		t.Fatalf("expected 16 characters, got %q", current.Value)
	}
	entries, err := a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 || entries[0].Value != current.Value {
		t.Fatalf("expected generated password in history, got %+v", entries)
	}
}

func TestRegenerateWithoutRecording(t *testing.T) {
	m, a, _ := newTestModel(t, defaultPrefs(), false)
	press(m, "r")
	entries, err := a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestToggleUppercasePersistsAndRegenerates(t *testing.T) {
	m, a, _ := newTestModel(t, defaultPrefs(), true)
	press(m, "u")

	if m.Preferences().Settings.Uppercase {
		t.Fatalf("expected uppercase disabled")
	}
	for _, r := range m.Current().Value {
		if unicode.IsUpper(r) {
			t.Fatalf("unexpected uppercase rune in %q", m.Current().Value)
		}
	}
	stored, err := a.Preferences(context.Background())
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if stored.Settings.Uppercase {
		t.Fatalf("expected stored settings to have uppercase disabled")
	}
}

func TestLastCategoryCannotBeDisabled(t *testing.T) {
	prefs := defaultPrefs()
	prefs.Settings = model.Settings{Length: 12, Lowercase: true}
	m, _, _ := newTestModel(t, prefs, false)
	before := m.Current().Value

	cmd := press(m, "l")
	if cmd == nil {
		t.Fatalf("expected status flash command")
	}
	if !m.Preferences().Settings.Lowercase {
		t.Fatalf("expected lowercase to stay enabled")
	}
	if !m.statusErr || m.status == "" {
		t.Fatalf("expected error status, got %q", m.status)
	}
	if m.Current().Value != before {
		t.Fatalf("password must not change on a refused toggle")
	}
}

func TestLengthAdjustmentIsClamped(t *testing.T) {
	prefs := defaultPrefs()
	prefs.Settings.Length = model.MaxLength - 1
	m, _, _ := newTestModel(t, prefs, false)

	press(m, "+")
	if got := len([]rune(m.Current().Value)); got != model.MaxLength {
		t.Fatalf("expected %d characters, got %d", model.MaxLength, got)
	}
	press(m, "+")
	if m.Preferences().Settings.Length != model.MaxLength {
		t.Fatalf("expected length clamped at %d, got %d", model.MaxLength, m.Preferences().Settings.Length)
	}
	press(m, "-")
	if m.Preferences().Settings.Length != model.MaxLength-1 {
		t.Fatalf("expected length %d, got %d", model.MaxLength-1, m.Preferences().Settings.Length)
	}
}

func TestSettingsChangesDoNotFillHistory(t *testing.T) {
	m, a, _ := newTestModel(t, defaultPrefs(), true)
	first := m.Current()
	if _, err := a.ToggleFavorite(context.Background(), first.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	for i := 0; i < 10; i++ {
		press(m, "-")
	}
	for i := 0; i < 26; i++ {
		press(m, "+")
	}
	for i := 0; i < 26; i++ {
		press(m, "-")
	}
	press(m, "s")
	press(m, "e")

	if got := m.Preferences().Settings.Length; got != model.MinLength {
		t.Fatalf("expected length %d, got %d", model.MinLength, got)
	}
	entries, err := a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the first password in history, got %d entries", len(entries))
	}
	if entries[0].ID != first.ID || !entries[0].Favorite {
		t.Fatalf("expected favorite first entry to survive, got %+v", entries[0])
	}

	press(m, "r")
	entries, err = a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 || entries[0].Value != m.Current().Value {
		t.Fatalf("expected explicit regenerate to be recorded, got %+v", entries)
	}
}

func TestCopyFlashesStatus(t *testing.T) {
	m, _, cb := newTestModel(t, defaultPrefs(), false)
	cmd := press(m, "c")
	if cmd == nil {
		t.Fatalf("expected clear-status command")
	}
	if cb.text != m.Current().Value {
		t.Fatalf("expected clipboard to hold %q, got %q", m.Current().Value, cb.text)
	}
	if m.status != "Copied to clipboard" || m.statusErr {
		t.Fatalf("unexpected status %q", m.status)
	}

	m.Update(clearStatusMsg{seq: m.statusSeq - 1})
	if m.status == "" {
		t.Fatalf("stale clear message must not reset status")
	}
	m.Update(clearStatusMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Fatalf("expected status cleared, got %q", m.status)
	}
}

func TestToggleThemePersists(t *testing.T) {
	m, a, _ := newTestModel(t, defaultPrefs(), false)
	press(m, "t")
	if m.Preferences().Theme != model.ThemeLight {
		t.Fatalf("expected light theme, got %q", m.Preferences().Theme)
	}
	stored, err := a.Preferences(context.Background())
	if err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if stored.Theme != model.ThemeLight {
		t.Fatalf("expected stored light theme, got %q", stored.Theme)
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, defaultPrefs(), false)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestFormatSettings(t *testing.T) {
	s := model.Settings{Length: 20, Uppercase: true, Digits: true, EasyTyping: true}
	out := formatSettings(s)
	for _, want := range []string{"Length 20", "[x] A-Z", "[ ] a-z", "[x] 0-9", "[ ] !@#", "[ ] no l1IO0", "[x] easy typing"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestViewShowsStrength(t *testing.T) {
	m, _, _ := newTestModel(t, defaultPrefs(), false)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	if !strings.Contains(view, m.Current().Strength) {
		t.Fatalf("expected strength label %q in view", m.Current().Strength)
	}
	if !strings.Contains(view, "easypass") {
		t.Fatalf("expected title in view")
	}
}
