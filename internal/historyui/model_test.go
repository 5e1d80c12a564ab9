package historyui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/easypass/internal/app"
	"github.com/verte-zerg/easypass/internal/generator"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, n int) (*Model, *app.App, *fakeClipboard) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "easypass.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	cb := &fakeClipboard{}
	seq := 0
	a := app.New(st, generator.New(), app.Options{
		Clock:     fixedClock{now: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)},
		Clipboard: cb,
		NewID: func() string {
			seq++
			return fmt.Sprintf("entry-%02d", seq)
		},
	})
	for i := 0; i < n; i++ {
		if _, err := a.Generate(context.Background(), model.DefaultSettings(), true); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}
	m := NewModel(a, model.HistoryFilter{}, model.ThemeDark)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, a, cb
}

func press(m *Model, keys string) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return cmd
}

func TestModelSelectsNewestEntry(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	entry, ok := m.Selected()
	if !ok {
		t.Fatalf("expected a selected entry")
	}
	if entry.ID != "entry-03" {
		t.Fatalf("expected newest entry selected, got %s", entry.ID)
	}
	if view := m.View(); !strings.Contains(view, "entry-03") {
		t.Fatalf("expected entry in view")
	}
}

func TestModelCopySelected(t *testing.T) {
	m, _, cb := newTestModel(t, 2)
	entry, _ := m.Selected()
	if cmd := press(m, "c"); cmd == nil {
		t.Fatalf("expected status flash command")
	}
	if cb.text != entry.Value {
		t.Fatalf("expected clipboard %q, got %q", entry.Value, cb.text)
	}
}

func TestModelRemoveSelected(t *testing.T) {
	m, a, _ := newTestModel(t, 3)
	press(m, "x")
	entries, err := a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "entry-03" {
			t.Fatalf("expected entry-03 removed")
		}
	}
	if len(m.report.Entries) != 2 {
		t.Fatalf("expected UI to show 2 entries, got %d", len(m.report.Entries))
	}
}

func TestModelFavoriteAndFilter(t *testing.T) {
	m, a, _ := newTestModel(t, 3)
	press(m, "f")
	entry, err := a.Entry(context.Background(), "entry-03")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if !entry.Favorite {
		t.Fatalf("expected entry-03 to be a favorite")
	}

	press(m, "F")
	if len(m.report.Entries) != 1 || m.report.Entries[0].ID != "entry-03" {
		t.Fatalf("expected only the favorite, got %+v", m.report.Entries)
	}
	press(m, "F")
	if len(m.report.Entries) != 3 {
		t.Fatalf("expected all entries again, got %d", len(m.report.Entries))
	}
}

func TestModelLiveSearch(t *testing.T) {
	m, _, _ := newTestModel(t, 3)
	target := m.report.Entries[2]

	press(m, "/")
	if !m.searchMode {
		t.Fatalf("expected search mode")
	}
	press(m, strings.ToLower(target.Value))
	if len(m.report.Entries) == 0 {
		t.Fatalf("expected at least one match")
	}
	for _, e := range m.report.Entries {
		if !strings.Contains(strings.ToLower(e.Value), strings.ToLower(target.Value)) {
			t.Fatalf("unexpected match %q", e.Value)
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.searchMode {
		t.Fatalf("expected search mode to end")
	}
	if len(m.report.Entries) != 3 {
		t.Fatalf("expected search cleared, got %d entries", len(m.report.Entries))
	}
}

func TestModelClearRequiresConfirmation(t *testing.T) {
	m, a, _ := newTestModel(t, 2)
	press(m, "D")
	if !m.confirmClear {
		t.Fatalf("expected confirmation prompt")
	}
	if view := m.View(); !strings.Contains(view, "Clear history?") {
		t.Fatalf("expected confirmation modal")
	}
	press(m, "n")
	if m.confirmClear || len(m.report.Entries) != 2 {
		t.Fatalf("expected clear to be cancelled")
	}

	press(m, "D")
	press(m, "y")
	entries, err := a.History(context.Background(), model.HistoryFilter{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 0 || len(m.report.Entries) != 0 {
		t.Fatalf("expected empty history")
	}
	if _, ok := m.Selected(); ok {
		t.Fatalf("expected no selection on empty history")
	}
}

func TestModelSummaryTab(t *testing.T) {
	m, _, _ := newTestModel(t, 2)
	press(m, "l")
	if m.activeTab != tabSummary {
		t.Fatalf("expected summary tab")
	}
	if view := m.View(); !strings.Contains(view, "Entries: 2") {
		t.Fatalf("expected summary in view:\n%s", view)
	}
}
