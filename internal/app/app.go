// Package app ties the generator, the strength scorer and the store together.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/verte-zerg/easypass/internal/generator"
	"github.com/verte-zerg/easypass/internal/model"
	"github.com/verte-zerg/easypass/internal/store"
	"github.com/verte-zerg/easypass/internal/strength"
)

// ErrNoCharacters is returned when the settings leave nothing to draw from.
var ErrNoCharacters = errors.New("no characters selected: enable at least one character category")

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Options configures an App. Zero values pick sensible defaults.
type Options struct {
	HistoryLimit int
	Defaults     model.Settings
	Theme        model.Theme
	Logger       *slog.Logger
	Clock        Clock
	Clipboard    Clipboard
	NewID        func() string
}

// App is the application service used by the CLI and the TUI.
type App struct {
	store     *store.Store
	gen       *generator.Generator
	limit     int
	defaults  model.Settings
	theme     model.Theme
	logger    *slog.Logger
	clock     Clock
	clipboard Clipboard
	newID     func() string
}

// New constructs an App.
func New(st *store.Store, gen *generator.Generator, opts Options) *App {
	a := &App{
		store:     st,
		gen:       gen,
		limit:     opts.HistoryLimit,
		defaults:  opts.Defaults,
		theme:     opts.Theme,
		logger:    opts.Logger,
		clock:     opts.Clock,
		clipboard: opts.Clipboard,
		newID:     opts.NewID,
	}
	if a.limit <= 0 {
		a.limit = model.DefaultHistoryLimit
	}
	if a.defaults == (model.Settings{}) {
		a.defaults = model.DefaultSettings()
	}
	if a.theme == "" {
		a.theme = model.ThemeDark
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.clock == nil {
		a.clock = systemClock{}
	}
	if a.clipboard == nil {
		a.clipboard = systemClipboard{}
	}
	if a.newID == nil {
		a.newID = uuid.NewString
	}
	return a
}

// HistoryLimit returns the number of entries kept in history.
func (a *App) HistoryLimit() int {
	return a.limit
}

// Generate produces a password and, when record is true, stores it as the
// newest history entry.
func (a *App) Generate(ctx context.Context, s model.Settings, record bool) (model.HistoryEntry, error) {
	if len(generator.BuildPool(s)) == 0 {
		return model.HistoryEntry{}, ErrNoCharacters
	}
	value := a.gen.Generate(s)
	level := strength.Classify(value)
	entry := model.HistoryEntry{
		ID:        a.newID(),
		Value:     value,
		CreatedAt: a.clock.Now(),
		Strength:  level.Label(),
	}
	a.logger.Debug("generated password",
		slog.Int("length", s.Length),
		slog.Bool("easy_typing", s.EasyTyping),
		slog.Bool("exclude_ambiguous", s.ExcludeAmbiguous),
		slog.String("strength", level.String()),
	)
	if !record {
		return entry, nil
	}
	if err := a.store.AddEntry(ctx, entry, a.limit); err != nil {
		return entry, fmt.Errorf("failed to save history entry: %w", err)
	}
	return entry, nil
}

// Preferences returns the stored settings, falling back to the defaults.
func (a *App) Preferences(ctx context.Context) (model.Preferences, error) {
	prefs, ok, err := a.store.LoadPreferences(ctx)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return model.Preferences{Settings: a.defaults, Theme: a.theme}, nil
	}
	if _, err := model.ParseTheme(string(prefs.Theme)); err != nil {
		a.logger.Warn("stored theme is invalid; using default", slog.String("theme", string(prefs.Theme)))
		prefs.Theme = a.theme
	}
	return prefs, nil
}

// SavePreferences validates and stores the settings record.
func (a *App) SavePreferences(ctx context.Context, prefs model.Preferences) (model.Preferences, error) {
	if err := prefs.Settings.Validate(); err != nil {
		return model.Preferences{}, err
	}
	if _, err := model.ParseTheme(string(prefs.Theme)); err != nil {
		return model.Preferences{}, err
	}
	prefs.UpdatedAt = a.clock.Now()
	if err := a.store.SavePreferences(ctx, prefs); err != nil {
		return model.Preferences{}, fmt.Errorf("failed to save settings: %w", err)
	}
	a.logger.Debug("saved settings", slog.Int("length", prefs.Settings.Length), slog.String("theme", string(prefs.Theme)))
	return prefs, nil
}

// ResetPreferences drops the stored settings and returns the defaults.
func (a *App) ResetPreferences(ctx context.Context) (model.Preferences, error) {
	if err := a.store.DeletePreferences(ctx); err != nil {
		return model.Preferences{}, fmt.Errorf("failed to reset settings: %w", err)
	}
	return model.Preferences{Settings: a.defaults, Theme: a.theme}, nil
}

// History lists stored entries newest first.
func (a *App) History(ctx context.Context, filter model.HistoryFilter) ([]model.HistoryEntry, error) {
	entries, err := a.store.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// Entry returns the entry whose ID equals or starts with id.
func (a *App) Entry(ctx context.Context, id string) (model.HistoryEntry, error) {
	entry, err := a.store.GetEntry(ctx, id)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to find entry %q: %w", id, err)
	}
	return entry, nil
}

// Remove deletes the entry identified by id or an unambiguous ID prefix.
func (a *App) Remove(ctx context.Context, id string) (model.HistoryEntry, error) {
	entry, err := a.Entry(ctx, id)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	if err := a.store.DeleteEntry(ctx, entry.ID); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return entry, nil
}

// ToggleFavorite flips the favorite flag of an entry.
func (a *App) ToggleFavorite(ctx context.Context, id string) (model.HistoryEntry, error) {
	entry, err := a.Entry(ctx, id)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	entry.Favorite = !entry.Favorite
	if err := a.store.SetFavorite(ctx, entry.ID, entry.Favorite); err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// ClearHistory removes all entries.
func (a *App) ClearHistory(ctx context.Context) (int64, error) {
	n, err := a.store.ClearHistory(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	a.logger.Debug("cleared history", slog.Int64("deleted", n))
	return n, nil
}

// Copy places text on the system clipboard.
func (a *App) Copy(text string) error {
	if err := a.clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// Store exposes the underlying store for reporting.
func (a *App) Store() *store.Store {
	return a.store
}

// Now returns the app clock's current time.
func (a *App) Now() time.Time {
	return a.clock.Now()
}
