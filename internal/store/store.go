// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/easypass/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

var (
	ErrNotFound    = errors.New("entry not found")
	ErrAmbiguousID = errors.New("id prefix matches more than one entry")
)

// Store wraps SQLite access for history and settings. Writes are serialized.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			value TEXT NOT NULL,
			created_at TEXT NOT NULL,
			strength TEXT NOT NULL,
			favorite INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			length INTEGER NOT NULL,
			uppercase INTEGER NOT NULL,
			lowercase INTEGER NOT NULL,
			digits INTEGER NOT NULL,
			symbols INTEGER NOT NULL,
			exclude_ambiguous INTEGER NOT NULL,
			easy_typing INTEGER NOT NULL,
			theme TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_history_favorite ON history(favorite);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddEntry stores entry as the newest history item and trims the history to
// the newest limit entries.
func (s *Store) AddEntry(ctx context.Context, entry model.HistoryEntry, limit int) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO history (id, value, created_at, strength, favorite) VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Value,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.Strength,
		boolToInt(entry.Favorite),
	); err != nil {
		return err
	}
	if limit > 0 {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM history WHERE seq NOT IN (
				SELECT seq FROM history ORDER BY seq DESC LIMIT ?
			)`, limit); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListEntries returns history entries newest first. Search matches a
// case-insensitive substring of the value.
func (s *Store) ListEntries(ctx context.Context, filter model.HistoryFilter) ([]model.HistoryEntry, error) {
	query := `SELECT id, value, created_at, strength, favorite FROM history`
	var args []any
	if filter.FavoritesOnly {
		query += ` WHERE favorite = ?`
		args = append(args, 1)
	}
	query += ` ORDER BY seq DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	needle := strings.ToLower(filter.Search)
	var entries []model.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if needle != "" && !strings.Contains(strings.ToLower(entry.Value), needle) {
			continue
		}
		entries = append(entries, entry)
		if filter.Limit > 0 && len(entries) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry returns the entry whose ID equals id or starts with it.
func (s *Store) GetEntry(ctx context.Context, id string) (model.HistoryEntry, error) {
	if id == "" {
		return model.HistoryEntry{}, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, value, created_at, strength, favorite FROM history
		 WHERE id = ? OR substr(id, 1, ?) = ?
		 ORDER BY (id = ?) DESC, seq DESC LIMIT 2`,
		id, len(id), id, id)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var found []model.HistoryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return model.HistoryEntry{}, err
		}
		found = append(found, entry)
	}
	if err := rows.Err(); err != nil {
		return model.HistoryEntry{}, err
	}
	switch {
	case len(found) == 0:
		return model.HistoryEntry{}, ErrNotFound
	case found[0].ID == id || len(found) == 1:
		return found[0], nil
	default:
		return model.HistoryEntry{}, ErrAmbiguousID
	}
}

// DeleteEntry removes a single history entry by full ID.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SetFavorite marks or unmarks an entry as favorite.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `UPDATE history SET favorite = ? WHERE id = ?`, boolToInt(favorite), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ClearHistory removes every entry and returns how many were deleted.
func (s *Store) ClearHistory(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StrengthCounts returns the number of history entries per strength label.
func (s *Store) StrengthCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT strength, COUNT(*) FROM history GROUP BY strength`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	counts := map[string]int{}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		counts[label] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// LoadPreferences returns the stored settings record. ok is false when nothing
// has been saved yet.
func (s *Store) LoadPreferences(ctx context.Context) (prefs model.Preferences, ok bool, err error) {
	var (
		st        model.Settings
		upper     int
		lower     int
		digits    int
		symbols   int
		ambiguous int
		easy      int
		theme     string
		updatedAt string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT length, uppercase, lowercase, digits, symbols, exclude_ambiguous, easy_typing, theme, updated_at
		 FROM settings WHERE id = 1`).
		Scan(&st.Length, &upper, &lower, &digits, &symbols, &ambiguous, &easy, &theme, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Preferences{}, false, nil
	}
	if err != nil {
		return model.Preferences{}, false, err
	}
	st.Uppercase = upper != 0
	st.Lowercase = lower != 0
	st.Digits = digits != 0
	st.Symbols = symbols != 0
	st.ExcludeAmbiguous = ambiguous != 0
	st.EasyTyping = easy != 0
	parsed, err := time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return model.Preferences{}, false, fmt.Errorf("invalid settings timestamp: %w", err)
	}
	return model.Preferences{Settings: st, Theme: model.Theme(theme), UpdatedAt: parsed}, true, nil
}

// SavePreferences replaces the stored settings record.
func (s *Store) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := prefs.Settings
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (id, length, uppercase, lowercase, digits, symbols, exclude_ambiguous, easy_typing, theme, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			length = excluded.length,
			uppercase = excluded.uppercase,
			lowercase = excluded.lowercase,
			digits = excluded.digits,
			symbols = excluded.symbols,
			exclude_ambiguous = excluded.exclude_ambiguous,
			easy_typing = excluded.easy_typing,
			theme = excluded.theme,
			updated_at = excluded.updated_at`,
		st.Length,
		boolToInt(st.Uppercase),
		boolToInt(st.Lowercase),
		boolToInt(st.Digits),
		boolToInt(st.Symbols),
		boolToInt(st.ExcludeAmbiguous),
		boolToInt(st.EasyTyping),
		string(prefs.Theme),
		prefs.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// DeletePreferences removes the stored settings record.
func (s *Store) DeletePreferences(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (model.HistoryEntry, error) {
	var entry model.HistoryEntry
	var createdAt string
	var favorite int
	if err := row.Scan(&entry.ID, &entry.Value, &createdAt, &entry.Strength, &favorite); err != nil {
		return model.HistoryEntry{}, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	entry.CreatedAt = parsed
	entry.Favorite = favorite != 0
	return entry, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
