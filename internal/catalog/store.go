// Package catalog manages a local SQLite index of caption files so the
// CLI can list and search a library without re-parsing it.
package catalog

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Entry describes one indexed caption file.
type Entry struct {
	ID            string
	Path          string
	ContentHash   string // hex sha256
	Title         string
	Artist        string
	LineCount     int
	SyllableCount int
	DurationMs    int64
	Speakers      []string
	Broken        bool
	IndexedAt     time.Time
}

// Open initializes or connects to the catalog database and applies migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// DefaultPath returns the catalog location under the user cache dir.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "antext", "catalog.db"), nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Upsert inserts the entry or replaces the row with the same path.
// A fresh UUID is assigned when the entry has none.
func (s *Store) Upsert(ctx context.Context, e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.IndexedAt.IsZero() {
		e.IndexedAt = time.Now().UTC()
	}
	speakers, err := json.Marshal(emptyIfNil(e.Speakers))
	if err != nil {
		return fmt.Errorf("marshal speakers: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO caption_files (
            id, path, content_hash, title, artist,
            line_count, syllable_count, duration_ms, speakers_json, broken, indexed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            content_hash = excluded.content_hash,
            title = excluded.title,
            artist = excluded.artist,
            line_count = excluded.line_count,
            syllable_count = excluded.syllable_count,
            duration_ms = excluded.duration_ms,
            speakers_json = excluded.speakers_json,
            broken = excluded.broken,
            indexed_at = excluded.indexed_at`,
		e.ID,
		e.Path,
		e.ContentHash,
		e.Title,
		e.Artist,
		e.LineCount,
		e.SyllableCount,
		e.DurationMs,
		string(speakers),
		boolToInt(e.Broken),
		e.IndexedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

// GetByPath returns the entry for path, or nil when it is not indexed.
func (s *Store) GetByPath(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM caption_files WHERE path = ?", path)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// List returns all entries ordered by artist, then title, then path.
func (s *Store) List(ctx context.Context) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" FROM caption_files ORDER BY artist, title, path")
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes the entry for path. Missing paths are not an error.
func (s *Store) Remove(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM caption_files WHERE path = ?", path); err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, path, content_hash, title, artist,
    line_count, syllable_count, duration_ms, speakers_json, broken, indexed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		e         Entry
		speakers  string
		broken    int
		indexedAt string
	)
	err := row.Scan(
		&e.ID, &e.Path, &e.ContentHash, &e.Title, &e.Artist,
		&e.LineCount, &e.SyllableCount, &e.DurationMs, &speakers, &broken, &indexedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(speakers), &e.Speakers); err != nil {
		return nil, fmt.Errorf("unmarshal speakers: %w", err)
	}
	e.Broken = broken != 0
	if ts, err := time.Parse(time.RFC3339Nano, indexedAt); err == nil {
		e.IndexedAt = ts
	}
	return &e, nil
}

// HashString renders a content hash the way entries store it.
func HashString(h [32]byte) string {
	return hex.EncodeToString(h[:])
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
