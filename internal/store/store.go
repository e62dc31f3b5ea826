// Package store persists generated strategy charts in SQLite. A chart
// is exact for one composition digest and one rule set, so the pair is
// the cache key: re-requesting a chart for an unchanged shoe is a read,
// not a recomputation.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MJE43/blackjack-edge-go/internal/charts"
	"github.com/MJE43/blackjack-edge-go/internal/engine"
)

// ErrNotFound reports a cache miss.
var ErrNotFound = errors.New("chart not found")

// Store is a SQLite-backed chart cache.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS charts (
			id TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			rules TEXT NOT NULL,
			decks INTEGER NOT NULL,
			cells TEXT NOT NULL,
			generated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_charts_key ON charts(digest, rules)`,
	}
	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// rulesKey renders the rule set as a canonical JSON string for keying.
func rulesKey(rules engine.Rules) (string, error) {
	b, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("encode rules: %w", err)
	}
	return string(b), nil
}

// SaveChart inserts or replaces the cached chart for its digest and
// rule set.
func (s *Store) SaveChart(chart *charts.Chart) error {
	key, err := rulesKey(chart.Rules)
	if err != nil {
		return err
	}
	cells, err := json.Marshal(chart.Cells)
	if err != nil {
		return fmt.Errorf("encode cells: %w", err)
	}
	query := `INSERT INTO charts (id, digest, rules, decks, cells, generated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(digest, rules) DO UPDATE SET
			cells = excluded.cells,
			decks = excluded.decks,
			generated_at = excluded.generated_at`
	_, err = s.db.Exec(query,
		uuid.New().String(), chart.Digest, key, chart.Decks, string(cells), chart.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// GetChart returns the cached chart for a composition digest and rule
// set, or ErrNotFound on a miss.
func (s *Store) GetChart(digest string, rules engine.Rules) (*charts.Chart, error) {
	key, err := rulesKey(rules)
	if err != nil {
		return nil, err
	}
	chart := &charts.Chart{Digest: digest, Rules: rules}
	var cells string
	err = s.db.QueryRow(
		`SELECT decks, cells, generated_at FROM charts WHERE digest = ? AND rules = ?`,
		digest, key,
	).Scan(&chart.Decks, &cells, &chart.GeneratedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chart: %w", err)
	}
	if err := json.Unmarshal([]byte(cells), &chart.Cells); err != nil {
		return nil, fmt.Errorf("decode cells: %w", err)
	}
	return chart, nil
}
