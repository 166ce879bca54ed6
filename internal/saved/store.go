// Package saved persists named searches in SQLite so they can be rerun.
package saved

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/plexfind/pkg/filter"
)

// Search is a named search request.
type Search struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Text      string         `json:"text,omitempty"`
	Filter    *filter.Filter `json:"filter,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	LastRunAt *time.Time     `json:"lastRunAt,omitempty"`
	RunCount  int            `json:"runCount"`
}

// Store provides access to saved searches.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a store over an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

func encodeFilter(f *filter.Filter) (string, error) {
	if f == nil {
		return "", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(data), nil
}

func validate(s *Search) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("saved search name is required")
	}
	if strings.TrimSpace(s.Text) == "" && (s.Filter == nil || s.Filter.IsEmpty()) {
		return ErrEmpty
	}
	return nil
}

// Add inserts a new saved search. Sets ID, CreatedAt and UpdatedAt.
// Returns ErrDuplicate if the name is taken.
func (s *Store) Add(search *Search) error {
	if err := validate(search); err != nil {
		return err
	}
	filterJSON, err := encodeFilter(search.Filter)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	result, err := s.db.Exec(`
		INSERT INTO saved_searches (name, text, filter_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		search.Name, search.Text, filterJSON, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert saved search %q: %w", search.Name, mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	search.ID = id
	search.CreatedAt = now
	search.UpdatedAt = now
	return nil
}

// Update replaces the text and filter of an existing search.
func (s *Store) Update(search *Search) error {
	if err := validate(search); err != nil {
		return err
	}
	filterJSON, err := encodeFilter(search.Filter)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	result, err := s.db.Exec(`
		UPDATE saved_searches SET text = ?, filter_json = ?, updated_at = ?
		WHERE name = ?`,
		search.Text, filterJSON, now, search.Name,
	)
	if err != nil {
		return fmt.Errorf("update saved search %q: %w", search.Name, mapSQLiteError(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("update saved search %q: %w", search.Name, ErrNotFound)
	}
	search.UpdatedAt = now
	return nil
}

const selectColumns = `id, name, text, filter_json, created_at, updated_at, last_run_at, run_count`

type scanner interface {
	Scan(dest ...any) error
}

func scanSearch(row scanner) (*Search, error) {
	var (
		s          Search
		filterJSON string
		lastRun    sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Text, &filterJSON, &s.CreatedAt, &s.UpdatedAt, &lastRun, &s.RunCount); err != nil {
		return nil, err
	}
	if filterJSON != "" {
		var f filter.Filter
		if err := json.Unmarshal([]byte(filterJSON), &f); err != nil {
			return nil, fmt.Errorf("decode filter for %q: %w", s.Name, err)
		}
		s.Filter = &f
	}
	if lastRun.Valid {
		t := lastRun.Time
		s.LastRunAt = &t
	}
	return &s, nil
}

// Get retrieves a saved search by name.
// Returns ErrNotFound if it does not exist.
func (s *Store) Get(name string) (*Search, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM saved_searches WHERE name = ?`, name)
	search, err := scanSearch(row)
	if err != nil {
		return nil, fmt.Errorf("get saved search %q: %w", name, mapSQLiteError(err))
	}
	return search, nil
}

// List returns all saved searches ordered by name.
func (s *Store) List() ([]*Search, error) {
	rows, err := s.db.Query(`SELECT ` + selectColumns + ` FROM saved_searches ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Search
	for rows.Next() {
		search, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		out = append(out, search)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	return out, nil
}

// Delete removes a saved search by name.
// Returns ErrNotFound if it does not exist.
func (s *Store) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM saved_searches WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete saved search %q: %w", name, mapSQLiteError(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("delete saved search %q: %w", name, ErrNotFound)
	}
	return nil
}

// MarkRun records that a saved search was executed.
func (s *Store) MarkRun(name string) error {
	result, err := s.db.Exec(`
		UPDATE saved_searches SET last_run_at = ?, run_count = run_count + 1
		WHERE name = ?`, s.now().UTC(), name)
	if err != nil {
		return fmt.Errorf("mark saved search %q run: %w", name, mapSQLiteError(err))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("mark saved search %q run: %w", name, ErrNotFound)
	}
	return nil
}
