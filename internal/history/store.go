// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records every count probe and completed fetch in a
// local SQLite database so past queries and their result counts can be
// reviewed later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Kind distinguishes probe entries from fetch entries.
type Kind string

const (
	KindProbe Kind = "probe"
	KindFetch Kind = "fetch"
)

// Entry is one recorded query.
type Entry struct {
	ID           int64     `json:"id" yaml:"id"`
	Kind         Kind      `json:"kind" yaml:"kind"`
	Query        string    `json:"query" yaml:"query"`
	TotalResults int       `json:"total_results" yaml:"total_results"`
	Rows         int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Dropped      int       `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Output       string    `json:"output,omitempty" yaml:"output,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			query_text TEXT NOT NULL,
			total_results INTEGER NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			dropped INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_queries_query ON queries(query_text)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordProbe stores the result count reported for query.
func (s *Store) RecordProbe(ctx context.Context, query string, total int) (Entry, error) {
	return s.insert(ctx, Entry{Kind: KindProbe, Query: query, TotalResults: total})
}

// RecordFetch stores a completed fetch.
func (s *Store) RecordFetch(ctx context.Context, query string, total, rows, dropped int, output string) (Entry, error) {
	return s.insert(ctx, Entry{
		Kind:         KindFetch,
		Query:        query,
		TotalResults: total,
		Rows:         rows,
		Dropped:      dropped,
		Output:       output,
	})
}

func (s *Store) insert(ctx context.Context, e Entry) (Entry, error) {
	e.CreatedAt = s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (kind, query_text, total_results, row_count, dropped, output, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(e.Kind), e.Query, e.TotalResults, e.Rows, e.Dropped, e.Output,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("recording %s: %w", e.Kind, err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("recording %s: %w", e.Kind, err)
	}
	return e, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Query restricts results to one exact query string.
	Query string
	// Kind restricts results to probes or fetches.
	Kind Kind
	// Limit caps the number of entries. Zero means no limit.
	Limit int
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	q := `SELECT id, kind, query_text, total_results, row_count, dropped, output, created_at
		FROM queries WHERE 1=1`
	var args []any
	if opts.Query != "" {
		q += ` AND query_text = ?`
		args = append(args, opts.Query)
	}
	if opts.Kind != "" {
		q += ` AND kind = ?`
		args = append(args, string(opts.Kind))
	}
	q += ` ORDER BY id DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, created string
		if err := rows.Scan(&e.ID, &kind, &e.Query, &e.TotalResults, &e.Rows, &e.Dropped, &e.Output, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Kind = Kind(kind)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastTotal returns the most recent probed total for query. ok is false
// when the query was never probed.
func (s *Store) LastTotal(ctx context.Context, query string) (total int, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT total_results FROM queries WHERE query_text = ? AND kind = ? ORDER BY id DESC LIMIT 1`,
		query, string(KindProbe),
	).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("looking up last total: %w", err)
	}
	return total, true, nil
}
