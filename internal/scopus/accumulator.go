// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// initialRows caps the table's preallocation. Scopus often reports far
// more results than it will actually page out.
const initialRows = 200

// FetchStats summarizes one Fetch call.
type FetchStats struct {
	Requested        int `json:"requested" yaml:"requested"`
	Requests         int `json:"requests" yaml:"requests"`
	Records          int `json:"records" yaml:"records"`
	Rows             int `json:"rows" yaml:"rows"`
	DroppedNoAuthors int `json:"dropped_no_authors" yaml:"dropped_no_authors"`
	DroppedNoYear    int `json:"dropped_no_year,omitempty" yaml:"dropped_no_year,omitempty"`
	// Exhausted is true when Scopus stopped returning entries before
	// Requested was reached.
	Exhausted bool `json:"exhausted" yaml:"exhausted"`
}

// Accumulator pages through a result set and normalizes every entry. One
// Accumulator runs one fetch at a time.
type Accumulator struct {
	exec       Executor
	strictYear bool
	log        zerolog.Logger
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithStrictYear controls whether a record without a four-digit year
// aborts the fetch (true, the default) or is dropped (false).
func WithStrictYear(strict bool) Option {
	return func(a *Accumulator) { a.strictYear = strict }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Accumulator) { a.log = log }
}

// NewAccumulator returns an Accumulator driving exec.
func NewAccumulator(exec Executor, opts ...Option) *Accumulator {
	a := &Accumulator{
		exec:       exec,
		strictYear: true,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch retrieves up to total records for query and returns them as a
// table in retrieval order.
//
// The offset advances by one for every record Scopus returns, whether or
// not the record becomes a row. The loop stops when the offset reaches
// total, when a response has no entry key, or when a page is empty.
// Records without authors are dropped; any other normalization failure
// aborts the fetch.
func (a *Accumulator) Fetch(ctx context.Context, query string, total int) (*types.Table, FetchStats, error) {
	stats := FetchStats{Requested: total}
	if strings.TrimSpace(query) == "" {
		return nil, stats, ErrEmptyQuery
	}
	if total <= 0 {
		return nil, stats, ErrNothingToFetch
	}

	scoped := FieldScope(query)
	table := types.NewTable(min(total, initialRows))

	offset := 0
	for offset < total {
		resp, err := a.exec.Search(ctx, scoped, offset)
		if err != nil {
			return nil, stats, fmt.Errorf("fetching offset %d: %w", offset, err)
		}
		stats.Requests++

		records, ok := resp.Entries()
		if !ok || len(records) == 0 {
			a.log.Debug().
				Int("offset", offset).
				Str("body", truncateBody(resp.Raw())).
				Msg("response has no entries")
			stats.Exhausted = true
			break
		}

		for _, rec := range records {
			stats.Records++
			row, err := Normalize(rec)
			switch {
			case err == nil:
				table.Append(row)
			case errors.Is(err, ErrNoAuthors):
				stats.DroppedNoAuthors++
			case errors.Is(err, ErrYearNotFound) && !a.strictYear:
				stats.DroppedNoYear++
			default:
				return nil, stats, fmt.Errorf("record at offset %d: %w", offset, err)
			}
			offset++
		}
	}

	stats.Rows = table.Len()
	a.log.Info().
		Int("requested", stats.Requested).
		Int("requests", stats.Requests).
		Int("rows", stats.Rows).
		Int("dropped", stats.DroppedNoAuthors+stats.DroppedNoYear).
		Bool("exhausted", stats.Exhausted).
		Msg("fetch complete")
	return table, stats, nil
}

// truncateBody shortens a response body for logging.
func truncateBody(raw string) string {
	limit := 512
	if len(raw) <= limit {
		return raw
	}
	for limit > 0 && !utf8.RuneStart(raw[limit]) {
		limit--
	}
	return raw[:limit] + "..."
}
