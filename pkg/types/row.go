// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scopus-scraper.
// Row and Table carry normalized Scopus search results from the
// accumulator to the exporters; the config structs mirror the YAML
// config file.
package types

// Column names of the exported table, in output order.
const (
	ColAuthors        = "Authors"
	ColTitle          = "Title"
	ColYear           = "Year"
	ColCitedBy        = "Cited By"
	ColAffiliations   = "Affiliations"
	ColAuthorKeywords = "Author Keywords"
	ColSourceTitle    = "Source title"
)

// Columns lists the fixed schema of every exported table.
var Columns = []string{
	ColAuthors,
	ColTitle,
	ColYear,
	ColCitedBy,
	ColAffiliations,
	ColAuthorKeywords,
	ColSourceTitle,
}

// Row is one publication reduced to the fixed seven-column schema.
type Row struct {
	// Authors is the comma-joined list of author names in source order.
	Authors string `json:"authors" yaml:"authors"`

	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Year is the four-digit year taken from the cover display date.
	Year string `json:"year" yaml:"year"`

	// CitedBy is the citation count reported by Scopus.
	CitedBy int `json:"cited_by" yaml:"cited_by"`

	// Affiliations is the comma-joined list of affiliation names. Commas
	// inside a single name are replaced by semicolons.
	Affiliations string `json:"affiliations" yaml:"affiliations"`

	// AuthorKeywords is the comma-joined list of trimmed author keywords.
	AuthorKeywords string `json:"author_keywords" yaml:"author_keywords"`

	// SourceTitle is the journal, proceedings, or book title.
	SourceTitle string `json:"source_title" yaml:"source_title"`
}

// Table is an append-only sequence of rows kept in retrieval order.
// Duplicates are not detected.
type Table struct {
	rows []Row
}

// NewTable returns an empty table with room for n rows.
func NewTable(n int) *Table {
	if n < 0 {
		n = 0
	}
	return &Table{rows: make([]Row, 0, n)}
}

// TableOf builds a table from rows, keeping their order.
func TableOf(rows ...Row) *Table {
	t := NewTable(len(rows))
	t.rows = append(t.rows, rows...)
	return t
}

// Append adds r to the end of the table.
func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Rows returns a copy of the rows in insertion order.
func (t *Table) Rows() []Row {
	if t == nil {
		return nil
	}
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}
