// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes a result table as CSV, JSON, YAML, CSL-YAML, or
// a human-readable table, and saves whole fetch runs as YAML files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// ParseFormat validates a format name. Empty means CSV.
func ParseFormat(s string) (types.OutputFormat, error) {
	f := types.OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return types.FormatCSV, nil
	case types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatCSL, types.FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unsupported format %q: use csv, json, yaml, csl, or table", s)
}

// Write encodes table to w in the given format.
func Write(w io.Writer, format types.OutputFormat, table *types.Table) error {
	switch format {
	case types.FormatCSV, "":
		return WriteCSV(w, table)
	case types.FormatJSON:
		return WriteJSON(w, table)
	case types.FormatYAML:
		return WriteYAML(w, table)
	case types.FormatCSL:
		return WriteCSL(w, table)
	case types.FormatTable:
		FormatTable(w, table)
		return nil
	}
	return fmt.Errorf("unsupported format %q", format)
}

// WriteCSV writes a header with the seven column names followed by one
// record per row.
func WriteCSV(w io.Writer, table *types.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range table.Rows() {
		if err := cw.Write(Record(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record returns r's fields in column order.
func Record(r types.Row) []string {
	return []string{
		r.Authors,
		r.Title,
		r.Year,
		strconv.Itoa(r.CitedBy),
		r.Affiliations,
		r.AuthorKeywords,
		r.SourceTitle,
	}
}

// WriteJSON writes the rows as an indented JSON array.
func WriteJSON(w io.Writer, table *types.Table) error {
	rows := table.Rows()
	if rows == nil {
		rows = []types.Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes the rows as a YAML list.
func WriteYAML(w io.Writer, table *types.Table) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	return enc.Encode(table.Rows())
}
