// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// FormatTable writes rows as a human-readable table to w.
func FormatTable(w io.Writer, table *types.Table) {
	rows := table.Rows()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-6s  %s\n",
		"#", "Title", "Authors", "Year", "Cites", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range rows {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-6d  %s\n",
			i+1, Truncate(r.Title, 60), formatAuthors(r.Authors), r.Year, r.CitedBy, Truncate(r.SourceTitle, 30))
	}

	fmt.Fprintf(w, "\n%d results\n", len(rows))
}

func formatAuthors(authors string) string {
	names := strings.Split(authors, ",")
	switch {
	case authors == "":
		return ""
	case len(names) == 1:
		return Truncate(names[0], 20)
	default:
		return Truncate(names[0], 14) + " et al."
	}
}

// Truncate shortens s to at most max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
