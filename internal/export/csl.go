package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Keyword        string    `yaml:"keyword,omitempty"`
	Note           string    `yaml:"note,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes rows as a CSL-YAML list to w.
func WriteCSL(w io.Writer, table *types.Table) error {
	rows := table.Rows()
	items := make([]CSLItem, len(rows))
	for i, r := range rows {
		items[i] = toCSLItem(i, r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a row to a CSLItem. Rows carry no Scopus ID, so
// items are numbered in table order.
func toCSLItem(i int, r types.Row) CSLItem {
	item := CSLItem{
		ID:             fmt.Sprintf("scopus-%d", i+1),
		Type:           "article-journal",
		Title:          r.Title,
		ContainerTitle: r.SourceTitle,
		Keyword:        r.AuthorKeywords,
	}
	if r.CitedBy > 0 {
		item.Note = fmt.Sprintf("Cited by %d", r.CitedBy)
	}

	for _, a := range strings.Split(r.Authors, ",") {
		if name := parseAuthorName(a); name != (CSLName{}) {
			item.Author = append(item.Author, name)
		}
	}

	if y, err := strconv.Atoi(r.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	return item
}

// parseAuthorName splits a Scopus indexed name ("van der Berg J.K.") into
// CSL family/given parts. The last token holds the initials; everything
// before it is the family name. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Family: name[:idx],
		Given:  name[idx+1:],
	}
}
