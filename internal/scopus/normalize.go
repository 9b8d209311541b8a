// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// Scopus entry keys read during normalization.
const (
	keyAuthors      = "author"
	keyAuthorName   = "authname"
	keyTitle        = "dc:title"
	keyCoverDate    = "prism:coverDisplayDate"
	keyCitedBy      = "citedby-count"
	keySourceTitle  = "prism:publicationName"
	keyAffiliations = "affiliation"
	keyAffilName    = "affilname"
	keyAuthKeywords = "authkeywords"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Record is one raw entry from search-results.entry.
type Record struct {
	res gjson.Result
}

// ParseRecord wraps a single JSON entry.
func ParseRecord(raw string) Record {
	return Record{res: gjson.Parse(raw)}
}

// lookup returns the value at key. JSON null counts as absent.
func (r Record) lookup(key string) (gjson.Result, bool) {
	v := r.res.Get(gjson.Escape(key))
	if !v.Exists() || v.Type == gjson.Null {
		return gjson.Result{}, false
	}
	return v, true
}

// lookupString returns the string at key, or def when it is absent.
func (r Record) lookupString(key, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	return v.String()
}

// Normalize reduces a record to a row.
//
// A record without author names yields ErrNoAuthors. Missing title,
// cover date, cited-by count, or source title yields ErrMissingField.
// A cover date without a four-digit run yields ErrYearNotFound. Missing
// affiliations and author keywords become empty strings.
func Normalize(rec Record) (types.Row, error) {
	names, ok := authorNames(rec)
	if !ok {
		return types.Row{}, ErrNoAuthors
	}

	title, err := required(rec, keyTitle)
	if err != nil {
		return types.Row{}, err
	}
	coverDate, err := required(rec, keyCoverDate)
	if err != nil {
		return types.Row{}, err
	}
	year, err := ExtractYear(coverDate)
	if err != nil {
		return types.Row{}, err
	}
	sourceTitle, err := required(rec, keySourceTitle)
	if err != nil {
		return types.Row{}, err
	}
	citedBy, err := citedByCount(rec)
	if err != nil {
		return types.Row{}, err
	}

	return types.Row{
		Authors:        strings.Join(names, ","),
		Title:          title,
		Year:           year,
		CitedBy:        citedBy,
		Affiliations:   affiliations(rec),
		AuthorKeywords: JoinKeywords(rec.lookupString(keyAuthKeywords, "")),
		SourceTitle:    sourceTitle,
	}, nil
}

func required(rec Record, key string) (string, error) {
	v, ok := rec.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, key)
	}
	return v.String(), nil
}

// authorNames returns author[].authname in order. ok is false when the
// list is absent, empty, or any author lacks a name. An empty list drops
// the record rather than producing a row with a blank Authors cell, so
// every exported row has at least one author.
func authorNames(rec Record) ([]string, bool) {
	list, ok := rec.lookup(keyAuthors)
	if !ok {
		return nil, false
	}
	authors := list.Array()
	if len(authors) == 0 {
		return nil, false
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		name := a.Get(keyAuthorName)
		if !name.Exists() || name.Type == gjson.Null {
			return nil, false
		}
		names = append(names, name.String())
	}
	return names, true
}

// affiliations returns affiliation[].affilname joined by commas, with
// commas inside each name replaced by semicolons. Any gap yields "".
func affiliations(rec Record) string {
	list, ok := rec.lookup(keyAffiliations)
	if !ok {
		return ""
	}
	var names []string
	for _, a := range list.Array() {
		name := a.Get(keyAffilName)
		if !name.Exists() || name.Type == gjson.Null {
			return ""
		}
		names = append(names, strings.ReplaceAll(name.String(), ",", ";"))
	}
	return strings.Join(names, ",")
}

func citedByCount(rec Record) (int, error) {
	v, ok := rec.lookup(keyCitedBy)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, keyCitedBy)
	}
	if v.Type == gjson.Number {
		return int(v.Int()), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.String()))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedField, keyCitedBy, v.String())
	}
	return n, nil
}

// ExtractYear returns the first run of four digits in date.
func ExtractYear(date string) (string, error) {
	year := yearPattern.FindString(date)
	if year == "" {
		return "", fmt.Errorf("%w: %q", ErrYearNotFound, date)
	}
	return year, nil
}

// JoinKeywords converts Scopus's pipe-delimited author keywords into a
// comma-joined list with each keyword trimmed.
func JoinKeywords(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ",")
}
