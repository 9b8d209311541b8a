// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FullRecord(t *testing.T) {
	row, err := Normalize(ParseRecord(entryIRL))
	require.NoError(t, err)

	assert.Equal(t, "Smith J.,Rossi M.", row.Authors)
	assert.Equal(t, "Inverse reinforcement learning for smart grids", row.Title)
	assert.Equal(t, "2020", row.Year)
	assert.Equal(t, 12, row.CitedBy)
	assert.Equal(t, "University of Toronto,Politecnico di Milano; DEIB", row.Affiliations)
	assert.Equal(t, "inverse RL,smart grid,control", row.AuthorKeywords)
	assert.Equal(t, "IEEE Transactions on Smart Grid", row.SourceTitle)
}

func TestNormalize_AffiliationCommaStaysOneToken(t *testing.T) {
	row, err := Normalize(ParseRecord(entryIRL))
	require.NoError(t, err)

	parts := strings.Split(row.Affiliations, ",")
	require.Len(t, parts, 2)
	assert.Equal(t, "Politecnico di Milano; DEIB", parts[1])
}

func TestNormalize_OptionalFieldsDefaultEmpty(t *testing.T) {
	row, err := Normalize(ParseRecord(entryNoAffiliation))
	require.NoError(t, err)
	assert.Equal(t, "", row.Affiliations)
	assert.Equal(t, "", row.AuthorKeywords)
	assert.Equal(t, "2004", row.Year)
	assert.Equal(t, "Abbeel P.,Ng A.Y.", row.Authors)
}

func TestNormalize_NullOptionalFields(t *testing.T) {
	row, err := Normalize(ParseRecord(entryNumericCitedBy))
	require.NoError(t, err)
	assert.Equal(t, 42, row.CitedBy)
	assert.Equal(t, "2008", row.Year)
	assert.Empty(t, row.Affiliations)
	assert.Empty(t, row.AuthorKeywords)
}

func TestNormalize_NoAuthors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"field absent", entryNoAuthors},
		{"null", `{"author": null, "dc:title": "x"}`},
		{"empty list", `{"author": [], "dc:title": "x"}`},
		{"author without name", `{"author": [{"authname": "A."}, {"authid": "9"}], "dc:title": "x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(ParseRecord(tt.raw))
			assert.ErrorIs(t, err, ErrNoAuthors)
		})
	}
}

func TestNormalize_AffiliationWithoutNameDefaultsEmpty(t *testing.T) {
	raw := `{
	  "author": [{"authname": "Lee K."}],
	  "dc:title": "T",
	  "prism:publicationName": "S",
	  "prism:coverDisplayDate": "2019",
	  "citedby-count": "1",
	  "affiliation": [{"affilname": "MIT"}, {"affiliation-city": "Nowhere"}]
	}`
	row, err := Normalize(ParseRecord(raw))
	require.NoError(t, err)
	assert.Equal(t, "", row.Affiliations)
}

func TestNormalize_RequiredFields(t *testing.T) {
	base := map[string]string{
		"dc:title":               `"T"`,
		"prism:publicationName":  `"S"`,
		"prism:coverDisplayDate": `"2019"`,
		"citedby-count":          `"1"`,
	}
	for missing := range base {
		t.Run(missing, func(t *testing.T) {
			var fields []string
			fields = append(fields, `"author": [{"authname": "Lee K."}]`)
			for k, v := range base {
				if k != missing {
					fields = append(fields, `"`+k+`": `+v)
				}
			}
			_, err := Normalize(ParseRecord("{" + strings.Join(fields, ",") + "}"))
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), missing)
		})
	}
}

func TestNormalize_MalformedCitedBy(t *testing.T) {
	raw := `{
	  "author": [{"authname": "Lee K."}],
	  "dc:title": "T",
	  "prism:publicationName": "S",
	  "prism:coverDisplayDate": "2019",
	  "citedby-count": "many"
	}`
	_, err := Normalize(ParseRecord(raw))
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestNormalize_YearNotFound(t *testing.T) {
	raw := `{
	  "author": [{"authname": "Lee K."}],
	  "dc:title": "T",
	  "prism:publicationName": "S",
	  "prism:coverDisplayDate": "Spring issue",
	  "citedby-count": "1"
	}`
	_, err := Normalize(ParseRecord(raw))
	assert.ErrorIs(t, err, ErrYearNotFound)
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		date    string
		want    string
		wantErr bool
	}{
		{"2020-03-15", "2020", false},
		{"15 March 2020", "2020", false},
		{"March-April 1999", "1999", false},
		{"2018 2019", "2018", false},
		{"12345", "1234", false},
		{"n.d.", "", true},
		{"", "", true},
		{"99", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := ExtractYear(tt.date)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrYearNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinKeywords(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"foo | bar|baz ", "foo,bar,baz"},
		{"single", "single"},
		{"  padded  ", "padded"},
		{"", ""},
		{"a||b", "a,,b"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinKeywords(tt.raw))
		})
	}
}
