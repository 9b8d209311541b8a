// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

func sampleTable() *types.Table {
	return types.TableOf(
		types.Row{
			Authors:        "Smith J.,Rossi M.",
			Title:          "Inverse reinforcement learning for smart grids",
			Year:           "2020",
			CitedBy:        12,
			Affiliations:   "University of Toronto,Politecnico di Milano; DEIB",
			AuthorKeywords: "inverse RL,smart grid,control",
			SourceTitle:    "IEEE Transactions on Smart Grid",
		},
		types.Row{
			Authors:     "Abbeel P.,Ng A.Y.",
			Title:       `Apprenticeship learning, "IRL" edition`,
			Year:        "2004",
			CitedBy:     3000,
			SourceTitle: "ICML",
		},
	)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    types.OutputFormat
		wantErr bool
	}{
		{"", types.FormatCSV, false},
		{"csv", types.FormatCSV, false},
		{"JSON", types.FormatJSON, false},
		{" yaml ", types.FormatYAML, false},
		{"csl", types.FormatCSL, false},
		{"table", types.FormatTable, false},
		{"xlsx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Authors", "Title", "Year", "Cited By", "Affiliations", "Author Keywords", "Source title"}, records[0])
	for _, rec := range records {
		assert.Len(t, rec, 7)
	}
	assert.Equal(t, "University of Toronto,Politecnico di Milano; DEIB", records[1][4])
	assert.Equal(t, `Apprenticeship learning, "IRL" edition`, records[2][1])
	assert.Equal(t, "3000", records[2][3])
	assert.Equal(t, "", records[2][4])
}

func TestWriteCSV_EmptyTableWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, types.NewTable(0)))
	assert.Equal(t, "Authors,Title,Year,Cited By,Affiliations,Author Keywords,Source title\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTable()))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Smith J.,Rossi M.", rows[0]["authors"])
	assert.Equal(t, float64(12), rows[0]["cited_by"])

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, types.NewTable(0)))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleTable()))

	var rows []types.Row
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, sampleTable().Rows(), rows)
}

func TestWrite_Dispatch(t *testing.T) {
	for _, f := range []types.OutputFormat{types.FormatCSV, types.FormatJSON, types.FormatYAML, types.FormatCSL, types.FormatTable} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, f, sampleTable()))
			assert.NotEmpty(t, buf.String())
		})
	}

	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xlsx", sampleTable()))
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(&buf, sampleTable())
	out := buf.String()

	assert.Contains(t, out, "Smith J. et al.")
	assert.Contains(t, out, "2 results")
	assert.True(t, strings.HasPrefix(out, "#"))

	buf.Reset()
	FormatTable(&buf, types.NewTable(0))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer title here", 10, "a longe..."},
		{"Zürich Straße Ökonomie", 10, "Zürich ..."},
		{"日本語のタイトルです", 6, "日本語..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestFormatTable_MultiByteTitle(t *testing.T) {
	title := strings.Repeat("逆強化学習", 20)
	var buf bytes.Buffer
	FormatTable(&buf, types.TableOf(types.Row{Authors: "Müller K.", Title: title, Year: "2020", SourceTitle: "Économie"}))

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Müller K.")
	assert.NotContains(t, out, title)
}
