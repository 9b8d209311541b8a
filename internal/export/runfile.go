// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// RunFile is the on-disk record of one fetch: the query, the settings
// that shaped it, the rows, and a summary. A saved run can be exported
// again later without re-querying Scopus.
type RunFile struct {
	Query   string        `yaml:"query"`
	Config  RunFileConfig `yaml:"config"`
	Rows    []types.Row   `yaml:"rows"`
	Summary RunSummary    `yaml:"summary"`
}

// RunFileConfig stores the settings that produced the rows.
type RunFileConfig struct {
	Endpoint   string `yaml:"endpoint"`
	PageSize   int    `yaml:"page_size,omitempty"`
	StrictYear bool   `yaml:"strict_year"`
}

// RunSummary stores result counts and a timestamp.
type RunSummary struct {
	TotalResults int       `yaml:"total_results"`
	Requested    int       `yaml:"requested"`
	Rows         int       `yaml:"rows"`
	Dropped      int       `yaml:"dropped"`
	Exhausted    bool      `yaml:"exhausted"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// Table returns the saved rows as a table.
func (rf *RunFile) Table() *types.Table {
	return types.TableOf(rf.Rows...)
}

// WriteRunFile saves rf to path as YAML. A zero timestamp is set to now.
func WriteRunFile(path string, rf RunFile) error {
	if rf.Summary.Timestamp.IsZero() {
		rf.Summary.Timestamp = time.Now().UTC()
	}
	rf.Summary.Rows = len(rf.Rows)

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling run file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadRunFile loads a previously saved run file from disk.
func ReadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing run file: %w", err)
	}
	if rf.Query == "" {
		return nil, fmt.Errorf("parsing run file %s: no query recorded", path)
	}
	return &rf, nil
}
