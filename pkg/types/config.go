package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the Scopus API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scopus-scraper/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ScopusConfig holds settings for the Scopus search client and the
// result accumulator.
type ScopusConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the Scopus Search API URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// CredentialsFile is the JSON file holding {"api-key": "..."}.
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file" mapstructure:"credentials_file"`

	// Query is used when no query is given on the command line.
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// PageSize is sent as the count parameter. Zero lets the API pick.
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// StrictYear aborts a fetch when a record has no four-digit year.
	// When false such records are dropped and counted.
	StrictYear bool `json:"strict_year" yaml:"strict_year" mapstructure:"strict_year"`
}

// OutputFormat selects the export format.
type OutputFormat string

const (
	FormatCSV   OutputFormat = "csv"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatCSL   OutputFormat = "csl"
	FormatTable OutputFormat = "table"
)

// OutputConfig holds export settings.
type OutputConfig struct {
	// Format is one of csv, json, yaml, csl, table.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Path is the output file. Empty writes to stdout.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// HistoryConfig holds settings for the query history database.
type HistoryConfig struct {
	// Enabled turns history recording on.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// DBPath is the SQLite database file.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every section of the config file.
type Config struct {
	Scopus  ScopusConfig  `json:"scopus" yaml:"scopus" mapstructure:"scopus"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LoggingConfig `json:"log" yaml:"log" mapstructure:"log"`
}
