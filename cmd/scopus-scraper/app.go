// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scopus-scraper/internal/credentials"
	"github.com/pdiddy/scopus-scraper/internal/export"
	"github.com/pdiddy/scopus-scraper/internal/history"
	"github.com/pdiddy/scopus-scraper/internal/scopus"
	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// flagBindings maps viper keys to the flag names of one command. They are
// bound when that command runs, so commands sharing a flag name do not
// override each other's bindings.
type flagBindings map[string]string

// loadConfig binds the command's flags and decodes the merged settings.
func loadConfig(cmd *cobra.Command, bindings flagBindings) (types.Config, error) {
	for key, name := range bindings {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if disabled, _ := cmd.Flags().GetBool("no-history"); disabled {
		cfg.History.Enabled = false
	}
	return cfg, nil
}

// queryFromArgs joins positional arguments into one query, falling back to
// the configured default.
func queryFromArgs(args []string, cfg types.Config) string {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q
	}
	return cfg.Scopus.Query
}

// newClient loads the API key and builds a Scopus client. Credential
// problems surface here, before any request is sent.
func newClient(cfg types.Config) (*scopus.Client, error) {
	creds, err := credentials.Load(cfg.Scopus.CredentialsFile)
	if err != nil {
		return nil, err
	}
	logger.Debug().Stringer("credentials", creds).Msg("loaded API key")
	return scopus.NewClient(cfg.Scopus, creds.APIKey, logger), nil
}

// recorder is the part of the history store used by count and fetch.
type recorder interface {
	RecordProbe(ctx context.Context, query string, total int) (history.Entry, error)
	RecordFetch(ctx context.Context, query string, total, rows, dropped int, output string) (history.Entry, error)
	LastTotal(ctx context.Context, query string) (int, bool, error)
}

// noHistory discards everything.
type noHistory struct{}

func (noHistory) RecordProbe(context.Context, string, int) (history.Entry, error) {
	return history.Entry{}, nil
}

func (noHistory) RecordFetch(context.Context, string, int, int, int, string) (history.Entry, error) {
	return history.Entry{}, nil
}

func (noHistory) LastTotal(context.Context, string) (int, bool, error) { return 0, false, nil }

// openHistory opens the history database, or returns a recorder that
// discards entries when history is disabled. History failures are logged
// and never stop a query.
func openHistory(cfg types.HistoryConfig) (recorder, func()) {
	if !cfg.Enabled {
		return noHistory{}, func() {}
	}
	store, err := history.Open(cfg.DBPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.DBPath).Msg("history disabled")
		return noHistory{}, func() {}
	}
	return store, func() { store.Close() }
}

// writeOutput exports table to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, format types.OutputFormat, table *types.Table) error {
	if path == "" {
		return export.Write(w, format, table)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := export.Write(f, format, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
