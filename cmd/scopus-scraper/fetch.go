// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scopus-scraper/internal/export"
	"github.com/pdiddy/scopus-scraper/internal/scopus"
	"github.com/pdiddy/scopus-scraper/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [query]",
	Short: "Count the matches for a query, confirm, then download them",
	Long: `Fetch probes Scopus for the number of documents matching the query,
asks for confirmation, and then pages through the results. Each record
becomes one row with Authors, Title, Year, Cited By, Affiliations,
Author Keywords and Source title. Records without authors are skipped.

The query is searched in titles, abstracts and keywords. Without a query
argument the configured scopus.query is used.

Rows are written as CSV to stdout unless --output or --format say
otherwise. Use --save to keep the run as YAML for a later export.`,
	RunE: runFetch,
}

// fetchRequest holds the per-invocation options of fetch.
type fetchRequest struct {
	Query     string
	MaxItems  int
	AssumeYes bool
	SavePath  string
}

// pipeline runs probe, confirmation, fetch and export against one executor.
// Exported rows go to out; the prompt and status lines go to prompt so they
// never mix with redirected output.
type pipeline struct {
	exec   scopus.Executor
	hist   recorder
	cfg    types.Config
	in     io.Reader
	out    io.Writer
	prompt io.Writer
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, flagBindings{
		"output.format":      "format",
		"output.path":        "output",
		"scopus.page_size":   "page-size",
		"scopus.strict_year": "strict-year",
	})
	if err != nil {
		return err
	}

	maxItems, _ := cmd.Flags().GetInt("max-items")
	assumeYes, _ := cmd.Flags().GetBool("yes")
	savePath, _ := cmd.Flags().GetString("save")

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	hist, closeHistory := openHistory(cfg.History)
	defer closeHistory()

	p := &pipeline{
		exec:   client,
		hist:   hist,
		cfg:    cfg,
		in:     cmd.InOrStdin(),
		out:    cmd.OutOrStdout(),
		prompt: cmd.ErrOrStderr(),
	}
	return p.fetch(cmd.Context(), fetchRequest{
		Query:     queryFromArgs(args, cfg),
		MaxItems:  maxItems,
		AssumeYes: assumeYes,
		SavePath:  savePath,
	})
}

// fetch probes the result count, asks for confirmation, accumulates rows
// and writes them out. Declining the prompt is not an error.
func (p *pipeline) fetch(ctx context.Context, req fetchRequest) error {
	if req.MaxItems < 0 {
		return fmt.Errorf("--max-items must not be negative, got %d", req.MaxItems)
	}
	format, err := export.ParseFormat(string(p.cfg.Output.Format))
	if err != nil {
		return err
	}

	total, err := p.probe(ctx, req.Query)
	if err != nil {
		return err
	}
	if total == 0 {
		fmt.Fprintln(p.prompt, "The query returned 0 results.")
		return nil
	}

	if !req.AssumeYes {
		ok, err := confirm(p.in, p.prompt, total)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(p.prompt, "Aborting...")
			return nil
		}
	}

	target := total
	if req.MaxItems > 0 && req.MaxItems < total {
		target = req.MaxItems
	}

	acc := scopus.NewAccumulator(p.exec,
		scopus.WithStrictYear(p.cfg.Scopus.StrictYear),
		scopus.WithLogger(logger),
	)
	table, stats, err := acc.Fetch(ctx, req.Query, target)
	if err != nil {
		return p.explain(fmt.Errorf("fetching %d results: %w", target, err))
	}

	if err := writeOutput(p.out, p.cfg.Output.Path, format, table); err != nil {
		return err
	}

	dropped := stats.DroppedNoAuthors + stats.DroppedNoYear
	if req.SavePath != "" {
		rf := export.RunFile{
			Query: req.Query,
			Config: export.RunFileConfig{
				Endpoint:   p.cfg.Scopus.Endpoint,
				PageSize:   p.cfg.Scopus.PageSize,
				StrictYear: p.cfg.Scopus.StrictYear,
			},
			Rows: table.Rows(),
			Summary: export.RunSummary{
				TotalResults: total,
				Requested:    target,
				Dropped:      dropped,
				Exhausted:    stats.Exhausted,
			},
		}
		if err := export.WriteRunFile(req.SavePath, rf); err != nil {
			return err
		}
		logger.Info().Str("path", req.SavePath).Msg("saved run")
	}

	if _, err := p.hist.RecordFetch(ctx, req.Query, total, table.Len(), dropped, p.cfg.Output.Path); err != nil {
		logger.Warn().Err(err).Msg("recording fetch in history")
	}
	return nil
}

// probe runs the count probe and records it.
func (p *pipeline) probe(ctx context.Context, query string) (int, error) {
	total, err := scopus.Count(ctx, p.exec, query)
	if err != nil {
		return 0, p.explain(err)
	}
	if _, err := p.hist.RecordProbe(ctx, query, total); err != nil {
		logger.Warn().Err(err).Msg("recording probe in history")
	}
	return total, nil
}

// explain appends a hint to auth and quota errors.
func (p *pipeline) explain(err error) error {
	switch {
	case scopus.IsAuthError(err):
		return fmt.Errorf("%w (check the api-key in %s)", err, p.cfg.Scopus.CredentialsFile)
	case scopus.IsRateLimited(err):
		return fmt.Errorf("%w (the API key's quota is used up; wait for it to reset)", err)
	}
	return err
}

// confirm asks whether to download total results and reads one line from
// in. Any answer containing y or Y counts as yes.
func confirm(in io.Reader, out io.Writer, total int) (bool, error) {
	fmt.Fprintf(out, "The query returned %d results. Do you want to continue? [y/n] ", total)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return strings.ContainsAny(line, "yY"), nil
}

func init() {
	fetchCmd.Flags().StringP("format", "f", "", "output format: csv, json, yaml, csl, table (default: csv)")
	fetchCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	fetchCmd.Flags().Int("page-size", 0, "results per request (default: API default)")
	fetchCmd.Flags().Bool("strict-year", true, "abort when a record has no four-digit year; false drops it")
	fetchCmd.Flags().Int("max-items", 0, "fetch at most this many results (default: all)")
	fetchCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	fetchCmd.Flags().String("save", "", "save the run (query, settings, rows) to this YAML file")

	rootCmd.AddCommand(fetchCmd)
}
