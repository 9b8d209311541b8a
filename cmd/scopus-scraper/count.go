// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count [query]",
	Short: "Report how many documents match a query",
	Long: `Count sends a single request for the query and prints the total number
of matching documents without downloading them. When the same query was
probed before, the previous total is shown as well.`,
	RunE: runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
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
	return p.count(cmd.Context(), queryFromArgs(args, cfg))
}

func (p *pipeline) count(ctx context.Context, query string) error {
	previous, seen, err := p.hist.LastTotal(ctx, query)
	if err != nil {
		logger.Warn().Err(err).Msg("reading history")
	}

	total, err := p.probe(ctx, query)
	if err != nil {
		return err
	}

	if seen && previous != total {
		fmt.Fprintf(p.out, "The query returned %d results (previously %d).\n", total, previous)
		return nil
	}
	fmt.Fprintf(p.out, "The query returned %d results.\n", total)
	return nil
}

func init() {
	rootCmd.AddCommand(countCmd)
}
