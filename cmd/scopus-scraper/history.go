// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scopus-scraper/internal/export"
	"github.com/pdiddy/scopus-scraper/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past count probes and fetches",
	Long: `History lists the queries recorded in the local history database,
newest first, with the number of results each one reported.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	kind, _ := cmd.Flags().GetString("kind")
	opts := history.ListOptions{Kind: history.Kind(kind)}
	opts.Query, _ = cmd.Flags().GetString("query")
	opts.Limit, _ = cmd.Flags().GetInt("limit")

	switch opts.Kind {
	case "", history.KindProbe, history.KindFetch:
	default:
		return fmt.Errorf("unsupported kind %q: use probe or fetch", kind)
	}

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryOutput(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistoryOutput(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-5s  %-19s  %8s  %6s  %s\n",
		"ID", "Kind", "When", "Results", "Rows", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		rows := "-"
		if e.Kind == history.KindFetch {
			rows = fmt.Sprintf("%d", e.Rows)
		}
		query := export.Truncate(strings.Join(strings.Fields(e.Query), " "), 50)
		fmt.Fprintf(w, "%-5d  %-5s  %-19s  %8d  %6s  %s\n",
			e.ID, e.Kind, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.TotalResults, rows, query)
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().String("query", "", "only show entries for this exact query")
	historyCmd.Flags().String("kind", "", "only show probe or fetch entries")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum entries to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}
