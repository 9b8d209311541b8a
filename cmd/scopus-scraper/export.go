// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scopus-scraper/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <run.yaml>",
	Short: "Re-export a saved run in another format",
	Long: `Export reads a run file written by "fetch --save" and writes its rows
in the requested format. No requests are sent to Scopus.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, flagBindings{
		"output.format": "format",
		"output.path":   "output",
	})
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return err
	}

	rf, err := export.ReadRunFile(args[0])
	if err != nil {
		return err
	}
	logger.Debug().
		Str("query", rf.Query).
		Int("rows", len(rf.Rows)).
		Time("fetched", rf.Summary.Timestamp).
		Msg("loaded run file")

	if err := writeOutput(cmd.OutOrStdout(), cfg.Output.Path, format, rf.Table()); err != nil {
		return fmt.Errorf("exporting %s: %w", args[0], err)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "output format: csv, json, yaml, csl, table (default: csv)")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}
