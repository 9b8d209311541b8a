// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scopus-scraper CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scopus-scraper/internal/logging"
	"github.com/pdiddy/scopus-scraper/internal/scopus"
	"github.com/pdiddy/scopus-scraper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from the log.* settings before any subcommand runs.
var logger = zerolog.Nop()

// rootCmd is the base command for the scopus-scraper CLI.
var rootCmd = &cobra.Command{
	Use:   "scopus-scraper",
	Short: "Fetch bibliographic records from the Scopus Search API",
	Long: `scopus-scraper runs a query against the Elsevier Scopus Search API,
reports how many documents match, and after confirmation pages through
the results into a table of authors, titles, years, citation counts,
affiliations, keywords and source titles.

The API key is read from config.json ({"api-key": "..."}) or from the
SCOPUS_API_KEY environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(types.LoggingConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		}, cmd.ErrOrStderr())
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug().Str("path", used).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scopus-scraper.yaml or ~/.config/scopus-scraper/scopus-scraper.yaml)")
	rootCmd.PersistentFlags().String("credentials", "", "API key file (default: config.json)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not record queries in the history database")

	viper.BindPFlag("scopus.credentials_file", rootCmd.PersistentFlags().Lookup("credentials"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scopus.endpoint", scopus.DefaultEndpoint)
	v.SetDefault("scopus.credentials_file", "config.json")
	v.SetDefault("scopus.query", scopus.DefaultQuery)
	v.SetDefault("scopus.page_size", 0)
	v.SetDefault("scopus.timeout", "0s")
	v.SetDefault("scopus.user_agent", scopus.DefaultUserAgent)
	v.SetDefault("scopus.strict_year", true)
	v.SetDefault("output.format", string(types.FormatCSV))
	v.SetDefault("output.path", "")
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.db_path", filepath.Join(".scopus-scraper", "history.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scopus-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scopus-scraper"))
		}
	}

	viper.SetEnvPrefix("SCOPUS_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
			os.Exit(1)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
