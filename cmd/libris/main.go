// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the libris CLI: search, browse and
// export a catalog of political philosophy, and extract bibliographic
// records from uploaded reading lists.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/libris/internal/librarian"
	"github.com/pdiddy/libris/internal/logging"
	"github.com/pdiddy/libris/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the libris CLI.
var rootCmd = &cobra.Command{
	Use:   "libris",
	Short: "Search and extend a catalog of political philosophy",
	Long: `libris manages a bibliographic catalog of works in political philosophy,
from Confucius to the present. The catalog is a JSON file regenerated from
the built-in collection whenever it is missing.

Search it by keyword, with typo tolerance or through related concepts;
browse it by author, theme, period and date; extract candidate entries
from syllabi and reading lists (PDF, DOCX, XLSX, CSV, TSV, text); and
export results as BibTeX, CSV, JSON, Markdown, XLSX, CSL-YAML or Parquet.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./libris.yaml or ~/.config/libris/libris.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "catalog file (overrides catalog.path)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error")

	_ = viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	setDefaults(viper.GetViper(), types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("libris")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "libris"))
		}
	}

	viper.SetEnvPrefix("LIBRIS")
	viper.SetEnvKeyReplacer(replacer())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// replacer maps nested keys to environment names: search.max_results is
// LIBRIS_SEARCH_MAX_RESULTS.
func replacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// setDefaults registers every key so that environment variables and
// flags are seen by Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("search.mode", string(d.Search.Mode))
	v.SetDefault("search.max_results", d.Search.MaxResults)
	v.SetDefault("search.fuzzy_threshold", d.Search.FuzzyThreshold)
	v.SetDefault("search.concepts_file", d.Search.ConceptsFile)
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL)
	v.SetDefault("extract.min_confidence", d.Extract.MinConfidence)
	v.SetDefault("convert.backend", string(d.Convert.Backend))
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// loadConfig returns the effective configuration: defaults, then the
// config file, then LIBRIS_* environment variables, then flags.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostic logger on stderr.
func newLogger(cfg types.Config) zerolog.Logger {
	return logging.New(cfg.Log, os.Stderr)
}

// openLibrarian loads configuration and the catalog for a command.
func openLibrarian(ctx context.Context, opts ...librarian.Option) (*librarian.Librarian, types.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, cfg, err
	}
	l, err := librarian.Open(ctx, cfg, newLogger(cfg), opts...)
	if err != nil {
		return nil, cfg, err
	}
	return l, cfg, nil
}

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
