// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/libris/internal/catalog"
	"github.com/pdiddy/libris/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	l, cfg, err := openLibrarian(cmd.Context())
	if err != nil {
		return err
	}
	defer l.Close()

	stats := l.Statistics()
	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	printStats(out, cfg.Catalog.Path, stats)
	return nil
}

func printStats(w io.Writer, path string, s catalog.Statistics) {
	fmt.Fprintf(w, "Catalog:  %s\n", path)
	fmt.Fprintf(w, "Entries:  %d\n", s.TotalEntries)
	fmt.Fprintf(w, "Authors:  %d\n", s.TotalAuthors)
	fmt.Fprintf(w, "Themes:   %d\n", s.TotalThemes)
	fmt.Fprintf(w, "Sources:  %d\n", s.Sources)
	if s.DateRange != nil {
		fmt.Fprintf(w, "Span:     %s to %s\n", types.FormatYear(s.DateRange.Start), types.FormatYear(s.DateRange.End))
	}
	fmt.Fprintln(w, "\nBy period:")
	for _, p := range types.Periods {
		if n := s.ByPeriod[p]; n > 0 {
			fmt.Fprintf(w, "  %-14s %3d\n", p, n)
		}
	}
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
