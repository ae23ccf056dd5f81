// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/libris/internal/export"
	"github.com/pdiddy/libris/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process <files...>",
	Short: "Extract bibliographic entries from documents",
	Long: `Process reads syllabi, reading lists and reference lists and extracts
candidate bibliographic entries. Each candidate carries a confidence score;
weak candidates are flagged rather than dropped. Candidates already in the
catalog are reported as duplicates.

Candidates are never added to the catalog. Use --export to save them.

A file that cannot be read is reported and skipped; the remaining files
are still processed.`,
	Example: `  libris process syllabus.pdf readings.docx
  libris process list.csv --export bibtex
  libris process scan.pdf --backend markitdown --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("backend") {
		backend, _ := cmd.Flags().GetString("backend")
		viper.Set("convert.backend", backend)
	}
	if cmd.Flags().Changed("min-confidence") {
		v, _ := cmd.Flags().GetFloat64("min-confidence")
		viper.Set("extract.min_confidence", v)
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	l, _, err := openLibrarian(cmd.Context())
	if err != nil {
		return err
	}
	defer l.Close()

	out := cmd.OutOrStdout()
	progress := out
	if jsonOutput {
		progress = os.Stderr
	}

	reports, summary, err := l.ProcessBatch(cmd.Context(), args, progress)
	if err != nil {
		return err
	}

	if jsonOutput {
		if reports == nil {
			reports = []types.ProcessReport{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	} else {
		for _, rep := range reports {
			printReport(out, rep)
		}
	}
	fmt.Fprintf(progress, "\n%d processed, %d skipped, %d failed\n", summary.Processed, summary.Skipped, summary.Failed)

	if name, _ := cmd.Flags().GetString("export"); name != "" && len(reports) > 0 {
		f, err := export.ParseFormat(name)
		if err != nil {
			return err
		}
		path, err := l.ExportCandidates(reports, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "exported candidates to %s\n", path)
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed processing", summary.Failed)
	}
	return nil
}

// printReport writes one document's candidates and quality issues.
func printReport(w io.Writer, rep types.ProcessReport) {
	dup := make(map[string]string, len(rep.Duplicates))
	for _, d := range rep.Duplicates {
		dup[d.CandidateID] = d.CatalogID
	}

	fmt.Fprintf(w, "\n%s  (%s, %d entries, %d new)\n", rep.File, rep.Format, rep.EntriesFound(), len(rep.NewEntries()))
	for _, c := range rep.Candidates {
		var flags []string
		if c.LowConfidence {
			flags = append(flags, "low confidence")
		}
		if id, ok := dup[c.ID]; ok {
			flags = append(flags, "in catalog as "+id)
		}
		line := fmt.Sprintf("  %4d  %.2f  %s", c.Line, c.Confidence, c.Title)
		if len(c.Authors) > 0 {
			line += " / " + c.Author()
		}
		if c.Date != "" {
			line += " (" + c.Date + ")"
		}
		if len(flags) > 0 {
			line += "  [" + strings.Join(flags, "; ") + "]"
		}
		fmt.Fprintln(w, line)
	}
	if len(rep.ThemesDetected) > 0 {
		fmt.Fprintf(w, "  themes: %s\n", strings.Join(rep.ThemesDetected, ", "))
	}
	if rep.DateRange != nil {
		fmt.Fprintf(w, "  dates:  %s to %s\n", types.FormatYear(rep.DateRange.Start), types.FormatYear(rep.DateRange.End))
	}
	for _, issue := range rep.QualityIssues {
		fmt.Fprintf(w, "  warning: %s\n", issue)
	}
}

func init() {
	processCmd.Flags().String("backend", "", "PDF/DOCX reader: native or markitdown (default from convert.backend)")
	processCmd.Flags().Float64("min-confidence", 0, "flag candidates below this confidence (default from extract.min_confidence)")
	processCmd.Flags().String("export", "", "export candidates: bibtex, csv, json, markdown, xlsx, yaml, parquet")
	processCmd.Flags().Bool("json", false, "output processing reports as JSON")

	rootCmd.AddCommand(processCmd)
}
