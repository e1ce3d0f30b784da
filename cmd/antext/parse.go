package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"antext/internal/diagfmt"
	"antext/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.antx",
	Short: "Parse a caption file and report diagnostics",
	Long:  `Parse builds the document model for a caption file and prints what it found`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	parseCmd.Flags().Bool("stats", false, "print line/syllable/duration aggregates")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showStats, _ := cmd.Flags().GetBool("stats")

	roster, err := manifestRoster(filepath.Dir(filePath))
	if err != nil {
		return err
	}

	result, err := driver.Parse(filePath, driver.ParseOpts{
		MaxDiagnostics: maxDiagnostics(cmd),
		Roster:         roster,
	})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	result.Bag.Sort()
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   true,
			ShowNotes: true,
		})
	case "json":
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if !result.Ok {
		return fmt.Errorf("%s has errors", filePath)
	}

	if showStats && !quiet(cmd) {
		d := result.Doc
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lines, %d syllables, %s\n",
			filePath, len(d.Lines), d.SyllableCount(), d.Duration())
		if speakers := d.Speakers(); len(speakers) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "speakers: %v\n", speakers)
		}
	}
	return nil
}
