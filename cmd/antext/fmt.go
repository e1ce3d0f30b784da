package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"antext/internal/diagfmt"
	"antext/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] file.antx...",
	Short: "Rewrite caption files in canonical form",
	Long: `Fmt renders each file in canonical form: metadata sorted and one
directive layout per construct, so that formatting never causes diffs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "list files that are not canonical, do not rewrite")
	fmtCmd.Flags().Bool("stdout", false, "print the canonical form instead of rewriting")
}

func runFmt(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	var dirty int
	for _, filePath := range args {
		roster, err := manifestRoster(filepath.Dir(filePath))
		if err != nil {
			return err
		}
		opts := driver.ParseOpts{MaxDiagnostics: maxDiagnostics(cmd), Roster: roster}

		res, err := driver.Format(filePath, opts)
		if err != nil {
			return err
		}
		if !res.Parse.Ok {
			res.Parse.Bag.Sort()
			diagfmt.Pretty(os.Stderr, res.Parse.Bag, res.Parse.FileSet, diagfmt.PrettyOpts{
				Color:   useColor(cmd, os.Stderr),
				Context: true,
			})
			return fmt.Errorf("%s has errors", filePath)
		}
		if res.Err != nil {
			return fmt.Errorf("%s: %w", filePath, res.Err)
		}

		if toStdout {
			if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
				return err
			}
			continue
		}

		if bytes.Equal(res.Output, res.Parse.File.Content) {
			continue
		}
		dirty++
		if check {
			fmt.Fprintln(cmd.OutOrStdout(), filePath)
			continue
		}
		if err := os.WriteFile(filePath, res.Output, 0o644); err != nil {
			return fmt.Errorf("rewrite %s: %w", filePath, err)
		}
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", filePath)
		}
	}

	if check && dirty > 0 {
		return fmt.Errorf("%d file(s) are not canonical", dirty)
	}
	return nil
}
