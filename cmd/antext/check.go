package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"antext/internal/diag"
	"antext/internal/diagfmt"
	"antext/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [dir]",
	Short: "Validate every caption file in a directory",
	Long: `Check parses all *.antx files under the directory (default: the
project captions dir, or the current directory) and reports broken
files. Results are cached by content hash.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("no-cache", false, "ignore and do not update the disk cache")
	checkCmd.Flags().Bool("no-ui", false, "plain output even on a terminal")
	checkCmd.Flags().Bool("short", false, "one line per diagnostic, without source context")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := resolveCheckDir(args)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	noUI, _ := cmd.Flags().GetBool("no-ui")
	short, _ := cmd.Flags().GetBool("short")

	roster, err := manifestRoster(dir)
	if err != nil {
		return err
	}

	opts := driver.CheckOpts{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
		Roster:         roster,
	}
	if !noCache {
		cache, err := driver.OpenDiskCache("antext")
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}

	var results []driver.CheckFileResult
	if !noUI && !quiet(cmd) && isTerminal(os.Stdout) {
		results, err = runCheckWithUI(cmd.Context(), dir, opts)
	} else {
		results, err = driver.CheckDir(cmd.Context(), dir, opts, nil)
	}
	if err != nil {
		return err
	}

	var broken int
	for i := range results {
		r := &results[i]
		if !r.Broken() {
			if !quiet(cmd) {
				fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (%d lines, %d syllables)\n",
					r.Path, r.Stats.Lines, r.Stats.Syllables)
			}
			continue
		}
		broken++
		fmt.Fprintf(cmd.OutOrStdout(), "err %s\n", r.Path)
		if r.Bag != nil {
			r.Bag.Sort()
			// FileSet разборов не сохраняется; перечитываем для контекста.
			pr, perr := driver.Parse(r.Path, driver.ParseOpts{MaxDiagnostics: opts.MaxDiagnostics, Roster: roster})
			if perr == nil {
				pr.Bag.Sort()
				if short {
					if out := diag.FormatShortDiagnostics(pr.Bag.Items(), pr.FileSet, true); out != "" {
						fmt.Fprintln(os.Stderr, out)
					}
				} else {
					diagfmt.Pretty(os.Stderr, pr.Bag, pr.FileSet, diagfmt.PrettyOpts{
						Color:   useColor(cmd, os.Stderr),
						Context: true,
					})
				}
			}
		}
	}

	if broken > 0 {
		return fmt.Errorf("%d of %d file(s) are broken", broken, len(results))
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s)\n", len(results))
	}
	return nil
}

func resolveCheckDir(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return "", err
	}
	if ok {
		return captionsDir(manifest), nil
	}
	return ".", nil
}
