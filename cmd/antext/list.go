package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed caption files",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().String("db", "", "catalog database path (default: user cache dir)")
	listCmd.Flags().Bool("broken", false, "show only broken files")
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	entries, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	brokenOnly, _ := cmd.Flags().GetBool("broken")

	headers := []string{"Artist", "Title", "Lines", "Syllables", "Duration", "Speakers", "Status", "Path"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft}

	var rows [][]string
	for _, e := range entries {
		if brokenOnly && !e.Broken {
			continue
		}
		status := "ok"
		if e.Broken {
			status = "broken"
		}
		rows = append(rows, []string{
			e.Artist,
			e.Title,
			strconv.Itoa(e.LineCount),
			strconv.Itoa(e.SyllableCount),
			formatDuration(e.DurationMs),
			strings.Join(e.Speakers, ", "),
			status,
			e.Path,
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "catalog is empty, run \"antext index\" first")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	return nil
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	sec := ms / 1000
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
