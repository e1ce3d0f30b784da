package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"antext/internal/catalog"
	"antext/internal/driver"
)

var indexCmd = &cobra.Command{
	Use:   "index [flags] [dir]",
	Short: "Index caption files into the local catalog",
	Long: `Index parses every *.antx file under the directory and records its
metadata (title, artist, speakers, timing aggregates) in a local SQLite
catalog, so that "antext list" works without re-parsing the library.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("db", "", "catalog database path (default: user cache dir)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	dir, err := resolveCheckDir(args)
	if err != nil {
		return err
	}

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	roster, err := manifestRoster(dir)
	if err != nil {
		return err
	}

	summary, err := catalog.IndexDir(cmd.Context(), store, dir, driver.ParseOpts{
		MaxDiagnostics: maxDiagnostics(cmd),
		Roster:         roster,
	})
	if err != nil {
		return err
	}

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "indexed %d file(s), %d broken\n", summary.Indexed, summary.Broken)
	}
	return nil
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		var err error
		dbPath, err = catalog.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return catalog.Open(dbPath)
}
