package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"antext/internal/diagfmt"
	"antext/internal/driver"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] input output",
	Short: "Convert between caption formats",
	Long: `Convert reads the input in the format inferred from its extension
(antx, lrc, srt, vtt) and writes the output in the format inferred from
the output path. Use --from/--to to override the inference and
--charset to transcode legacy inputs (e.g. gbk, shift_jis).`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "input format, overrides the input extension")
	convertCmd.Flags().String("to", "", "output format, overrides the output extension")
	convertCmd.Flags().String("charset", "", "IANA charset of the input (foreign formats only)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	charset, _ := cmd.Flags().GetString("charset")

	roster, err := manifestRoster(filepath.Dir(inPath))
	if err != nil {
		return err
	}

	res, err := driver.Convert(inPath, outPath, driver.ConvertOpts{
		From:    from,
		To:      to,
		Charset: charset,
		Parse: driver.ParseOpts{
			MaxDiagnostics: maxDiagnostics(cmd),
			Roster:         roster,
		},
	})
	if res != nil && res.Parse != nil && res.Parse.Bag.Len() > 0 {
		res.Parse.Bag.Sort()
		diagfmt.Pretty(os.Stderr, res.Parse.Bag, res.Parse.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
	}
	if err != nil {
		return err
	}

	if outPath == "-" {
		_, err = cmd.OutOrStdout().Write(res.Output)
		return err
	}
	if err := os.WriteFile(outPath, res.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d lines)\n", outPath, len(res.Doc.Lines))
	}
	return nil
}
