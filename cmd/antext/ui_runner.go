package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"antext/internal/driver"
	"antext/internal/ui"
)

type checkOutcome struct {
	results []driver.CheckFileResult
	err     error
}

func runCheckWithUI(ctx context.Context, dir string, opts driver.CheckOpts) ([]driver.CheckFileResult, error) {
	files, err := listCaptionPaths(dir)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.CheckEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		results, err := driver.CheckDir(ctx, dir, opts, events)
		outcomeCh <- checkOutcome{results: results, err: err}
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// listCaptionPaths mirrors the walk CheckDir performs so the UI can
// show the queue before events start arriving.
func listCaptionPaths(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".antx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
