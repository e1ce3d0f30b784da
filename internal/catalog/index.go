package catalog

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"antext/internal/driver"
)

// IndexSummary reports one IndexDir run.
type IndexSummary struct {
	Indexed int
	Broken  int
}

// IndexDir parses every *.antx file under dir and upserts it into the
// store. Broken files are indexed too, marked accordingly, so the
// catalog mirrors the library instead of silently shrinking.
func IndexDir(ctx context.Context, store *Store, dir string, opts driver.ParseOpts) (IndexSummary, error) {
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
		return IndexSummary{}, err
	}
	sort.Strings(files)

	var summary IndexSummary
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := driver.Parse(path, opts)
		if err != nil {
			return summary, err
		}

		entry := &Entry{
			Path:        path,
			ContentHash: HashString(res.File.Hash),
			Broken:      !res.Ok,
		}
		if res.Ok {
			entry.Title = res.Doc.Meta["title"]
			entry.Artist = res.Doc.Meta["artist"]
			entry.LineCount = len(res.Doc.Lines)
			entry.SyllableCount = res.Doc.SyllableCount()
			entry.DurationMs = int64(res.Doc.Duration().Millis)
			entry.Speakers = res.Doc.Speakers()
		} else {
			summary.Broken++
		}
		if err := store.Upsert(ctx, entry); err != nil {
			return summary, err
		}
		summary.Indexed++
	}
	return summary, nil
}
