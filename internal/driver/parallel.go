package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"antext/internal/diag"
	"antext/internal/doc"
	"antext/internal/lexer"
	"antext/internal/parser"
	"antext/internal/source"
)

// CheckOpts настраивает параллельную проверку каталога.
type CheckOpts struct {
	MaxDiagnostics int
	Jobs           int
	Roster         []string
	Cache          *DiskCache // nil — без кеша
}

// CheckFileResult содержит результат проверки одного файла.
type CheckFileResult struct {
	Path   string    // Относительный путь к файлу
	Bag    *diag.Bag // Диагностики (nil при попадании в кеш)
	Cached bool
	Stats  FileStats

	// brokenCache: файл помечен сломанным в кеше; диагностик нет,
	// за ними нужен прогон без кеша.
	brokenCache bool
}

// Broken reports whether the file failed to load or parse.
func (r *CheckFileResult) Broken() bool {
	return r.brokenCache || (r.Bag != nil && r.Bag.HasErrors())
}

// listCaptionFiles возвращает отсортированный список всех *.antx файлов в директории
func listCaptionFiles(dir string) ([]string, error) {
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

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir проверяет все *.antx файлы в директории параллельно.
// События по мере обработки уходят в events (если не nil); канал
// закрывается перед возвратом.
func CheckDir(ctx context.Context, dir string, opts CheckOpts, events chan<- CheckEvent) ([]CheckFileResult, error) {
	if events != nil {
		defer close(events)
	}

	files, err := listCaptionFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты по уникальным индексам, мьютекс не нужен.
	results := make([]CheckFileResult, len(files))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = checkOne(path, opts)

			ev := CheckEvent{
				Path:   path,
				Index:  int(done.Add(1)),
				Total:  len(files),
				Broken: results[i].Broken(),
				Cached: results[i].Cached,
				Stats:  results[i].Stats,
			}
			if results[i].Bag != nil {
				ev.Errors = results[i].Bag.Len()
			}
			if events != nil {
				select {
				case events <- ev:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func checkOne(path string, opts CheckOpts) CheckFileResult {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return CheckFileResult{Path: path, Bag: loadBag(opts.MaxDiagnostics, err)}
	}
	file := fs.Get(fileID)

	if opts.Cache != nil {
		var payload DiskPayload
		if ok, _ := opts.Cache.Get(file.Hash, &payload); ok && payload.Schema == diskCacheSchemaVersion {
			return CheckFileResult{
				Path:        path,
				Cached:      true,
				Stats:       payload.Stats(),
				brokenCache: payload.Broken,
			}
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	pres := parser.ParseDocument(lexer.New(file), parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Roster:   opts.Roster,
	})

	res := CheckFileResult{Path: path, Bag: bag}
	if pres.Ok {
		res.Stats = statsOf(pres.Doc)
	}
	if opts.Cache != nil {
		payload := payloadOf(path, file, pres.Doc, !pres.Ok)
		_ = opts.Cache.Put(file.Hash, payload) // кеш — не повод ронять проверку
	}
	return res
}

func statsOf(d *doc.Document) FileStats {
	return FileStats{
		Lines:      len(d.Lines),
		Syllables:  d.SyllableCount(),
		DurationMs: d.Duration().Millis,
		Speakers:   d.Speakers(),
	}
}
