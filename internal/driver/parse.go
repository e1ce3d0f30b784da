package driver

import (
	"antext/internal/diag"
	"antext/internal/doc"
	"antext/internal/lexer"
	"antext/internal/parser"
	"antext/internal/source"
)

// ParseOpts настраивает одиночный прогон разбора.
type ParseOpts struct {
	MaxDiagnostics int
	// Roster приходит из манифеста проекта и дополняет [meta/roster/...].
	Roster []string
}

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *doc.Document // nil, если разбор прерван ошибкой
	Bag     *diag.Bag
	Ok      bool
}

func Parse(path string, opts ParseOpts) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(fs, fileID, opts), nil
}

// ParseBytes parses in-memory content, e.g. stdin or converter output.
func ParseBytes(name string, content []byte, opts ParseOpts) *ParseResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseFile(fs, fileID, opts)
}

func parseFile(fs *source.FileSet, fileID source.FileID, opts ParseOpts) *ParseResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := parser.ParseDocument(lexer.New(file), parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Roster:   opts.Roster,
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Doc:     res.Doc,
		Bag:     bag,
		Ok:      res.Ok,
	}
}
