// Package driver orchestrates the front-end packages for the CLI:
// load a file, run the lexer and the document builder, format,
// convert, and scan directories in parallel.
package driver

import (
	"antext/internal/diag"
	"antext/internal/lexer"
	"antext/internal/source"
	"antext/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

func Tokenize(path string) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	// Токенизация: собираем все токены до EOF
	lx := lexer.New(file)
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
	}, nil
}

// loadBag wraps a load error into a diagnostic so directory scans can
// report broken files alongside syntax errors.
func loadBag(maxDiagnostics int, err error) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "failed to load file: " + err.Error(),
		Primary:  source.Span{},
	})
	return bag
}
