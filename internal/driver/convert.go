package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"antext/internal/doc"
	"antext/internal/format"
	"antext/internal/interop"
)

// FileKind classifies a conversion endpoint: the native format or one
// of the interop formats.
type FileKind struct {
	Native  bool
	Foreign interop.Format
}

func (k FileKind) String() string {
	if k.Native {
		return "antx"
	}
	return k.Foreign.String()
}

// DetectKind resolves a format from an explicit name or, when name is
// empty, from the file extension.
func DetectKind(path, name string) (FileKind, error) {
	probe := name
	if probe == "" {
		probe = filepath.Ext(path)
	}
	if strings.EqualFold(strings.TrimPrefix(probe, "."), "antx") {
		return FileKind{Native: true}, nil
	}
	if f, ok := interop.FromName(probe); ok {
		return FileKind{Foreign: f}, nil
	}
	return FileKind{}, fmt.Errorf("cannot determine format of %q (use an explicit format name)", path)
}

// ConvertOpts настраивает конвертацию между форматами.
type ConvertOpts struct {
	From    string // имя формата; пусто — по расширению входа
	To      string // имя формата; пусто — по расширению выхода
	Charset string // IANA-кодировка входа, пусто — UTF-8
	Parse   ParseOpts
}

// ConvertResult reports one conversion. Diagnostics are only present
// when the input was native.
type ConvertResult struct {
	Doc    *doc.Document
	Output []byte
	Parse  *ParseResult // nil для иностранного входа
}

// Convert reads inPath, decodes it into the document model, and renders
// it in the format detected from outPath (or opts.To).
func Convert(inPath, outPath string, opts ConvertOpts) (*ConvertResult, error) {
	from, err := DetectKind(inPath, opts.From)
	if err != nil {
		return nil, err
	}
	to, err := DetectKind(outPath, opts.To)
	if err != nil {
		return nil, err
	}

	res := &ConvertResult{}
	if from.Native {
		pr, err := Parse(inPath, opts.Parse)
		if err != nil {
			return nil, err
		}
		res.Parse = pr
		if !pr.Ok {
			return res, fmt.Errorf("convert: %s has syntax errors", inPath)
		}
		res.Doc = pr.Doc
	} else {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return nil, err
		}
		data, err = interop.Decode(data, opts.Charset)
		if err != nil {
			return nil, err
		}
		res.Doc, err = interop.Import(from.Foreign, data)
		if err != nil {
			return nil, err
		}
	}

	if to.Native {
		res.Output, err = format.Marshal(res.Doc)
	} else {
		res.Output, err = interop.Export(to.Foreign, res.Doc)
	}
	if err != nil {
		return res, err
	}
	return res, nil
}
