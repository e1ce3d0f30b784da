package driver

import (
	"bytes"

	"antext/internal/doc"
	"antext/internal/format"
)

// FormatResult carries the canonical bytes next to the parse that
// produced them.
type FormatResult struct {
	Parse  *ParseResult
	Output []byte // nil при ошибках разбора или сериализации
	Err    error  // ошибка сериализации (format.EncodeError)
}

// Format parses a file and renders its canonical form.
func Format(path string, opts ParseOpts) (*FormatResult, error) {
	pr, err := Parse(path, opts)
	if err != nil {
		return nil, err
	}
	res := &FormatResult{Parse: pr}
	if !pr.Ok {
		return res, nil
	}
	res.Output, res.Err = format.Marshal(pr.Doc)
	return res, nil
}

// RunFmtCheck parses the file, renders the canonical form, re-parses it
// and verifies that the document survived intact and the rendering is
// already stable. Returns (ok, report string).
func RunFmtCheck(path string, opts ParseOpts) (bool, string, error) {
	first, err := Format(path, opts)
	if err != nil {
		return false, "", err
	}
	if !first.Parse.Ok {
		return false, "fmt-check: parse failed", nil
	}
	if first.Err != nil {
		return false, "fmt-check: " + first.Err.Error(), nil
	}

	second := ParseBytes(path, first.Output, opts)
	if !second.Ok {
		return false, "fmt-check: canonical form does not re-parse", nil
	}
	if !first.Parse.Doc.Equal(second.Doc) {
		return false, "fmt-check: document changed after round-trip", nil
	}
	out2, err := format.Marshal(second.Doc)
	if err != nil {
		return false, "fmt-check: " + err.Error(), nil
	}
	if !bytes.Equal(first.Output, out2) {
		return false, "fmt-check: canonical form is not stable", nil
	}

	if bytes.Equal(first.Output, first.Parse.File.Content) {
		return true, "fmt-check: OK", nil
	}
	return true, "fmt-check: OK (needs reformat)", nil
}

// Canonical renders an already built document; thin wrapper kept so
// callers outside the driver do not import format directly.
func Canonical(d *doc.Document) ([]byte, error) {
	return format.Marshal(d)
}
