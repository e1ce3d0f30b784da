// Package testkit holds invariant checkers shared by tests and fuzz
// targets.
package testkit

import (
	"bytes"
	"fmt"

	"antext/internal/diag"
	"antext/internal/doc"
	"antext/internal/format"
	"antext/internal/lexer"
	"antext/internal/parser"
	"antext/internal/source"
)

// CheckDocumentInvariants runs the timing and structure invariants the
// builder is supposed to guarantee:
// 1) line end is never before line start
// 2) syllable starts are non-decreasing within a line and stay inside the line window
// 3) line starts are non-decreasing across the document
// 4) no line is completely empty
func CheckDocumentInvariants(d *doc.Document) error {
	if d == nil {
		return fmt.Errorf("nil document")
	}
	var prevLineStart doc.Stamp
	for i := range d.Lines {
		line := &d.Lines[i]
		if len(line.Syllables) == 0 && line.Speaker == "" && len(line.Extra) == 0 &&
			!line.Start.Valid && !line.End.Valid {
			return fmt.Errorf("line %d is completely empty", i)
		}
		if line.Start.Valid && line.End.Valid && line.End.Millis < line.Start.Millis {
			return fmt.Errorf("line %d: end %v before start %v", i, line.End, line.Start)
		}
		if line.Start.Valid && prevLineStart.Valid && line.Start.Millis < prevLineStart.Millis {
			return fmt.Errorf("line %d: start %v before previous line start %v", i, line.Start, prevLineStart)
		}
		if line.Start.Valid {
			prevLineStart = line.Start
		}

		prev := line.Start
		for j, syl := range line.Syllables {
			if syl.Start.Valid {
				if prev.Valid && syl.Start.Millis < prev.Millis {
					return fmt.Errorf("line %d syllable %d: start %v before %v", i, j, syl.Start, prev)
				}
				prev = syl.Start
			}
			if syl.End.Valid && syl.Start.Valid && syl.End.Millis < syl.Start.Millis {
				return fmt.Errorf("line %d syllable %d: end %v before start %v", i, j, syl.End, syl.Start)
			}
			if line.End.Valid {
				if syl.Start.Valid && syl.Start.Millis > line.End.Millis {
					return fmt.Errorf("line %d syllable %d: start %v after line end %v", i, j, syl.Start, line.End)
				}
				if syl.End.Valid && syl.End.Millis > line.End.Millis {
					return fmt.Errorf("line %d syllable %d: end %v after line end %v", i, j, syl.End, line.End)
				}
			}
		}
	}
	return nil
}

// CheckRoundTrip verifies the serialization contract: the canonical
// form re-parses into a structurally equal document, and a second
// rendering is byte-identical to the first.
func CheckRoundTrip(d *doc.Document) error {
	first, err := format.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("roundtrip.antx", first))
	bag := diag.NewBag(16)
	res := parser.ParseDocument(lexer.New(file), parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Roster:   d.Speakers(), // каноническая форма не обязана нести roster
	})
	if !res.Ok {
		return fmt.Errorf("canonical form does not re-parse: %v", bag.Items())
	}
	if !d.Equal(res.Doc) {
		return fmt.Errorf("document changed after round-trip")
	}

	second, err := format.Marshal(res.Doc)
	if err != nil {
		return fmt.Errorf("re-marshal: %w", err)
	}
	if !bytes.Equal(first, second) {
		return fmt.Errorf("canonical form is not stable:\n first: %q\nsecond: %q", first, second)
	}
	return nil
}
