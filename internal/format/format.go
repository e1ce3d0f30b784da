package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"antext/internal/diag"
	"antext/internal/directive"
	"antext/internal/doc"
)

// EncodeError reports content the wire format cannot carry: bytes
// outside UTF-8, control characters, or reserved characters in
// positions where the escape directive is not available.
type EncodeError struct {
	Code diag.Code
	Line int // 1-based номер строки документа; 0 — уровень файла
	Msg  string
}

func (e *EncodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Code.ID(), e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

// Marshal renders the document to canonical bytes. The document is
// treated as read-only. A validly built document always serializes;
// only content outside the declared alphabet fails.
func Marshal(d *doc.Document) ([]byte, error) {
	w := writer{buf: make([]byte, 0, 256)}

	// метаданные — отсортированно, для байтовой стабильности
	keys := make([]string, 0, len(d.Meta))
	for k := range d.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := checkField(k, 0); err != nil {
			return nil, err
		}
		if err := checkField(d.Meta[k], 0); err != nil {
			return nil, err
		}
		w.directive("meta", k, d.Meta[k])
		w.newline()
	}

	for _, raw := range d.Extra {
		if err := w.rawDirective(raw, 0); err != nil {
			return nil, err
		}
		w.newline()
	}

	for i := range d.Lines {
		if err := w.line(&d.Lines[i], i+1); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

type writer struct {
	buf []byte
}

func (w *writer) newline() {
	w.buf = append(w.buf, '\n')
}

func (w *writer) directive(fields ...string) {
	w.buf = append(w.buf, '[')
	for i, f := range fields {
		if i > 0 {
			w.buf = append(w.buf, '/')
		}
		w.buf = append(w.buf, f...)
	}
	w.buf = append(w.buf, ']')
}

func (w *writer) rawDirective(raw doc.RawDirective, lineIdx int) error {
	for _, f := range raw.Fields {
		if err := checkField(f, lineIdx); err != nil {
			return err
		}
	}
	w.directive(raw.Fields...)
	return nil
}

func (w *writer) line(l *doc.Line, idx int) error {
	// Extra не в счёт: без слогов/тайминга/спикера опаковые директивы
	// при повторном разборе стали бы файловыми
	if len(l.Syllables) == 0 && !l.Start.Valid && l.Speaker == "" {
		return &EncodeError{Code: diag.FmtEncodingError, Line: idx,
			Msg: "empty line has no wire representation"}
	}
	if l.End.Valid && !l.Start.Valid {
		return &EncodeError{Code: diag.FmtEncodingError, Line: idx,
			Msg: "line has end timing without start"}
	}

	if l.Start.Valid {
		w.timing(l.Start, l.End)
	}
	if l.Speaker != "" {
		if err := checkField(l.Speaker, idx); err != nil {
			return err
		}
		w.directive("spk", l.Speaker)
	}
	for i := range l.Syllables {
		s := &l.Syllables[i]
		if i > 0 {
			w.buf = append(w.buf, '/')
		}
		if err := w.text(s.Text, idx); err != nil {
			return err
		}
		if s.End.Valid && !s.Start.Valid {
			return &EncodeError{Code: diag.FmtEncodingError, Line: idx,
				Msg: fmt.Sprintf("syllable %d has end timing without start", i+1)}
		}
		if s.Start.Valid {
			w.timing(s.Start, s.End)
		}
	}

	// неизвестные директивы — в хвосте строки: при повторном разборе
	// строка к этому моменту уже открыта, и они остаются строковыми
	for _, raw := range l.Extra {
		if err := w.rawDirective(raw, idx); err != nil {
			return err
		}
	}

	w.newline()
	return nil
}

func (w *writer) timing(start, end doc.Stamp) {
	if end.Valid {
		w.directive("t", millis(start), millis(end))
	} else {
		w.directive("t", millis(start))
	}
}

// text пишет литеральный текст, экранируя зарезервированные символы.
func (w *writer) text(s string, lineIdx int) error {
	if !utf8.ValidString(s) {
		return &EncodeError{Code: diag.FmtEncodingError, Line: lineIdx,
			Msg: "content is not valid UTF-8"}
	}
	for _, r := range s {
		if name, ok := directive.EscapeName(r); ok {
			w.directive("esc", name)
			continue
		}
		if err := checkRune(r, lineIdx); err != nil {
			return err
		}
		w.buf = utf8.AppendRune(w.buf, r)
	}
	return nil
}

func millis(s doc.Stamp) string {
	return strconv.FormatUint(uint64(s.Millis), 10)
}

// checkField валидирует поле директивы: внутри полей экранирование
// недоступно, поэтому зарезервированные символы недопустимы вовсе.
func checkField(s string, lineIdx int) error {
	if strings.ContainsAny(s, "[]/") {
		return &EncodeError{Code: diag.FmtEncodingError, Line: lineIdx,
			Msg: fmt.Sprintf("directive field %q contains a reserved character", s)}
	}
	if !utf8.ValidString(s) {
		return &EncodeError{Code: diag.FmtEncodingError, Line: lineIdx,
			Msg: "content is not valid UTF-8"}
	}
	for _, r := range s {
		if err := checkRune(r, lineIdx); err != nil {
			return err
		}
	}
	return nil
}

func checkRune(r rune, lineIdx int) error {
	if r < 0x20 || r == 0x7f {
		return &EncodeError{Code: diag.FmtEncodingError, Line: lineIdx,
			Msg: fmt.Sprintf("content contains control character %q", r)}
	}
	return nil
}
