package directive

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"antext/internal/diag"
	"antext/internal/lexer"
	"antext/internal/source"
	"antext/internal/token"
)

// ParseGroup reads one bracketed directive from the token stream. The
// opening LBracket must already be consumed; open is that token.
//
// On success returns the typed directive and true. On failure reports
// through r and returns false; the lexer is left right after the
// offending token (fail-fast, вызывающий всё равно прекращает разбор).
func ParseGroup(lx *lexer.Lexer, open token.Token, r diag.Reporter) (Directive, bool) {
	fields := []string{""}
	spans := []source.Span{open.Span}
	last := open.Span

	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.RBracket:
			return classify(fields, spans, open.Span.Cover(tok.Span), r)

		case token.Slash:
			fields = append(fields, "")
			spans = append(spans, tok.Span)
			last = tok.Span

		case token.Text:
			if cr, bad := ControlRune(tok.Text); bad {
				diag.ReportError(r, diag.SynMalformedField, tok.Span,
					fmt.Sprintf("control character %q in directive field", cr)).
					Emit()
				return Directive{}, false
			}
			fields[len(fields)-1] += tok.Text
			spans[len(spans)-1] = spans[len(spans)-1].Cover(tok.Span)
			last = tok.Span

		case token.LBracket:
			// вложенность запрещена: '[' внутри открытой директивы
			diag.ReportError(r, diag.SynMalformedField, tok.Span,
				"nested '[' inside directive").
				WithNote(open.Span, "directive opened here").
				Emit()
			return Directive{}, false

		case token.Newline, token.EOF:
			diag.ReportError(r, diag.SynUnterminatedBracket, open.Span.Cover(last),
				"directive is not closed before end of line").
				Emit()
			return Directive{}, false

		default:
			diag.ReportError(r, diag.SynMalformedField, tok.Span,
				fmt.Sprintf("unexpected %s inside directive", tok.Kind)).
				Emit()
			return Directive{}, false
		}
	}
}

// classify разбирает собранные поля по ключевому слову (первое поле).
func classify(fields []string, spans []source.Span, whole source.Span, r diag.Reporter) (Directive, bool) {
	keyword := fields[0]

	switch keyword {
	case "meta":
		if len(fields) != 3 {
			reportArity(r, whole, "meta", "key and value", len(fields)-1)
			return Directive{}, false
		}
		if fields[1] == "" {
			diag.ReportError(r, diag.SynMalformedField, spans[1], "empty metadata key").Emit()
			return Directive{}, false
		}
		return Directive{Kind: Meta, Span: whole, Key: fields[1], Value: fields[2]}, true

	case "t":
		if len(fields) < 2 || len(fields) > 3 {
			reportArity(r, whole, "t", "1 or 2 timestamps", len(fields)-1)
			return Directive{}, false
		}
		start, ok := parseMillis(fields[1], spans[1], r)
		if !ok {
			return Directive{}, false
		}
		d := Directive{Kind: Timing, Span: whole, Start: start}
		if len(fields) == 3 {
			end, ok := parseMillis(fields[2], spans[2], r)
			if !ok {
				return Directive{}, false
			}
			d.End = end
			d.HasEnd = true
		}
		return d, true

	case "spk":
		if len(fields) != 2 {
			reportArity(r, whole, "spk", "a speaker id", len(fields)-1)
			return Directive{}, false
		}
		if fields[1] == "" {
			diag.ReportError(r, diag.SynMalformedField, spans[1], "empty speaker id").Emit()
			return Directive{}, false
		}
		return Directive{Kind: Speaker, Span: whole, ID: fields[1]}, true

	case "esc":
		if len(fields) != 2 {
			reportArity(r, whole, "esc", "an escape name", len(fields)-1)
			return Directive{}, false
		}
		lit, ok := escapeNames[fields[1]]
		if !ok {
			diag.ReportError(r, diag.SynMalformedField, spans[1],
				fmt.Sprintf("unknown escape %q (want lbr, rbr or sol)", fields[1])).
				Emit()
			return Directive{}, false
		}
		return Directive{Kind: Escape, Span: whole, Literal: lit}, true

	case "":
		diag.ReportError(r, diag.SynMalformedField, whole, "empty directive keyword").Emit()
		return Directive{}, false

	default:
		// неизвестное ключевое слово — прозрачно пропускаем
		raw := make([]string, len(fields))
		copy(raw, fields)
		return Directive{Kind: Unknown, Span: whole, Raw: raw}, true
	}
}

// parseMillis парсит неотрицательное целое в миллисекундах.
func parseMillis(field string, sp source.Span, r diag.Reporter) (uint32, bool) {
	v, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		diag.ReportError(r, diag.SynInvalidTimestamp, sp,
			fmt.Sprintf("timestamp %q is not a non-negative integer", field)).
			Emit()
		return 0, false
	}
	ms, err := safecast.Conv[uint32](v)
	if err != nil {
		diag.ReportError(r, diag.SynInvalidTimestamp, sp,
			fmt.Sprintf("timestamp %q is out of range", field)).
			Emit()
		return 0, false
	}
	return ms, true
}

func reportArity(r diag.Reporter, sp source.Span, keyword, want string, got int) {
	diag.ReportError(r, diag.SynMalformedField, sp,
		fmt.Sprintf("directive %q expects %s, got %d field(s)", keyword, want, got)).
		Emit()
}
