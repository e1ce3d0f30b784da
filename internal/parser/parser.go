// Package parser assembles the token stream into a doc.Document.
//
// The builder keeps a construction cursor (current line, current
// syllable) and folds directives into state transitions. It is
// fail-fast: the first error stops the build and no partial document
// escapes.
package parser

import (
	"fmt"
	"strings"

	"antext/internal/diag"
	"antext/internal/directive"
	"antext/internal/doc"
	"antext/internal/lexer"
	"antext/internal/source"
	"antext/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// Roster — дополнительный состав спикеров (из манифеста проекта).
	// Объединяется с [meta/roster/...] из самого файла.
	Roster []string
}

type Result struct {
	Doc *doc.Document
	Ok  bool
}

// ParseDocument — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseDocument(lx *lexer.Lexer, opts Options) Result {
	b := builder{
		lx:   lx,
		opts: opts,
		doc:  doc.New(),
	}
	if !b.run() {
		return Result{Ok: false}
	}
	return Result{Doc: b.doc, Ok: true}
}

// lineState — курсор построения: текущая строка и текущий слог.
type lineState struct {
	start, end doc.Stamp
	speaker    string
	hasSpeaker bool
	extra      []doc.RawDirective
	syllables  []doc.Syllable
	cur        strings.Builder
	curStart   doc.Stamp
	curEnd     doc.Stamp
	// contentBegun: появился ли литеральный текст; до этого момента
	// директивы t/spk относятся к строке, после — к текущему слогу
	contentBegun bool
	separated    bool // встречался ли '/' вне скобок
	span         source.Span
}

type builder struct {
	lx   *lexer.Lexer
	opts Options
	doc  *doc.Document

	line          *lineState
	prevLineStart doc.Stamp
}

func (b *builder) run() bool {
	for {
		tok := b.lx.Next()
		switch tok.Kind {
		case token.Text:
			if cr, bad := directive.ControlRune(tok.Text); bad {
				b.errorf(diag.SynMalformedField, tok.Span,
					"control character %q in content", cr)
				return false
			}
			b.openLine(tok.Span)
			b.line.cur.WriteString(tok.Text)
			b.line.contentBegun = true

		case token.Slash:
			if !b.closeSyllable(tok.Span) {
				return false
			}

		case token.LBracket:
			d, ok := directive.ParseGroup(b.lx, tok, b.opts.Reporter)
			if !ok {
				return false
			}
			if !b.apply(d) {
				return false
			}

		case token.RBracket:
			b.errorf(diag.SynMalformedField, tok.Span,
				"unescaped ']' in content (use [esc/rbr])")
			return false

		case token.Newline:
			if !b.closeLine() {
				return false
			}

		case token.EOF:
			return b.closeLine()

		default:
			b.errorf(diag.UnknownCode, tok.Span, "unexpected token %s", tok.Kind)
			return false
		}
	}
}

func (b *builder) openLine(sp source.Span) {
	if b.line == nil {
		b.line = &lineState{span: sp}
	}
}

// apply folds a parsed directive into the builder state.
func (b *builder) apply(d directive.Directive) bool {
	switch d.Kind {
	case directive.Meta:
		// метаданные файла обязаны идти до первой строки
		if len(b.doc.Lines) > 0 || b.line != nil {
			b.errorf(diag.SynMalformedField, d.Span,
				"metadata directive after the first line")
			return false
		}
		b.doc.Meta[d.Key] = d.Value
		return true

	case directive.Timing:
		b.openLine(d.Span)
		l := b.line
		if !l.contentBegun {
			if l.start.Valid {
				b.errorf(diag.SynMalformedField, d.Span,
					"duplicate timing directive on line")
				return false
			}
			l.start = doc.At(d.Start)
			if d.HasEnd {
				l.end = doc.At(d.End)
			}
			return true
		}
		if l.curStart.Valid {
			b.errorf(diag.SynMalformedField, d.Span,
				"duplicate timing directive on syllable")
			return false
		}
		l.curStart = doc.At(d.Start)
		if d.HasEnd {
			l.curEnd = doc.At(d.End)
		}
		return true

	case directive.Speaker:
		b.openLine(d.Span)
		if !b.speakerAllowed(d.ID) {
			b.errorf(diag.BuildUnknownSpeaker, d.Span,
				"speaker %q is not in the declared roster", d.ID)
			return false
		}
		// повторный [spk/...] переопределяет
		b.line.speaker = d.ID
		b.line.hasSpeaker = true
		return true

	case directive.Escape:
		b.openLine(d.Span)
		b.line.cur.WriteString(d.Literal)
		b.line.contentBegun = true
		return true

	case directive.Unknown:
		raw := doc.RawDirective{Fields: d.Raw}
		if b.line != nil {
			b.line.extra = append(b.line.extra, raw)
		} else {
			b.doc.Extra = append(b.doc.Extra, raw)
		}
		return true
	}
	b.errorf(diag.UnknownCode, d.Span, "unhandled directive kind")
	return false
}

// closeSyllable завершает текущий слог по '/' вне скобок.
func (b *builder) closeSyllable(sp source.Span) bool {
	b.openLine(sp)
	l := b.line
	text := l.cur.String()
	if text == "" {
		b.errorf(diag.SynMalformedField, sp, "empty syllable before '/'")
		return false
	}
	l.syllables = append(l.syllables, doc.Syllable{Text: text, Start: l.curStart, End: l.curEnd})
	l.cur.Reset()
	l.curStart = doc.Stamp{}
	l.curEnd = doc.Stamp{}
	l.separated = true
	l.contentBegun = true
	return true
}

// closeLine завершает текущую строку по newline/EOF и валидирует тайминги.
func (b *builder) closeLine() bool {
	l := b.line
	if l == nil {
		return true // пустая строка или директивы уровня файла
	}
	b.line = nil

	if l.contentBegun {
		text := l.cur.String()
		if text == "" {
			// хвостовой '/' оставил пустой слог
			b.errorf(diag.SynMalformedField, l.span, "empty syllable at end of line")
			return false
		}
		l.syllables = append(l.syllables, doc.Syllable{Text: text, Start: l.curStart, End: l.curEnd})
	}

	line := doc.Line{
		Syllables: l.syllables,
		Start:     l.start,
		End:       l.end,
		Speaker:   l.speaker,
		Extra:     l.extra,
	}
	if !b.validateLine(&line, l.span) {
		return false
	}

	if line.Start.Valid {
		if b.prevLineStart.Valid && line.Start.Before(b.prevLineStart) {
			b.errorf(diag.BuildNonMonotonicTiming, l.span,
				"line starts at %s, before previous line at %s", line.Start, b.prevLineStart)
			return false
		}
		b.prevLineStart = line.Start
	}

	b.doc.Lines = append(b.doc.Lines, line)
	return true
}

// validateLine проверяет монотонность таймингов внутри строки.
func (b *builder) validateLine(line *doc.Line, sp source.Span) bool {
	if line.End.Valid && line.Start.Valid && line.End.Before(line.Start) {
		b.errorf(diag.BuildNonMonotonicTiming, sp,
			"line ends at %s, before it starts at %s", line.End, line.Start)
		return false
	}

	prev := line.Start
	for i := range line.Syllables {
		s := &line.Syllables[i]
		if s.Start.Valid {
			if s.Start.Before(prev) {
				b.errorf(diag.BuildNonMonotonicTiming, sp,
					"syllable %d starts at %s, before %s", i+1, s.Start, prev)
				return false
			}
			if line.End.Valid && line.End.Before(s.Start) {
				b.errorf(diag.BuildNonMonotonicTiming, sp,
					"syllable %d starts at %s, after line end %s", i+1, s.Start, line.End)
				return false
			}
			prev = s.Start
		}
		if s.End.Valid {
			if s.Start.Valid && s.End.Before(s.Start) {
				b.errorf(diag.BuildNonMonotonicTiming, sp,
					"syllable %d ends at %s, before it starts at %s", i+1, s.End, s.Start)
				return false
			}
			if line.End.Valid && line.End.Before(s.End) {
				b.errorf(diag.BuildNonMonotonicTiming, sp,
					"syllable %d ends at %s, after line end %s", i+1, s.End, line.End)
				return false
			}
		}
	}
	return true
}

// speakerAllowed проверяет спикера по объявленному составу.
// Если состав нигде не объявлен — разрешены любые теги.
func (b *builder) speakerAllowed(id string) bool {
	roster := b.doc.Roster()
	if len(roster) == 0 && len(b.opts.Roster) == 0 {
		return true
	}
	for _, r := range roster {
		if r == id {
			return true
		}
	}
	for _, r := range b.opts.Roster {
		if r == id {
			return true
		}
	}
	return false
}

func (b *builder) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	diag.ReportError(b.opts.Reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}
