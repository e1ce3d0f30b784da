package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"antext/internal/diag"
	"antext/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.FgHiBlack)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i := range items {
		d := &items[i]
		printHeader(w, fs, d.Severity, d.Code.ID(), d.Primary, d.Message, opts)
		if opts.Context {
			printContext(w, fs, d.Primary, opts)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s: %s\n", paint(noteColor, "note", opts.Color), n.Msg)
				if opts.Context && !n.Span.Empty() {
					printContext(w, fs, n.Span, opts)
				}
			}
		}
	}
	if rest := bag.Len() - len(items); rest > 0 {
		fmt.Fprintf(w, "... and %d more\n", rest)
	}
}

func printHeader(w io.Writer, fs *source.FileSet, sev diag.Severity, code string, span source.Span, msg string, opts PrettyOpts) {
	start, _ := fs.Resolve(span)
	path := displayPath(fs.Get(span.File), opts.PathMode)
	label := paint(severityColor(sev), sev.String(), opts.Color)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, label, code, msg)
}

// printContext prints the offending source line with a caret underline.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Колонки байтовые; ширину отступа считаем по реальному тексту,
	// иначе подчёркивание съезжает на кириллице и CJK.
	prefix := sliceCols(line, 1, start.Col)
	marked := sliceCols(line, start.Col, end.Col)
	if end.Line != start.Line {
		marked = sliceCols(line, start.Col, 0)
	}
	underline := "^"
	if mw := runewidth.StringWidth(marked); mw > 1 {
		underline += strings.Repeat("~", mw-1)
	}
	indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
	fmt.Fprintf(w, "  %s%s\n", indent, paint(noteColor, underline, opts.Color))
}

// sliceCols cuts [from, to) in 1-based byte columns; to == 0 means end of line.
func sliceCols(line string, from, to uint32) string {
	if from < 1 {
		from = 1
	}
	if int(from-1) >= len(line) {
		return ""
	}
	if to == 0 || int(to-1) > len(line) {
		return line[from-1:]
	}
	if to <= from {
		return ""
	}
	return line[from-1 : to-1]
}

func displayPath(f *source.File, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}
