package interop

import (
	"bytes"
	"strconv"
	"strings"

	"antext/internal/doc"
)

// defaultCueMillis pads the end time of cues whose source line carries
// a start but no end.
const defaultCueMillis = 3000

func importSRT(data []byte) (*doc.Document, error) {
	d := doc.New()
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		// Порядковый номер блока необязателен, но обычно присутствует.
		if _, err := strconv.Atoi(strings.TrimSpace(lines[i])); err == nil {
			i++
			if i >= len(lines) {
				return nil, &ParseError{Format: SRT, Line: i, Msg: "cue index without timing line"}
			}
		}
		start, end, ok := parseCueTiming(lines[i], ',', false)
		if !ok {
			return nil, &ParseError{Format: SRT, Line: i + 1, Msg: "malformed timing line " + strconv.Quote(lines[i])}
		}
		i++
		var text []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			text = append(text, strings.TrimSpace(lines[i]))
			i++
		}
		if len(text) == 0 {
			return nil, &ParseError{Format: SRT, Line: i, Msg: "cue without text"}
		}
		d.Lines = append(d.Lines, doc.Line{
			Start:     doc.At(start),
			End:       doc.At(end),
			Syllables: []doc.Syllable{{Text: strings.Join(text, " ")}},
		})
	}
	return d, nil
}

// parseCueTiming parses "<clock> --> <clock>" used by both SRT and WebVTT.
// WebVTT allows trailing cue settings after the second clock.
func parseCueTiming(s string, sep byte, settings bool) (start, end uint32, ok bool) {
	left, right, found := strings.Cut(s, "-->")
	if !found {
		return 0, 0, false
	}
	right = strings.TrimSpace(right)
	if settings {
		if i := strings.IndexAny(right, " \t"); i >= 0 {
			right = right[:i]
		}
	}
	start, ok1 := parseClock(strings.TrimSpace(left), sep, settings)
	end, ok2 := parseClock(right, sep, settings)
	return start, end, ok1 && ok2
}

func exportSRT(d *doc.Document) ([]byte, error) {
	var buf bytes.Buffer
	n := 0
	for _, line := range d.Lines {
		if !line.Start.Valid {
			continue // SRT не умеет реплики без времени
		}
		end := line.End
		if !end.Valid {
			end = doc.At(line.Start.Millis + defaultCueMillis)
		}
		n++
		buf.WriteString(strconv.Itoa(n))
		buf.WriteByte('\n')
		buf.WriteString(formatClock(line.Start.Millis, ','))
		buf.WriteString(" --> ")
		buf.WriteString(formatClock(end.Millis, ','))
		buf.WriteByte('\n')
		buf.WriteString(line.Text())
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}
