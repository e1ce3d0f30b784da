package interop

import (
	"bytes"
	"strconv"
	"strings"

	"antext/internal/doc"
)

func importVTT(data []byte) (*doc.Document, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimPrefix(lines[0], "\ufeff"), "WEBVTT") {
		return nil, &ParseError{Format: WebVTT, Line: 1, Msg: "missing WEBVTT header"}
	}
	d := doc.New()
	i := 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		// Блоки NOTE и STYLE пропускаются целиком.
		if strings.HasPrefix(lines[i], "NOTE") || strings.HasPrefix(lines[i], "STYLE") || strings.HasPrefix(lines[i], "REGION") {
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				i++
			}
			continue
		}
		// Необязательный идентификатор реплики перед строкой времени.
		if !strings.Contains(lines[i], "-->") {
			i++
			if i >= len(lines) {
				return nil, &ParseError{Format: WebVTT, Line: i, Msg: "cue identifier without timing line"}
			}
		}
		start, end, ok := parseCueTiming(lines[i], '.', true)
		if !ok {
			return nil, &ParseError{Format: WebVTT, Line: i + 1, Msg: "malformed timing line " + strconv.Quote(lines[i])}
		}
		i++
		var text []string
		speaker := ""
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			t := strings.TrimSpace(lines[i])
			if s, rest, ok := cutVoiceSpan(t); ok {
				speaker = s
				t = rest
			}
			text = append(text, t)
			i++
		}
		if len(text) == 0 {
			return nil, &ParseError{Format: WebVTT, Line: i, Msg: "cue without text"}
		}
		line := doc.Line{
			Start:     doc.At(start),
			End:       doc.At(end),
			Speaker:   speaker,
			Syllables: []doc.Syllable{{Text: strings.Join(text, " ")}},
		}
		d.Lines = append(d.Lines, line)
	}
	return d, nil
}

// cutVoiceSpan strips a leading <v Name> voice span and its optional
// closing tag, returning the speaker name and the remaining text.
func cutVoiceSpan(s string) (speaker, rest string, ok bool) {
	if !strings.HasPrefix(s, "<v ") && !strings.HasPrefix(s, "<v.") {
		return "", s, false
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", s, false
	}
	name := s[3:end]
	// Классы голоса (<v.loud Name>) отбрасываем до первого пробела.
	if strings.HasPrefix(s, "<v.") {
		if sp := strings.IndexByte(name, ' '); sp >= 0 {
			name = name[sp+1:]
		} else {
			name = ""
		}
	}
	rest = strings.TrimSuffix(s[end+1:], "</v>")
	return strings.TrimSpace(name), strings.TrimSpace(rest), true
}

func exportVTT(d *doc.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("WEBVTT\n\n")
	for _, line := range d.Lines {
		if !line.Start.Valid {
			continue
		}
		end := line.End
		if !end.Valid {
			end = doc.At(line.Start.Millis + defaultCueMillis)
		}
		buf.WriteString(formatClock(line.Start.Millis, '.'))
		buf.WriteString(" --> ")
		buf.WriteString(formatClock(end.Millis, '.'))
		buf.WriteByte('\n')
		if line.Speaker != "" {
			buf.WriteString("<v ")
			buf.WriteString(line.Speaker)
			buf.WriteByte('>')
		}
		buf.WriteString(line.Text())
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}
