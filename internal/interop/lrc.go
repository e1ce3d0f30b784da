package interop

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"antext/internal/doc"
)

// Mapping between LRC ID tags and canonical metadata keys.
var lrcIDTags = [...]struct {
	tag, meta string
}{
	{"ti", "title"},
	{"ar", "artist"},
	{"al", "album"},
	{"au", "author"},
	{"by", "by"},
	{"offset", "offset"},
}

func lrcMetaKey(tag string) (string, bool) {
	for _, m := range lrcIDTags {
		if m.tag == tag {
			return m.meta, true
		}
	}
	return "", false
}

func importLRC(data []byte) (*doc.Document, error) {
	d := doc.New()
	allTimed := true
	for n, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		starts, text, err := splitLRCTags(d, line, n+1)
		if err != nil {
			return nil, err
		}
		if len(starts) == 0 {
			if text == "" {
				continue // строка состояла только из ID-тегов
			}
			allTimed = false
			d.Lines = append(d.Lines, doc.Line{
				Syllables: []doc.Syllable{{Text: text}},
			})
			continue
		}
		// Несколько меток на строке — по строке документа на каждую.
		for _, ms := range starts {
			d.Lines = append(d.Lines, doc.Line{
				Start:     doc.At(ms),
				Syllables: []doc.Syllable{{Text: text}},
			})
		}
	}
	// Файлы с перемешанными метками встречаются; сортируем только когда
	// каждая строка имеет метку, иначе порядок файла сохраняется.
	if allTimed {
		sort.SliceStable(d.Lines, func(i, j int) bool {
			return d.Lines[i].Start.Millis < d.Lines[j].Start.Millis
		})
	}
	return d, nil
}

// splitLRCTags consumes the leading [..] tags of an LRC line. Timestamp
// tags are returned as start times, ID tags go straight into meta, and
// the remainder is the line text.
func splitLRCTags(d *doc.Document, line string, n int) ([]uint32, string, error) {
	var starts []uint32
	rest := line
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, "", &ParseError{Format: LRC, Line: n, Msg: "unterminated tag"}
		}
		tag := rest[1:end]
		if ms, ok := parseLRCTime(tag); ok {
			starts = append(starts, ms)
			rest = rest[end+1:]
			continue
		}
		key, value, ok := strings.Cut(tag, ":")
		if !ok {
			return nil, "", &ParseError{Format: LRC, Line: n, Msg: "malformed tag " + strconv.Quote("["+tag+"]")}
		}
		key = strings.TrimSpace(strings.ToLower(key))
		if meta, known := lrcMetaKey(key); known {
			key = meta
		}
		d.Meta[key] = strings.TrimSpace(value)
		rest = rest[end+1:]
	}
	return starts, strings.TrimSpace(rest), nil
}

func exportLRC(d *doc.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, m := range lrcIDTags {
		if v, ok := d.Meta[m.meta]; ok {
			buf.WriteByte('[')
			buf.WriteString(m.tag)
			buf.WriteByte(':')
			buf.WriteString(v)
			buf.WriteString("]\n")
		}
	}
	for _, line := range d.Lines {
		if line.Start.Valid {
			buf.WriteByte('[')
			buf.WriteString(formatLRCTime(line.Start.Millis))
			buf.WriteByte(']')
		}
		buf.WriteString(line.Text())
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
