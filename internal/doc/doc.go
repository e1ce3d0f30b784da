// Package doc holds the canonical in-memory model of an Animated Text
// document: ordered lines of ordered syllables with millisecond timing
// and speaker attribution.
//
// A Document is produced by internal/parser or constructed
// programmatically. Ownership is strict: the Document owns its Lines,
// each Line owns its Syllables, and nothing in the model is shared.
// The serializer and the interop adapters treat the model as read-only;
// callers that need to mutate after hand-off should work on a Clone.
package doc

import (
	"sort"
	"strings"
)

// RosterKey is the metadata key that declares the duet/idol roster,
// comma-separated speaker ids.
const RosterKey = "roster"

// Syllable is the smallest timed text unit within a Line.
type Syllable struct {
	Text  string
	Start Stamp
	End   Stamp
}

// RawDirective is an opaque unknown directive preserved for forward
// compatibility. Fields include the keyword.
type RawDirective struct {
	Fields []string
}

// Line is one caption line: ordered syllables, optional timing and an
// optional speaker tag (empty = unassigned/solo).
type Line struct {
	Syllables []Syllable
	Start     Stamp
	End       Stamp
	Speaker   string
	Extra     []RawDirective // неизвестные директивы уровня строки, в порядке появления
}

// Document is the canonical model: ordered lines plus file-level
// metadata and pass-through unknown directives.
type Document struct {
	Meta  map[string]string
	Lines []Line
	Extra []RawDirective // неизвестные директивы уровня файла, в порядке появления
}

// New returns an empty document with an allocated metadata map.
func New() *Document {
	return &Document{Meta: make(map[string]string)}
}

// Text returns the plain content of the line, syllables joined.
func (l *Line) Text() string {
	var b strings.Builder
	for i := range l.Syllables {
		b.WriteString(l.Syllables[i].Text)
	}
	return b.String()
}

// Plain reports whether the line is a plain-text caption: a single
// untimed syllable and nothing else timed inside.
func (l *Line) Plain() bool {
	if len(l.Syllables) != 1 {
		return false
	}
	s := l.Syllables[0]
	return !s.Start.Valid && !s.End.Valid
}

// Roster returns the declared duet/idol roster, if any.
func (d *Document) Roster() []string {
	raw, ok := d.Meta[RosterKey]
	if !ok || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Speakers returns the sorted set of speaker tags used by lines.
func (d *Document) Speakers() []string {
	seen := make(map[string]bool)
	for i := range d.Lines {
		if sp := d.Lines[i].Speaker; sp != "" {
			seen[sp] = true
		}
	}
	out := make([]string, 0, len(seen))
	for sp := range seen {
		out = append(out, sp)
	}
	sort.Strings(out)
	return out
}

// SyllableCount returns the total number of syllables across all lines.
func (d *Document) SyllableCount() int {
	n := 0
	for i := range d.Lines {
		n += len(d.Lines[i].Syllables)
	}
	return n
}

// Duration returns the largest timestamp present anywhere in the
// document, i.e. the playback length implied by the timing data.
func (d *Document) Duration() Stamp {
	var max Stamp
	bump := func(s Stamp) {
		if s.Valid && (!max.Valid || s.Millis > max.Millis) {
			max = s
		}
	}
	for i := range d.Lines {
		l := &d.Lines[i]
		bump(l.Start)
		bump(l.End)
		for j := range l.Syllables {
			bump(l.Syllables[j].Start)
			bump(l.Syllables[j].End)
		}
	}
	return max
}

// Clone returns a deep copy. Используется как snapshot для редактирования:
// каждый шаг редактора порождает новый Document, старый остаётся неизменным.
func (d *Document) Clone() *Document {
	out := &Document{
		Meta:  make(map[string]string, len(d.Meta)),
		Lines: make([]Line, len(d.Lines)),
		Extra: cloneRaw(d.Extra),
	}
	for k, v := range d.Meta {
		out.Meta[k] = v
	}
	for i := range d.Lines {
		l := d.Lines[i]
		cl := l
		cl.Syllables = make([]Syllable, len(l.Syllables))
		copy(cl.Syllables, l.Syllables)
		cl.Extra = cloneRaw(l.Extra)
		out.Lines[i] = cl
	}
	return out
}

func cloneRaw(in []RawDirective) []RawDirective {
	if in == nil {
		return nil
	}
	out := make([]RawDirective, len(in))
	for i, r := range in {
		out[i] = RawDirective{Fields: append([]string(nil), r.Fields...)}
	}
	return out
}

// Equal reports structural equality of two documents. Metadata is
// compared as a set, everything else in order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Meta) != len(other.Meta) {
		return false
	}
	for k, v := range d.Meta {
		if ov, ok := other.Meta[k]; !ok || ov != v {
			return false
		}
	}
	if !rawEqual(d.Extra, other.Extra) || len(d.Lines) != len(other.Lines) {
		return false
	}
	for i := range d.Lines {
		if !lineEqual(&d.Lines[i], &other.Lines[i]) {
			return false
		}
	}
	return true
}

func lineEqual(a, b *Line) bool {
	if a.Start != b.Start || a.End != b.End || a.Speaker != b.Speaker {
		return false
	}
	if len(a.Syllables) != len(b.Syllables) || !rawEqual(a.Extra, b.Extra) {
		return false
	}
	for i := range a.Syllables {
		if a.Syllables[i] != b.Syllables[i] {
			return false
		}
	}
	return true
}

func rawEqual(a, b []RawDirective) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i].Fields) != len(b[i].Fields) {
			return false
		}
		for j := range a[i].Fields {
			if a[i].Fields[j] != b[i].Fields[j] {
				return false
			}
		}
	}
	return true
}
