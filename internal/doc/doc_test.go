package doc_test

import (
	"testing"

	"antext/internal/doc"
)

func TestStamp(t *testing.T) {
	var zero doc.Stamp
	if zero.Valid {
		t.Error("zero stamp must be invalid")
	}
	if zero.String() != "-" {
		t.Errorf("zero stamp String = %q", zero.String())
	}
	if !doc.At(100).Before(doc.At(200)) {
		t.Error("100 should be before 200")
	}
	if doc.At(100).Before(zero) || zero.Before(doc.At(100)) {
		t.Error("comparisons with invalid stamps must be false")
	}
}

func TestLineTextAndPlain(t *testing.T) {
	l := doc.Line{Syllables: []doc.Syllable{{Text: "He"}, {Text: "llo"}}}
	if l.Text() != "Hello" {
		t.Errorf("Text = %q", l.Text())
	}
	if l.Plain() {
		t.Error("two syllables is not a plain line")
	}

	plain := doc.Line{Syllables: []doc.Syllable{{Text: "Hello"}}}
	if !plain.Plain() {
		t.Error("single untimed syllable is a plain line")
	}

	timed := doc.Line{Syllables: []doc.Syllable{{Text: "Hello", Start: doc.At(5)}}}
	if timed.Plain() {
		t.Error("timed syllable is not a plain line")
	}
}

func TestRoster(t *testing.T) {
	d := doc.New()
	if d.Roster() != nil {
		t.Error("no roster expected")
	}
	d.Meta[doc.RosterKey] = "vocal1, vocal2,"
	got := d.Roster()
	if len(got) != 2 || got[0] != "vocal1" || got[1] != "vocal2" {
		t.Errorf("Roster = %v", got)
	}
}

func TestStats(t *testing.T) {
	d := doc.Demo()
	if n := d.SyllableCount(); n != 6 {
		t.Errorf("SyllableCount = %d, want 6", n)
	}
	dur := d.Duration()
	if !dur.Valid || dur.Millis != 11032 {
		t.Errorf("Duration = %v, want 11032ms", dur)
	}

	d.Lines[0].Speaker = "b"
	d.Lines[1].Speaker = "a"
	sp := d.Speakers()
	if len(sp) != 2 || sp[0] != "a" || sp[1] != "b" {
		t.Errorf("Speakers = %v", sp)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := doc.Demo()
	d.Extra = []doc.RawDirective{{Fields: []string{"x", "y"}}}
	c := d.Clone()

	if !d.Equal(c) {
		t.Fatal("clone must be structurally equal")
	}

	c.Lines[0].Syllables[0].Text = "mutated"
	c.Meta["title"] = "mutated"
	c.Extra[0].Fields[0] = "mutated"

	if d.Lines[0].Syllables[0].Text != "City " {
		t.Error("syllable mutation leaked into original")
	}
	if d.Meta["title"] != "City of Stars" {
		t.Error("meta mutation leaked into original")
	}
	if d.Extra[0].Fields[0] != "x" {
		t.Error("raw directive mutation leaked into original")
	}
	if d.Equal(c) {
		t.Error("documents should differ after mutation")
	}
}
