package testkit

import (
	"strings"
	"testing"

	"antext/internal/doc"
)

func TestDemoSatisfiesInvariants(t *testing.T) {
	d := doc.Demo()
	if err := CheckDocumentInvariants(d); err != nil {
		t.Errorf("CheckDocumentInvariants: %v", err)
	}
	if err := CheckRoundTrip(d); err != nil {
		t.Errorf("CheckRoundTrip: %v", err)
	}
}

func TestInvariantViolationsDetected(t *testing.T) {
	cases := []struct {
		name string
		make func() *doc.Document
		want string
	}{
		{
			name: "line end before start",
			make: func() *doc.Document {
				d := doc.New()
				d.Lines = append(d.Lines, doc.Line{
					Start:     doc.At(1000),
					End:       doc.At(500),
					Syllables: []doc.Syllable{{Text: "x"}},
				})
				return d
			},
			want: "before start",
		},
		{
			name: "syllable after line end",
			make: func() *doc.Document {
				d := doc.New()
				d.Lines = append(d.Lines, doc.Line{
					Start:     doc.At(0),
					End:       doc.At(100),
					Syllables: []doc.Syllable{{Text: "x", Start: doc.At(200)}},
				})
				return d
			},
			want: "after line end",
		},
		{
			name: "lines out of order",
			make: func() *doc.Document {
				d := doc.New()
				d.Lines = append(d.Lines,
					doc.Line{Start: doc.At(2000), Syllables: []doc.Syllable{{Text: "a"}}},
					doc.Line{Start: doc.At(1000), Syllables: []doc.Syllable{{Text: "b"}}},
				)
				return d
			},
			want: "previous line start",
		},
		{
			name: "completely empty line",
			make: func() *doc.Document {
				d := doc.New()
				d.Lines = append(d.Lines, doc.Line{})
				return d
			},
			want: "completely empty",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckDocumentInvariants(c.make())
			if err == nil {
				t.Fatal("violation not detected")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("err = %v, want substring %q", err, c.want)
			}
		})
	}
}
