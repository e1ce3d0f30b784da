package doc

// Demo returns a small two-line sample document with syllable timing,
// used by `antext init` and by tests that need a non-trivial document.
func Demo() *Document {
	d := New()
	d.Meta["title"] = "City of Stars"
	d.Lines = []Line{
		{
			Start: At(0),
			End:   At(3420),
			Syllables: []Syllable{
				{Text: "City ", Start: At(0)},
				{Text: "of ", Start: At(1200)},
				{Text: "stars", Start: At(2400)},
			},
		},
		{
			Start: At(3920),
			End:   At(11032),
			Syllables: []Syllable{
				{Text: "You never ", Start: At(3920)},
				{Text: "shined so ", Start: At(4320)},
				{Text: "brightly", Start: At(9320)},
			},
		},
	}
	return d
}
