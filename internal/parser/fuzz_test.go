package parser

import (
	"bytes"
	"testing"

	"antext/internal/diag"
	"antext/internal/format"
	"antext/internal/lexer"
	"antext/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB — ограничение на размер входа

func addCorpusSeeds(f *testing.F) {
	seeds := []string{
		"",
		"Hello world\n",
		"[t/1000]Hel/lo world\n",
		"[meta/title/Demo]\n[meta/roster/alice,bob]\n[spk/alice][t/0/500]Hi\n",
		"[t/0][t/250]stamp/ed syl/la/bles[t/1000]\n",
		"[esc/lbr]bracket[esc/rbr] and [esc/sol]slash\n",
		"[x-karaoke/glow/1]custom directive\n",
		"Hello[x/1]\n",
		"a\tb\n",
		"a\rb\n",
		"[t/abc]bad stamp\n",
		"[t/1000 unterminated\n",
		"[]\n",
		"[/]\n",
		"[t/5000][t/1000]backwards\n",
		"plain\n\n\nplain again\n",
		"[spk/ghost]no roster\n",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

// FuzzParseDocument проверяет, что лексер и парсер не паникуют на произвольном
// входе, а успешно разобранный документ сериализуется обратно без ошибок.
func FuzzParseDocument(f *testing.F) {
	addCorpusSeeds(f)

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.antx", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		lx := lexer.New(file)
		res := ParseDocument(lx, Options{Reporter: &diag.BagReporter{Bag: bag}})
		if !res.Ok {
			return
		}

		out, err := format.Marshal(res.Doc)
		if err != nil {
			t.Fatalf("marshal of accepted document failed: %v", err)
		}

		// канонический текст должен парситься повторно без ошибок
		fs2 := source.NewFileSet()
		file2 := fs2.Get(fs2.AddVirtual("fuzz2.antx", out))
		bag2 := diag.NewBag(128)
		res2 := ParseDocument(lexer.New(file2), Options{
			Reporter: &diag.BagReporter{Bag: bag2},
			Roster:   res.Doc.Speakers(),
		})
		if !res2.Ok {
			t.Fatalf("canonical output failed to reparse: %s", out)
		}
		if !res2.Doc.Equal(res.Doc) {
			t.Fatalf("reparse changed the document: %s", out)
		}
		out2, err := format.Marshal(res2.Doc)
		if err != nil {
			t.Fatalf("second marshal failed: %v", err)
		}
		if !bytes.Equal(out, out2) {
			t.Fatalf("marshal not stable:\nfirst:  %q\nsecond: %q", out, out2)
		}
	})
}
