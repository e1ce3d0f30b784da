package interop

import (
	"fmt"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"antext/internal/diag"
)

// Decode transcodes foreign input into UTF-8. Legacy LRC files are
// often GBK or Shift_JIS; name is an IANA charset name. An empty name
// or a UTF-8 alias returns the input untouched.
func Decode(data []byte, name string) ([]byte, error) {
	if name == "" || name == "utf-8" || name == "UTF-8" {
		return data, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%s: unknown charset %q", diag.InteropMalformedInput.ID(), name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", diag.InteropMalformedInput.ID(), name, err)
	}
	return out, nil
}
