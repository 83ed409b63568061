package renderer

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Encode converts UTF-8 output to the named charset (IANA name, e.g.
// "iso-8859-7"). Runes the charset cannot represent are replaced.
func Encode(data []byte, charset string) ([]byte, error) {
	name := strings.TrimSpace(charset)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return data, nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encode output as %s: %w", name, err)
	}
	return out, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %q is not supported", name)
	}
	return enc, nil
}
