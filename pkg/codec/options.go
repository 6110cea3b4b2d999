package codec

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// Options select the wire conventions that differ between textdb producers.
// The zero value matches the documented reference files: lengths count the
// text bytes alone and strings are UTF-8.
type Options struct {
	// LengthIncludesNul selects the length-field convention. When true,
	// every key and value is stored with a trailing NUL byte counted by its
	// length field; the decoder strips it and the encoder appends it.
	LengthIncludesNul bool

	// Encoding is the on-wire text encoding of keys and values. Nil means
	// UTF-8. Game files from the original tooling typically need a charmap
	// such as charmap.Windows1250.
	Encoding encoding.Encoding
}

// decodeText converts raw wire bytes into a string under the configured
// convention. offset is where the bytes started, for error reporting.
func (o Options) decodeText(raw []byte, offset int64, what string) (string, error) {
	if o.LengthIncludesNul {
		if len(raw) == 0 || raw[len(raw)-1] != 0 {
			return "", decodeErrorf(offset, ErrInvalidEncoding, "%s missing NUL terminator", what)
		}
		raw = raw[:len(raw)-1]
	}

	// Interior NULs are never valid in this C-string family.
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", decodeErrorf(offset, ErrInvalidEncoding, "%s contains NUL byte", what)
	}

	if o.Encoding == nil {
		if !utf8.Valid(raw) {
			return "", decodeErrorf(offset, ErrInvalidEncoding, "%s is not valid UTF-8", what)
		}
		return string(raw), nil
	}

	decoded, err := o.Encoding.NewDecoder().Bytes(raw)
	if err != nil {
		return "", decodeErrorf(offset, ErrInvalidEncoding, "%s: %v", what, err)
	}
	// Charmap decoders report undefined bytes as U+FFFD instead of failing.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", decodeErrorf(offset, ErrInvalidEncoding, "%s has bytes outside the configured charmap", what)
	}

	return string(decoded), nil
}

// encodeText converts a string into wire bytes under the configured
// convention, mirroring decodeText exactly.
func (o Options) encodeText(s, what string) ([]byte, error) {
	raw := []byte(s)

	if o.Encoding != nil {
		var err error
		raw, err = o.Encoding.NewEncoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %q: %w", what, s, err)
		}
	}

	if bytes.IndexByte(raw, 0) >= 0 {
		return nil, fmt.Errorf("%s %q contains NUL byte", what, s)
	}

	if o.LengthIncludesNul {
		raw = append(raw, 0)
	}

	return raw, nil
}
