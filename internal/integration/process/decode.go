package process

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// DefaultFallbackEncoding is used when output is not valid UTF-8 and no
// other encoding is configured.
const DefaultFallbackEncoding = "windows-1252"

// ErrDecode is returned when output is neither UTF-8 nor valid in the
// fallback encoding.
var ErrDecode = errors.New("decode output")

// Decode converts command output to a string. Valid UTF-8 is returned
// as is; anything else is decoded with the named fallback encoding
// (any WHATWG label, e.g. "latin1", "shift_jis"). On failure the result
// holds the UTF-8-sanitized bytes and the error wraps ErrDecode.
func Decode(b []byte, fallback string) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	if fallback == "" {
		fallback = DefaultFallbackEncoding
	}

	enc, err := htmlindex.Get(fallback)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�"), fmt.Errorf("%w: encoding %q: %v", ErrDecode, fallback, err)
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�"), fmt.Errorf("%w: %s: %v", ErrDecode, fallback, err)
	}
	return string(out), nil
}
