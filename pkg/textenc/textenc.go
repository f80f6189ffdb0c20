package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical name of the encoding every decoded text ends up in.
const UTF8 = "utf-8"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrUnknownEncoding is returned when an encoding label can't be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// DecodeError reports the first byte sequence that is not valid under the
// declared encoding.
type DecodeError struct {
	Encoding string
	Offset   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s byte sequence at offset %d", e.Encoding, e.Offset)
}

// EncodeError reports a rune that the target encoding can't represent.
type EncodeError struct {
	Encoding string
	Err      error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("text is not representable in %s: %s", e.Encoding, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Lookup resolves an encoding label (gbk, GB2312, gb18030, utf-8, ...) using
// the WHATWG label table and returns the encoding with its canonical name.
func Lookup(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, "", errors.Wrap(ErrUnknownEncoding, "empty encoding name")
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", errors.Wrapf(ErrUnknownEncoding, "%q", label)
	}
	name, err := htmlindex.Name(enc)
	// The "replacement" encoding maps every input to U+FFFD, so it can never
	// satisfy a lossless decode.
	if err != nil || name == "replacement" {
		return nil, "", errors.Wrapf(ErrUnknownEncoding, "%q", label)
	}
	return enc, name, nil
}

// Decode converts b from the named encoding into UTF-8 text. Invalid byte
// sequences fail with a *DecodeError instead of being replaced. A leading
// UTF-8 byte order mark is dropped.
func Decode(b []byte, encodingName string) (string, error) {
	enc, name, err := Lookup(encodingName)
	if err != nil {
		return "", err
	}

	if name == UTF8 {
		b = bytes.TrimPrefix(b, utf8BOM)
		if off := firstInvalidUTF8(b); off >= 0 {
			return "", &DecodeError{Encoding: name, Offset: off}
		}
		return string(b), nil
	}

	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", errors.Wrapf(err, "decode %s", name)
	}

	// The x/text decoders substitute U+FFFD for invalid input, and a few
	// legacy codes decode to a character whose canonical encoding is a
	// different code. Both break the bytes-to-text-to-bytes round trip, so
	// only go the slow way when re-encoding doesn't reproduce the input.
	if again, err := enc.NewEncoder().Bytes(out); err != nil || !bytes.Equal(again, b) {
		if off := firstInvalid(enc, b); off >= 0 {
			return "", &DecodeError{Encoding: name, Offset: off}
		}
	}

	return string(out), nil
}

// Encode converts UTF-8 text into the named encoding.
func Encode(text string, encodingName string) ([]byte, error) {
	enc, name, err := Lookup(encodingName)
	if err != nil {
		return nil, err
	}

	if name == UTF8 {
		if off := firstInvalidUTF8([]byte(text)); off >= 0 {
			return nil, &EncodeError{Encoding: name, Err: errors.Errorf("invalid utf-8 at offset %d", off)}
		}
		return []byte(text), nil
	}

	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, &EncodeError{Encoding: name, Err: err}
	}
	return out, nil
}

// Sniff returns "utf-8" when b carries a UTF-8 byte order mark or is valid
// UTF-8, and fallback otherwise.
func Sniff(b []byte, fallback string) string {
	if bytes.HasPrefix(b, utf8BOM) || utf8.Valid(b) {
		return UTF8
	}
	return fallback
}

func firstInvalidUTF8(b []byte) int {
	for off := 0; off < len(b); {
		r, size := utf8.DecodeRune(b[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}

// firstInvalid steps through src one rune at a time and returns the offset
// of the first sequence that doesn't survive decoding and re-encoding
// unchanged, or -1. That covers sequences the decoder replaced with U+FFFD
// as well as duplicate codes such as GBK A3A0 (U+3000, canonically A1A1). A
// U+FFFD that is genuinely encoded in src (possible in GB18030) passes.
func firstInvalid(enc encoding.Encoding, src []byte) int {
	dec := enc.NewDecoder()
	encoder := enc.NewEncoder()

	var dst [utf8.UTFMax]byte
	var back [16]byte
	for off := 0; off < len(src); {
		var nDst, nSrc int
		var err error
		// Grow the destination one byte at a time so that exactly one rune
		// comes out of each step.
		for k := 1; k <= len(dst); k++ {
			nDst, nSrc, err = dec.Transform(dst[:k], src[off:], true)
			if nDst > 0 || nSrc > 0 {
				break
			}
			if err != transform.ErrShortDst {
				return off
			}
		}
		if nSrc == 0 {
			return off
		}
		if nDst > 0 {
			encoder.Reset()
			nBack, _, err := encoder.Transform(back[:], dst[:nDst], true)
			if err != nil || !bytes.Equal(back[:nBack], src[off:off+nSrc]) {
				return off
			}
		}
		off += nSrc
	}
	return -1
}
