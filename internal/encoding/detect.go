// Package encoding normalizes uploaded CSV bytes to UTF-8. Bank and card
// exports arrive in a mix of UTF-8 (with or without BOM), UTF-16, and
// legacy single-byte encodings; everything downstream assumes UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how much of the stream is inspected for BOMs and charset
// heuristics before handing off to the decoder.
const peekSize = 8192

// NewUTF8Reader wraps r so that reads yield UTF-8 text regardless of the
// source encoding. Detection order: BOM, valid-UTF-8 passthrough, chardet
// heuristics, then a Windows-1252 fallback (the most common legacy encoding
// for US bank exports).
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, peekSize)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if dec, skip := bomDecoder(head); skip > 0 || dec != nil {
		if skip > 0 {
			_, _ = br.Discard(skip)
		}

		if dec == nil {
			return br, nil
		}

		return transform.NewReader(br, dec.NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if dec := sniffCharset(head); dec != nil {
		return transform.NewReader(br, dec.NewDecoder()), nil
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

// bomDecoder inspects head for a byte-order mark. It returns the decoder to
// apply (nil for plain UTF-8) and how many leading bytes to drop.
func bomDecoder(head []byte) (encoding.Encoding, int) {
	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		// UTF-8 BOM carries no information beyond the marker itself.
		return nil, 3
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), 0
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), 0
	}

	return nil, 0
}

// sniffCharset runs chardet over the sample and maps the verdict to a
// decoder. Unknown charsets return nil so the caller can fall back.
func sniffCharset(head []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "ISO-8859-9":
		return charmap.ISO8859_9
	}

	return nil
}
