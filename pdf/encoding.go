package pdf

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"pkt.systems/mdpdf"
)

// ErrEncoding reports text that cannot be represented in the document
// text encoding (Windows-1252).
var ErrEncoding = errors.New("text not representable in WinAnsi encoding")

// encodeText maps UTF-8 to Windows-1252. An unmappable rune is an
// error, never a silent replacement or drop.
func encodeText(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrEncoding, r)
		}
		out = append(out, b)
	}
	return out, nil
}

// checkText verifies s is fully encodable without keeping the bytes.
func checkText(s string) error {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return fmt.Errorf("%w: %q", ErrEncoding, r)
		}
	}
	return nil
}

func checkSpans(spans []mdpdf.Span) error {
	for _, s := range spans {
		if err := checkText(s.Text); err != nil {
			return err
		}
	}
	return nil
}

// escapeText escapes the literal-string delimiters and the escape
// character itself; carriage returns flatten to spaces.
func escapeText(b []byte) []byte {
	out := make([]byte, 0, len(b)+2)
	for _, c := range b {
		switch c {
		case '(', ')', '\\':
			out = append(out, '\\', c)
		case '\r':
			out = append(out, ' ')
		default:
			out = append(out, c)
		}
	}
	return out
}

// sanitizeTitle keeps the document title on a single line.
func sanitizeTitle(title string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return ' '
		}
		return r
	}, title)
}
