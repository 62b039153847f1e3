package mdpdf

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports input that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid utf-8")
	// ErrBinaryInput reports input that looks like binary data.
	ErrBinaryInput = errors.New("input looks like binary data")
)

// Inputs shorter than minBinarySample never trip the control-byte
// ratio check. A NUL byte rejects at any length.
const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if the source is not valid UTF-8 or
// appears to be binary rather than Markdown text.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	if bytes.IndexByte(src, 0x00) >= 0 {
		return ErrBinaryInput
	}
	control := 0
	for _, b := range src {
		if isControlByte(b) {
			control++
		}
	}
	if len(src) >= minBinarySample && control*100 >= len(src)*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

// isControlByte reports whether b is a control byte, not counting the
// whitespace controls TAB through CR.
func isControlByte(b byte) bool {
	switch {
	case b >= 0x20 && b != 0x7F:
		return false
	case b >= 0x09 && b <= 0x0D:
		return false
	default:
		return true
	}
}
