// Package pdfscan parses buffers produced by the pdf package so tests
// and tools can assert document structure without a PDF library: object
// offsets, cross-reference entries, trailer references and the text
// operations inside content streams.
package pdfscan

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Document is the scanned structure of one generated buffer.
type Document struct {
	Data      []byte
	Offsets   map[int]int // actual byte offset of every object header
	MaxObj    int
	Xref      map[int]int // offsets as listed in the cross-reference table
	Size      int         // trailer /Size
	Root      int         // trailer /Root object id
	Info      int         // trailer /Info object id, zero when absent
	XrefStart int         // offset of the xref keyword
	StartXref int         // offset named by the startxref line
}

var (
	objHeaderRe = regexp.MustCompile(`(?m)^(\d+)\s+\d+\s+obj`)
	xrefEntryRe = regexp.MustCompile(`^(\d{10}) (\d{5}) ([nf]) \r?\n?$`)
	sizeRe      = regexp.MustCompile(`/Size\s+(\d+)`)
	rootRe      = regexp.MustCompile(`/Root\s+(\d+)\s+\d+\s+R`)
	infoRe      = regexp.MustCompile(`/Info\s+(\d+)\s+\d+\s+R`)
)

// Scan parses the framing, object table, xref section and trailer.
func Scan(data []byte) (*Document, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, errors.New("missing header")
	}
	if !bytes.HasSuffix(bytes.TrimRight(data, "\r\n"), []byte("%%EOF")) {
		return nil, errors.New("missing EOF marker")
	}
	startxref := bytes.LastIndex(data, []byte("startxref"))
	if startxref == -1 {
		return nil, errors.New("missing startxref")
	}
	xrefIdx := bytes.LastIndex(data[:startxref], []byte("xref"))
	if xrefIdx == -1 {
		return nil, errors.New("missing xref")
	}

	d := &Document{
		Data:      data,
		Offsets:   map[int]int{},
		Xref:      map[int]int{},
		XrefStart: xrefIdx,
	}

	for _, m := range objHeaderRe.FindAllSubmatchIndex(data[:xrefIdx], -1) {
		id, err := strconv.Atoi(string(data[m[2]:m[3]]))
		if err != nil {
			continue
		}
		d.Offsets[id] = m[0]
		if id > d.MaxObj {
			d.MaxObj = id
		}
	}
	if d.MaxObj == 0 {
		return nil, errors.New("no objects found")
	}

	if err := d.parseXref(data[xrefIdx:startxref]); err != nil {
		return nil, err
	}
	if err := d.parseTrailer(data[xrefIdx:]); err != nil {
		return nil, err
	}

	after := data[startxref+len("startxref"):]
	after = bytes.TrimLeft(after, "\r\n ")
	end := 0
	for end < len(after) && after[end] >= '0' && after[end] <= '9' {
		end++
	}
	if end == 0 {
		return nil, errors.New("startxref names no offset")
	}
	off, err := strconv.Atoi(string(after[:end]))
	if err != nil {
		return nil, err
	}
	d.StartXref = off
	return d, nil
}

func (d *Document) parseXref(section []byte) error {
	lines := strings.Split(string(section), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != "xref" {
		return errors.New("malformed xref section")
	}
	var start, count int
	if _, err := fmt.Sscanf(lines[1], "%d %d", &start, &count); err != nil {
		return fmt.Errorf("malformed xref subsection header: %w", err)
	}
	if len(lines) < 2+count {
		return fmt.Errorf("xref lists %d entries, found %d", count, len(lines)-2)
	}
	for i := 0; i < count; i++ {
		m := xrefEntryRe.FindStringSubmatch(lines[2+i] + "\n")
		if m == nil {
			return fmt.Errorf("malformed xref entry %q", lines[2+i])
		}
		if m[3] == "f" {
			continue
		}
		off, err := strconv.Atoi(m[1])
		if err != nil {
			return err
		}
		d.Xref[start+i] = off
	}
	return nil
}

func (d *Document) parseTrailer(section []byte) error {
	idx := bytes.Index(section, []byte("trailer"))
	if idx == -1 {
		return errors.New("missing trailer")
	}
	start := bytes.Index(section[idx:], []byte("<<"))
	if start == -1 {
		return errors.New("missing trailer dict")
	}
	start += idx
	end := matchDictEnd(section, start)
	if end == -1 {
		return errors.New("unterminated trailer dict")
	}
	dict := string(section[start : end+2])
	if m := sizeRe.FindStringSubmatch(dict); m != nil {
		d.Size, _ = strconv.Atoi(m[1])
	}
	if m := rootRe.FindStringSubmatch(dict); m != nil {
		d.Root, _ = strconv.Atoi(m[1])
	}
	if m := infoRe.FindStringSubmatch(dict); m != nil {
		d.Info, _ = strconv.Atoi(m[1])
	}
	if d.Size == 0 || d.Root == 0 {
		return errors.New("trailer names no /Size or /Root")
	}
	return nil
}

// matchDictEnd returns the offset of the >> closing the dict opened at
// start, tracking nesting depth.
func matchDictEnd(data []byte, start int) int {
	depth := 0
	for i := start; i+1 < len(data); {
		switch {
		case data[i] == '<' && data[i+1] == '<':
			depth++
			i += 2
		case data[i] == '>' && data[i+1] == '>':
			depth--
			if depth == 0 {
				return i
			}
			i += 2
		default:
			i++
		}
	}
	return -1
}

// CheckOffsets verifies the cross-reference section against the actual
// object headers: every id from 1 to MaxObj has a matching entry, the
// bytes at each offset begin with that id, /Size covers the table, and
// startxref names the xref keyword's own offset.
func (d *Document) CheckOffsets() error {
	for id := 1; id <= d.MaxObj; id++ {
		actual, ok := d.Offsets[id]
		if !ok {
			return fmt.Errorf("object %d missing from body", id)
		}
		listed, ok := d.Xref[id]
		if !ok {
			return fmt.Errorf("object %d missing from xref", id)
		}
		if listed != actual {
			return fmt.Errorf("object %d: xref offset %d, header at %d", id, listed, actual)
		}
		header := []byte(fmt.Sprintf("%d 0 obj", id))
		if !bytes.HasPrefix(d.Data[actual:], header) {
			return fmt.Errorf("object %d: offset %d does not begin with its header", id, actual)
		}
	}
	if d.Size != d.MaxObj+1 {
		return fmt.Errorf("trailer /Size %d, want %d", d.Size, d.MaxObj+1)
	}
	if d.StartXref != d.XrefStart {
		return fmt.Errorf("startxref %d, xref keyword at %d", d.StartXref, d.XrefStart)
	}
	return nil
}

// TextOp is one drawing instruction recovered from a content stream.
// Text holds the raw string bytes in the document encoding.
type TextOp struct {
	Font string
	Size float64
	X    float64
	Y    float64
	Text string
}

var textOpRe = regexp.MustCompile(`(?m)^BT /(F\d+) ([0-9.]+) Tf 1 0 0 1 (-?[0-9.]+) (-?[0-9.]+) Tm \((.*)\) Tj ET$`)

// PageTextOps returns the text operations of every content stream in
// emission order, one slice per page. Streams without ops contribute an
// empty slice.
func (d *Document) PageTextOps() ([][]TextOp, error) {
	var pages [][]TextOp
	rest := d.Data
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start == -1 {
			break
		}
		body := rest[start+len("stream\n"):]
		end := bytes.Index(body, []byte("endstream"))
		if end == -1 {
			return nil, errors.New("unterminated stream")
		}
		var ops []TextOp
		for _, m := range textOpRe.FindAllSubmatch(body[:end], -1) {
			size, err := strconv.ParseFloat(string(m[2]), 64)
			if err != nil {
				return nil, err
			}
			x, err := strconv.ParseFloat(string(m[3]), 64)
			if err != nil {
				return nil, err
			}
			y, err := strconv.ParseFloat(string(m[4]), 64)
			if err != nil {
				return nil, err
			}
			ops = append(ops, TextOp{
				Font: string(m[1]),
				Size: size,
				X:    x,
				Y:    y,
				Text: unescape(m[5]),
			})
		}
		pages = append(pages, ops)
		rest = body[end+len("endstream"):]
	}
	return pages, nil
}

func unescape(s []byte) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Decode maps raw Windows-1252 string bytes back to UTF-8.
func Decode(text string) string {
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		sb.WriteRune(charmap.Windows1252.DecodeByte(text[i]))
	}
	return sb.String()
}

// Words splits the decoded text of all ops into whitespace-separated
// words, in op order.
func Words(ops []TextOp) []string {
	var words []string
	for _, op := range ops {
		words = append(words, strings.Fields(Decode(op.Text))...)
	}
	return words
}
