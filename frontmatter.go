package mdpdf

import (
	"bytes"

	"github.com/goccy/go-yaml"
)

// Frontmatter holds the metadata keys the renderer can use from a
// document header. Only YAML headers are parsed; TOML and JSON headers
// are stripped but yield no metadata.
type Frontmatter struct {
	Title string `yaml:"title"`
}

// StripFrontmatter removes a metadata header from the start of a
// document and returns the parsed metadata plus the remaining body.
//
// A header opens with ---, +++ or ;;; alone on the first line, is
// followed by at least one line that looks like metadata, and closes
// with the same delimiter. Anything else, including an unclosed
// header, comes back unchanged. Headers are only recognized at the
// very start, so delimiter lines later in the document stay.
func StripFrontmatter(data []byte) (Frontmatter, []byte) {
	var fm Frontmatter
	openLine, bodyStart, ok := nextLine(data, 0)
	if !ok {
		return fm, data
	}
	delim, isHeader := headerDelimiter(openLine)
	if !isHeader {
		return fm, data
	}
	secondLine, secondNext, ok := nextLine(data, bodyStart)
	if !ok || !metadataLikely(secondLine) {
		return fm, data
	}
	closeStart, closeNext, found := findHeaderEnd(data, secondNext, delim)
	if !found {
		return fm, data
	}
	if bytes.Equal(delim, []byte("---")) {
		// Best effort. A header that is not valid YAML is still a
		// header and still gets stripped.
		_ = yaml.Unmarshal(data[bodyStart:closeStart], &fm)
	}
	return fm, data[closeNext:]
}

// nextLine returns the line starting at start without its terminator,
// plus the offset of the following line.
func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	line, rest, _ := bytes.Cut(src[start:], []byte("\n"))
	return trimCR(line), len(src) - len(rest), true
}

var headerDelims = [][]byte{[]byte("---"), []byte("+++"), []byte(";;;")}

func headerDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	for _, d := range headerDelims {
		if bytes.Equal(trimmed, d) {
			return d, true
		}
	}
	return nil, false
}

// metadataLikely reports whether a line plausibly starts header
// metadata, so a thematic break at the top of a plain document is not
// mistaken for one.
func metadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	switch {
	case len(trimmed) == 0:
		return false
	case trimmed[0] == '{' || trimmed[0] == '[':
		return true
	default:
		return bytes.ContainsAny(trimmed, ":=")
	}
}

func findHeaderEnd(src []byte, start int, delim []byte) (lineStart, next int, found bool) {
	for idx := start; idx < len(src); {
		line, n, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, n, true
		}
		idx = n
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\r"))
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte("\xef\xbb\xbf"))
}
