package pdf

import (
	"strings"

	"github.com/muesli/reflow/ansi"

	"pkt.systems/mdpdf"
)

// segment is a same-style run within one laid-out line.
type segment struct {
	text string
	bold bool
}

// line is one wrapped output line as an ordered list of style runs.
type line struct {
	segments []segment
}

func (l line) columns() int {
	cols := 0
	for _, seg := range l.segments {
		cols += textColumns(seg.text)
	}
	return cols
}

func textColumns(text string) int {
	return ansi.PrintableRuneWidth(text)
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenSpace
	tokenBreak
)

type token struct {
	text string
	bold bool
	kind tokenKind
}

// collectTokens splits spans into word, space and hard-break tokens.
// Words are maximal runs of non-whitespace; tabs count as spaces and
// newlines force a line break.
func collectTokens(spans []mdpdf.Span) []token {
	var tokens []token
	var word strings.Builder
	flush := func(bold bool) {
		if word.Len() == 0 {
			return
		}
		tokens = append(tokens, token{text: word.String(), bold: bold, kind: tokenWord})
		word.Reset()
	}
	for _, span := range spans {
		for _, r := range span.Text {
			switch r {
			case ' ', '\t':
				flush(span.Bold)
				tokens = append(tokens, token{kind: tokenSpace})
			case '\n':
				flush(span.Bold)
				tokens = append(tokens, token{kind: tokenBreak})
			default:
				word.WriteRune(r)
			}
		}
		flush(span.Bold)
	}
	return tokens
}

// wrapTokens lays tokens into lines of at most limit columns, greedily:
// words accumulate while they fit together with their separating space.
// The first line may carry its own limit for hanging indents. A word
// wider than the limit occupies a line of its own; it is never split or
// truncated. Inter-word spaces are regular face, and adjacent
// same-style runs merge into one segment.
func wrapTokens(tokens []token, firstLimit, nextLimit int) []line {
	var lines []line
	var segments []segment
	cols := 0
	limit := firstLimit
	pendingSpace := false

	push := func() {
		if len(segments) == 0 {
			return
		}
		lines = append(lines, line{segments: segments})
		segments = nil
		cols = 0
		limit = nextLimit
	}

	for _, tok := range tokens {
		switch tok.kind {
		case tokenSpace:
			if cols > 0 {
				pendingSpace = true
			}
		case tokenBreak:
			push()
			pendingSpace = false
		case tokenWord:
			wordCols := textColumns(tok.text)
			additional := wordCols
			if pendingSpace {
				additional++
			}
			if cols > 0 && cols+additional > limit {
				push()
				pendingSpace = false
			}
			if pendingSpace && len(segments) > 0 {
				segments = appendSegment(segments, " ", false)
				cols++
				pendingSpace = false
			}
			segments = appendSegment(segments, tok.text, tok.bold)
			cols += wordCols
		}
	}
	if len(segments) > 0 {
		lines = append(lines, line{segments: segments})
	}
	return lines
}

func appendSegment(segments []segment, text string, bold bool) []segment {
	if text == "" {
		return segments
	}
	if n := len(segments); n > 0 && segments[n-1].bold == bold {
		segments[n-1].text += text
		return segments
	}
	return append(segments, segment{text: text, bold: bold})
}

// truncateWithEllipsis fits text into limit columns by dropping the
// tail and ending with an ellipsis. Text that already fits is returned
// unchanged; a one-column limit yields just the ellipsis.
func truncateWithEllipsis(text string, limit int) string {
	if textColumns(text) <= limit {
		return text
	}
	switch {
	case limit < 1:
		return ""
	case limit == 1:
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
