package mdpdf

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Parse converts Markdown source into an ordered block sequence. The
// input is validated first; parsing itself cannot fail. A metadata
// header at the start of the document is stripped, see
// StripFrontmatter.
//
// Inline styling is reduced to normal and bold runs: strong emphasis is
// bold, single emphasis and code spans render as normal text, link text
// is kept and the destination dropped. Hard line breaks become forced
// line breaks inside the owning block.
func Parse(src []byte) ([]Block, error) {
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	_, src = StripFrontmatter(src)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))
	p := docParser{src: src}
	p.walk(doc)
	return p.blocks, nil
}

type docParser struct {
	src    []byte
	blocks []Block
}

func (p *docParser) walk(n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch b := c.(type) {
		case *ast.Heading:
			p.blocks = append(p.blocks, Heading{Level: clampLevel(b.Level), Spans: p.spans(b)})
		case *ast.Paragraph:
			p.blocks = append(p.blocks, Paragraph{Spans: p.spans(b)})
		case *ast.TextBlock:
			p.blocks = append(p.blocks, Paragraph{Spans: p.spans(b)})
		case *ast.List:
			p.list(b, 0)
		case *ast.Blockquote:
			p.walk(b)
		case *ast.FencedCodeBlock:
			p.codeBlock(b)
		case *ast.CodeBlock:
			p.codeBlock(b)
		case *east.Table:
			p.table(b)
		case *ast.ThematicBreak, *ast.HTMLBlock:
			// No visual counterpart in the block model.
		}
	}
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

// list flattens a (possibly nested) list into one ListItem block per
// item. Nested lists follow their parent item at the next depth.
func (p *docParser) list(list *ast.List, depth int) {
	ordinal := list.Start
	for c := list.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		var spans []Span
		var nested []*ast.List
		for cc := item.FirstChild(); cc != nil; cc = cc.NextSibling() {
			switch inner := cc.(type) {
			case *ast.List:
				nested = append(nested, inner)
			case *ast.TextBlock, *ast.Paragraph:
				part := p.spans(inner)
				if len(spans) > 0 && len(part) > 0 {
					spans = appendSpan(spans, "\n", false)
				}
				spans = mergeSpans(spans, part)
			}
		}
		p.blocks = append(p.blocks, ListItem{
			Depth:   depth,
			Ordered: list.IsOrdered(),
			Ordinal: ordinal,
			Spans:   spans,
		})
		if list.IsOrdered() {
			ordinal++
		}
		for _, sub := range nested {
			p.list(sub, depth+1)
		}
	}
}

func (p *docParser) table(tbl *east.Table) {
	for c := tbl.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			p.tableRow(row)
		case *east.TableRow:
			p.tableRow(row)
		}
	}
}

func (p *docParser) tableRow(row ast.Node) {
	var cells [][]Span
	blank := true
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cell, ok := c.(*east.TableCell)
		if !ok {
			continue
		}
		spans := p.spans(cell)
		if !spansBlank(spans) {
			blank = false
		}
		cells = append(cells, spans)
	}
	if blank {
		return
	}
	p.blocks = append(p.blocks, TableRow{Cells: cells})
}

// codeBlock renders code as a plain paragraph. Line structure is kept
// through forced breaks; the body font is monospace anyway.
func (p *docParser) codeBlock(n ast.Node) {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(p.src))
	}
	code := strings.TrimRight(sb.String(), "\n")
	if code == "" {
		return
	}
	p.blocks = append(p.blocks, Paragraph{Spans: []Span{{Text: code}}})
}

// spans collects the inline content of a block node into style runs.
func (p *docParser) spans(n ast.Node) []Span {
	return p.inline(nil, n, false)
}

func (p *docParser) inline(spans []Span, n ast.Node, bold bool) []Span {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch inner := c.(type) {
		case *ast.Text:
			spans = appendSpan(spans, string(inner.Segment.Value(p.src)), bold)
			if inner.HardLineBreak() {
				spans = appendSpan(spans, "\n", bold)
			} else if inner.SoftLineBreak() {
				spans = appendSpan(spans, " ", bold)
			}
		case *ast.String:
			spans = appendSpan(spans, string(inner.Value), bold)
		case *ast.Emphasis:
			spans = p.inline(spans, inner, bold || inner.Level >= 2)
		case *ast.Link:
			spans = p.inline(spans, inner, bold)
		case *ast.AutoLink:
			spans = appendSpan(spans, string(inner.URL(p.src)), bold)
		case *ast.RawHTML:
			// Dropped, same as HTML blocks.
		default:
			spans = p.inline(spans, inner, bold)
		}
	}
	return spans
}

// appendSpan grows the span list, merging adjacent same-style runs.
func appendSpan(spans []Span, text string, bold bool) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Bold == bold {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Bold: bold})
}

func mergeSpans(spans []Span, more []Span) []Span {
	for _, s := range more {
		spans = appendSpan(spans, s.Text, s.Bold)
	}
	return spans
}

func spansBlank(spans []Span) bool {
	for _, s := range spans {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}
