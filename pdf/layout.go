package pdf

import (
	"fmt"
	"math"

	"pkt.systems/mdpdf"
)

const (
	// Courier advance width, 600/1000 em.
	charAdvanceFactor = 0.6
	// Indent per list nesting step, in points.
	listIndentPoints = 18.0
	// Vertical gap after a paragraph, list or table, in points.
	blockGapPoints = 8.0
	// Vertical gap between consecutive list items, in points.
	listItemGapPoints = 2.0

	// Extra lead above a heading and advance below it, as fractions
	// of the heading size.
	headingBeforeFactor = 0.35
	headingAfterFactor  = 1.3
)

func charWidth(size float64) float64 {
	return size * charAdvanceFactor
}

// Layout flows blocks onto pages. It owns every wrap and pagination
// decision; the writer only serializes the result. Zero config fields
// fall back to DefaultConfig. An empty block sequence still yields one
// valid page.
func Layout(blocks []mdpdf.Block, cfg Config) ([]Page, error) {
	base := DefaultConfig()
	applyConfig(&base, cfg)
	c := newComposer(base)
	if err := c.renderBlocks(blocks); err != nil {
		return nil, fmt.Errorf("pdf layout: %w", err)
	}
	return c.finish(), nil
}

type composer struct {
	cfg   Config
	pages []Page
	cur   Page
	y     float64
}

func newComposer(cfg Config) *composer {
	return &composer{
		cfg: cfg,
		cur: Page{Width: cfg.PageWidth, Height: cfg.PageHeight},
		y:   cfg.PageHeight - cfg.Margin,
	}
}

func (c *composer) baseLineHeight() float64 {
	return c.cfg.FontSize * c.cfg.LineHeight
}

func (c *composer) printableWidth() float64 {
	return c.cfg.PageWidth - 2*c.cfg.Margin
}

// limitCols converts a width in points to a column count at the given
// font size, never below one column.
func (c *composer) limitCols(width, size float64) int {
	cw := charWidth(size)
	if cw <= 0 {
		return 1
	}
	cols := int(math.Floor(width / cw))
	if cols < 1 {
		return 1
	}
	return cols
}

// ensureSpace seals the page when advancing by required points would
// push the next baseline below the bottom margin.
func (c *composer) ensureSpace(required float64) {
	if c.y-required < c.cfg.Margin {
		c.seal()
	}
}

func (c *composer) seal() {
	c.pages = append(c.pages, c.cur)
	c.cur = Page{Width: c.cfg.PageWidth, Height: c.cfg.PageHeight}
	c.y = c.cfg.PageHeight - c.cfg.Margin
}

// finish appends the working page when it holds content, or alone for
// empty input, and returns the page sequence.
func (c *composer) finish() []Page {
	if len(c.cur.Ops) > 0 || len(c.pages) == 0 {
		c.pages = append(c.pages, c.cur)
	}
	return c.pages
}

func (c *composer) renderBlocks(blocks []mdpdf.Block) error {
	for i := 0; i < len(blocks); i++ {
		switch b := blocks[i].(type) {
		case mdpdf.Heading:
			if err := c.heading(b); err != nil {
				return err
			}
		case mdpdf.Paragraph:
			if err := c.paragraph(b.Spans); err != nil {
				return err
			}
		case mdpdf.ListItem:
			_, nextIsItem := peek(blocks, i+1).(mdpdf.ListItem)
			if err := c.listItem(b, !nextIsItem); err != nil {
				return err
			}
		case mdpdf.TableRow:
			if len(b.Cells) == 0 {
				// A row without columns degenerates to a paragraph of
				// its concatenated cell text.
				if err := c.paragraph(flattenCells(b)); err != nil {
					return err
				}
				continue
			}
			run := []mdpdf.TableRow{b}
			for i+1 < len(blocks) {
				next, ok := blocks[i+1].(mdpdf.TableRow)
				if !ok || len(next.Cells) == 0 {
					break
				}
				run = append(run, next)
				i++
			}
			if err := c.table(run); err != nil {
				return err
			}
		}
	}
	return nil
}

func peek(blocks []mdpdf.Block, i int) mdpdf.Block {
	if i < 0 || i >= len(blocks) {
		return nil
	}
	return blocks[i]
}

func flattenCells(row mdpdf.TableRow) []mdpdf.Span {
	var spans []mdpdf.Span
	for _, cell := range row.Cells {
		spans = append(spans, cell...)
	}
	return spans
}

// emitLine writes one wrapped line's style runs at a shared baseline.
func (c *composer) emitLine(ln line, x, size float64) {
	for _, seg := range ln.segments {
		face := FaceRegular
		if seg.bold {
			face = FaceBold
		}
		c.cur.Ops = append(c.cur.Ops, TextOp{
			Text: seg.text,
			X:    x,
			Y:    c.y,
			Face: face,
			Size: size,
		})
		x += float64(textColumns(seg.text)) * charWidth(size)
	}
}

// heading renders at a level-scaled size in bold, with extra space
// before and after. Headings wrap at their own size but are never
// split across a page boundary: when the whole block does not fit the
// remaining space, the page is sealed first. The space before is
// suppressed at the top of a page.
func (c *composer) heading(h mdpdf.Heading) error {
	if err := checkSpans(h.Spans); err != nil {
		return err
	}
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	size := c.cfg.FontSize * c.cfg.HeadingScale[level-1]
	if size <= 0 {
		size = c.cfg.FontSize
	}

	spans := make([]mdpdf.Span, len(h.Spans))
	for i, s := range h.Spans {
		spans[i] = mdpdf.Span{Text: s.Text, Bold: true}
	}
	limit := c.limitCols(c.printableWidth(), size)
	lines := wrapTokens(collectTokens(spans), limit, limit)
	if len(lines) == 0 {
		return nil
	}

	lineH := size * c.cfg.LineHeight
	after := math.Max(c.baseLineHeight(), size*headingAfterFactor)
	before := 0.0
	if len(c.cur.Ops) > 0 {
		before = size * headingBeforeFactor
	}
	required := before + float64(len(lines)-1)*lineH + after
	if c.y-required < c.cfg.Margin && len(c.cur.Ops) > 0 {
		c.seal()
		before = 0
	}
	c.y -= before
	for i, ln := range lines {
		x := c.cfg.Margin
		if level == 1 {
			w := float64(ln.columns()) * charWidth(size)
			x = math.Max((c.cfg.PageWidth-w)/2, c.cfg.Margin)
		}
		c.emitLine(ln, x, size)
		if i == len(lines)-1 {
			c.y -= after
		} else {
			c.y -= lineH
		}
	}
	return nil
}

// paragraph wraps at body size and may split at any line boundary.
func (c *composer) paragraph(spans []mdpdf.Span) error {
	if err := checkSpans(spans); err != nil {
		return err
	}
	limit := c.limitCols(c.printableWidth(), c.cfg.FontSize)
	lines := wrapTokens(collectTokens(spans), limit, limit)
	if len(lines) == 0 {
		return nil
	}
	lineH := c.baseLineHeight()
	for _, ln := range lines {
		c.ensureSpace(lineH)
		c.emitLine(ln, c.cfg.Margin, c.cfg.FontSize)
		c.y -= lineH
	}
	c.y -= blockGapPoints
	return nil
}

// listItem renders a bullet or ordinal prefix and hangs continuation
// lines under the first character of the item text.
func (c *composer) listItem(item mdpdf.ListItem, lastOfRun bool) error {
	if err := checkSpans(item.Spans); err != nil {
		return err
	}
	prefix := "• "
	if item.Ordered {
		prefix = fmt.Sprintf("%d. ", item.Ordinal)
	}
	depth := item.Depth
	if depth < 0 {
		depth = 0
	}
	indent := float64(depth) * listIndentPoints
	cw := charWidth(c.cfg.FontSize)
	prefixWidth := float64(textColumns(prefix)) * cw
	limit := c.limitCols(c.printableWidth()-indent-prefixWidth, c.cfg.FontSize)
	lines := wrapTokens(collectTokens(item.Spans), limit, limit)
	if len(lines) == 0 {
		return nil
	}
	lineH := c.baseLineHeight()
	x := c.cfg.Margin + indent
	for i, ln := range lines {
		c.ensureSpace(lineH)
		if i == 0 {
			c.cur.Ops = append(c.cur.Ops, TextOp{
				Text: prefix,
				X:    x,
				Y:    c.y,
				Face: FaceRegular,
				Size: c.cfg.FontSize,
			})
		}
		c.emitLine(ln, x+prefixWidth, c.cfg.FontSize)
		c.y -= lineH
	}
	if lastOfRun {
		c.y -= blockGapPoints
	} else {
		c.y -= listItemGapPoints
	}
	return nil
}
