package pdf

import (
	"strings"

	"pkt.systems/mdpdf"
)

// table renders one run of consecutive rows with shared column widths.
// Cells are right-aligned into fixed-width columns separated by a
// single space; overflow is truncated with an ellipsis, and a cell
// containing any bold span renders bold. Rows never wrap: one baseline
// per row.
func (c *composer) table(rows []mdpdf.TableRow) error {
	for _, row := range rows {
		for _, cell := range row.Cells {
			if err := checkSpans(cell); err != nil {
				return err
			}
		}
	}
	limit := c.limitCols(c.printableWidth(), c.cfg.FontSize)
	widths := columnWidths(rows, limit)
	if len(widths) == 0 {
		return nil
	}
	cw := charWidth(c.cfg.FontSize)
	lineH := c.baseLineHeight()
	emitted := false
	for _, row := range rows {
		if rowBlank(row) {
			continue
		}
		c.ensureSpace(lineH)
		x := c.cfg.Margin
		for i, width := range widths {
			var cell []mdpdf.Span
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}
			text := truncateWithEllipsis(cellText(cell), width)
			padded := strings.Repeat(" ", width-textColumns(text)) + text
			if strings.TrimSpace(padded) != "" {
				face := FaceRegular
				if cellBold(cell) {
					face = FaceBold
				}
				c.cur.Ops = append(c.cur.Ops, TextOp{
					Text: padded,
					X:    x,
					Y:    c.y,
					Face: face,
					Size: c.cfg.FontSize,
				})
			}
			x += float64(width+1) * cw
		}
		c.y -= lineH
		emitted = true
	}
	if emitted {
		c.y -= blockGapPoints
	}
	return nil
}

// columnWidths sizes each column to its widest cell across the table,
// then shrinks to fit the printable column count.
func columnWidths(rows []mdpdf.TableRow, limit int) []int {
	ncols := 0
	for _, row := range rows {
		if len(row.Cells) > ncols {
			ncols = len(row.Cells)
		}
	}
	widths := make([]int, ncols)
	for _, row := range rows {
		for i, cell := range row.Cells {
			if w := textColumns(cellText(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	shrinkToFit(widths, limit)
	return widths
}

// shrinkToFit repeatedly narrows the currently widest column (ties
// break leftmost) until the row, including its single-space
// separators, fits the limit. No column narrows below one character.
func shrinkToFit(widths []int, limit int) {
	if len(widths) == 0 {
		return
	}
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}
	for total > limit {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}

// cellText flattens a cell to a single line with normalized spacing.
func cellText(cell []mdpdf.Span) string {
	var sb strings.Builder
	for _, s := range cell {
		sb.WriteString(s.Text)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func cellBold(cell []mdpdf.Span) bool {
	for _, s := range cell {
		if s.Bold && strings.TrimSpace(s.Text) != "" {
			return true
		}
	}
	return false
}

func rowBlank(row mdpdf.TableRow) bool {
	for _, cell := range row.Cells {
		if cellText(cell) != "" {
			return false
		}
	}
	return true
}
