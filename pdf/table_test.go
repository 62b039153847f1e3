package pdf

import (
	"testing"

	"pkt.systems/mdpdf"
)

func row(cells ...string) mdpdf.TableRow {
	r := mdpdf.TableRow{}
	for _, c := range cells {
		r.Cells = append(r.Cells, plainSpans(c))
	}
	return r
}

func TestTableSharedColumnPositions(t *testing.T) {
	blocks := []mdpdf.Block{
		row("alpha", "b", "gamma"),
		row("a", "beta", "g"),
		row("aa", "bb", "gg"),
	}
	pages := mustLayout(t, blocks, Config{})
	ops := pages[0].Ops
	if len(ops) != 9 {
		t.Fatalf("expected 9 cell ops, got %d", len(ops))
	}
	// Column widths are the widest cell per column: 5, 4, 5.
	cw := charWidth(9)
	wantX := []float64{40, 40 + 6*cw, 40 + 11*cw}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			op := ops[3*r+c]
			if !approx(op.X, wantX[c]) {
				t.Fatalf("row %d col %d: expected x=%g, got %g", r, c, wantX[c], op.X)
			}
			if !approx(op.Y, 802-float64(r)*14.4) {
				t.Fatalf("row %d col %d: unexpected baseline %g", r, c, op.Y)
			}
		}
	}
	// Cells are right-aligned by left padding inside the op text.
	if ops[3].Text != "    a" {
		t.Fatalf("expected right-aligned cell %q, got %q", "    a", ops[3].Text)
	}
	if ops[1].Text != "   b" {
		t.Fatalf("expected right-aligned cell %q, got %q", "   b", ops[1].Text)
	}
}

func TestTableShrinksWidestColumn(t *testing.T) {
	// 11 printable columns; widths 8 and 4 must shrink to 6 and 4.
	cfg := Config{PageWidth: 108, Margin: 20, FontSize: 10, LineHeight: 1.5}
	blocks := []mdpdf.Block{row("aaaaaaaa", "bbbb")}
	pages := mustLayout(t, blocks, cfg)
	ops := pages[0].Ops
	if len(ops) != 2 {
		t.Fatalf("expected 2 cell ops, got %d", len(ops))
	}
	if ops[0].Text != "aaaaa…" {
		t.Fatalf("expected truncated cell %q, got %q", "aaaaa…", ops[0].Text)
	}
	if ops[1].Text != "bbbb" {
		t.Fatalf("expected untouched cell %q, got %q", "bbbb", ops[1].Text)
	}
	if !approx(ops[1].X, 20+7*charWidth(10)) {
		t.Fatalf("expected second column at %g, got %g", 20+7*charWidth(10), ops[1].X)
	}
}

func TestColumnWidths(t *testing.T) {
	rows := []mdpdf.TableRow{
		row("aaaaaaaa", "bbbb"),
		row("a", "bb"),
	}
	got := columnWidths(rows, 11)
	if len(got) != 2 || got[0] != 6 || got[1] != 4 {
		t.Fatalf("expected widths [6 4], got %v", got)
	}
}

func TestShrinkToFit(t *testing.T) {
	cases := []struct {
		widths []int
		limit  int
		want   []int
	}{
		{[]int{5, 5}, 9, []int{4, 4}},
		{[]int{5, 5}, 20, []int{5, 5}},
		{[]int{9, 2}, 8, []int{5, 2}},
		{[]int{1, 1}, 1, []int{1, 1}},
	}
	for _, tc := range cases {
		widths := append([]int(nil), tc.widths...)
		shrinkToFit(widths, tc.limit)
		for i := range tc.want {
			if widths[i] != tc.want[i] {
				t.Fatalf("shrink(%v, %d): expected %v, got %v", tc.widths, tc.limit, tc.want, widths)
			}
		}
	}
}

func TestTableBoldCellFace(t *testing.T) {
	r := mdpdf.TableRow{Cells: [][]mdpdf.Span{
		{{Text: "key", Bold: true}},
		{{Text: "value"}},
	}}
	pages := mustLayout(t, []mdpdf.Block{r}, Config{})
	ops := pages[0].Ops
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(ops))
	}
	if ops[0].Face != FaceBold {
		t.Fatalf("expected bold cell, got %v", ops[0].Face)
	}
	if ops[1].Face != FaceRegular {
		t.Fatalf("expected regular cell, got %v", ops[1].Face)
	}
}

func TestTableBlankRowSkipped(t *testing.T) {
	blocks := []mdpdf.Block{
		row("a", "b"),
		row("  ", " "),
		row("c", "d"),
	}
	pages := mustLayout(t, blocks, Config{})
	ops := pages[0].Ops
	if len(ops) != 4 {
		t.Fatalf("expected 4 ops from two visible rows, got %d", len(ops))
	}
	if !approx(ops[2].Y, 802-14.4) {
		t.Fatalf("expected rows on adjacent baselines, got %g", ops[2].Y)
	}
}

func TestTableColumnlessRowSplitsRuns(t *testing.T) {
	blocks := []mdpdf.Block{
		row("wide-cell-one", "x"),
		mdpdf.TableRow{},
		row("y", "wide-cell-two"),
	}
	pages := mustLayout(t, blocks, Config{})
	ops := pages[0].Ops
	if len(ops) != 4 {
		t.Fatalf("expected 4 ops, got %d", len(ops))
	}
	cw := charWidth(9)
	// Independent runs size their columns independently.
	if !approx(ops[1].X, 40+14*cw) {
		t.Fatalf("first run col 2: expected x=%g, got %g", 40+14*cw, ops[1].X)
	}
	if !approx(ops[3].X, 40+2*cw) {
		t.Fatalf("second run col 2: expected x=%g, got %g", 40+2*cw, ops[3].X)
	}
	if !approx(ops[2].Y, 802-14.4-8) {
		t.Fatalf("expected second run after the first run's gap, got %g", ops[2].Y)
	}
}
