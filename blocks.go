package mdpdf

// Span is a run of text with a single style. Spans are value types and
// are not mutated after construction.
type Span struct {
	Text string
	Bold bool
}

// Block is one semantic unit of parsed content. The concrete types are
// Heading, Paragraph, ListItem and TableRow; block order is significant
// and preserved through rendering.
type Block interface {
	block()
}

// Heading is a section heading at levels 1 through 6.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a run of body text.
type Paragraph struct {
	Spans []Span
}

// ListItem is a single bulleted or numbered item. Depth counts nesting
// steps from zero. Ordinal carries the item number when Ordered is
// true; it is kept separate from Ordered because list numbering may
// legally start at zero.
type ListItem struct {
	Depth   int
	Ordered bool
	Ordinal int
	Spans   []Span
}

// TableRow is one table row. Consecutive TableRow blocks form a single
// table whose column widths are computed together.
type TableRow struct {
	Cells [][]Span
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (ListItem) block()  {}
func (TableRow) block()  {}
