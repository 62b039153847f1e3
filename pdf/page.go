package pdf

// Face selects one of the two document fonts.
type Face int

const (
	FaceRegular Face = iota
	FaceBold
)

// TextOp places one run of text at an absolute baseline. A visual line
// of mixed styles becomes several ops sharing the same baseline.
type TextOp struct {
	Text string
	X    float64
	Y    float64
	Face Face
	Size float64
}

// Page is an ordered list of text operations plus its own media size,
// so the writer needs no geometry beyond the pages themselves.
type Page struct {
	Width  float64
	Height float64
	Ops    []TextOp
}
