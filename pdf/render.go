package pdf

import (
	"fmt"

	"pkt.systems/mdpdf"
)

// Request contains inputs for one document render.
type Request struct {
	Blocks []mdpdf.Block
	Title  string
	Config Config
}

// Render lays the blocks out with the merged configuration and
// serializes the result. It is a pure function: identical requests
// produce byte-identical buffers, and concurrent calls need no
// coordination. The caller owns all file I/O.
func Render(req Request) ([]byte, error) {
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)
	printable := cfg.PageWidth - 2*cfg.Margin
	if printable <= 0 || cfg.PageHeight <= 2*cfg.Margin {
		return nil, fmt.Errorf("pdf render: margin %g leaves no printable area on a %gx%g page",
			cfg.Margin, cfg.PageWidth, cfg.PageHeight)
	}
	if cols := int(printable / charWidth(cfg.FontSize)); cols < 10 {
		return nil, fmt.Errorf("pdf render: page too narrow for content (cols=%d)", cols)
	}
	pages, err := Layout(req.Blocks, cfg)
	if err != nil {
		return nil, err
	}
	return Write(pages, req.Title)
}
