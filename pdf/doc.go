// Package pdf lays out parsed blocks and serializes them as a
// self-contained PDF 1.4 document.
//
// The layout engine flows blocks onto pages with greedy monospace line
// wrapping and an explicit page-break policy; the writer builds the
// object graph (catalog, page tree, content streams, two standard
// Type1 fonts) and emits it with an exact cross-reference table.
// Rendering is deterministic: the same blocks and configuration always
// produce the same bytes.
//
// Example:
//
//	blocks, err := mdpdf.Parse(src)
//	if err != nil {
//		log.Fatal(err)
//	}
//	cfg := pdf.DefaultConfig()
//	cfg.FontSize = 10
//
//	buf, err := pdf.Render(pdf.Request{Blocks: blocks, Title: "CV", Config: cfg})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = os.WriteFile("cv.pdf", buf, 0o644)
package pdf
