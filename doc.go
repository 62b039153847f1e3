// Package mdpdf parses Markdown into a small block model for PDF
// typesetting.
//
// The root package owns the data model and the goldmark front-end; the
// pdf subpackage lays blocks out on pages and serializes the result to
// a self-contained PDF 1.4 buffer with no external formatting library.
//
// Core properties:
//   - Four block kinds: headings, paragraphs, list items, table rows
//   - Inline styling limited to normal and bold runs
//   - Whole-input parsing; rendering is pure and byte-deterministic
//
// Example:
//
//	blocks, err := mdpdf.Parse([]byte("# Hello\n\nMarkdown in, PDF out.\n"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	buf, err := pdf.Render(pdf.Request{Blocks: blocks, Title: "Hello"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = os.WriteFile("hello.pdf", buf, 0o644)
package mdpdf
