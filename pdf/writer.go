package pdf

import (
	"bytes"
	"fmt"
)

// document is an arena of objects; an object's id is its index plus
// one, and every Ref resolves within the arena by construction.
type document struct {
	objs []Object
}

func (d *document) add(obj Object) Ref {
	d.objs = append(d.objs, obj)
	return Ref(len(d.objs))
}

// Write serializes pages into a complete PDF 1.4 buffer. The emission
// order is fixed: catalog, page tree, then per page its content stream
// immediately followed by its page object, the two standard font
// objects, and the info dictionary carrying the title. Every object's
// starting byte offset is recorded during emission and listed in the
// cross-reference table; the buffer ends with the trailer and the EOF
// marker. Output depends only on the inputs.
func Write(pages []Page, title string) ([]byte, error) {
	if len(pages) == 0 {
		cfg := DefaultConfig()
		pages = []Page{{Width: cfg.PageWidth, Height: cfg.PageHeight}}
	}

	titleText, err := encodeText(sanitizeTitle(title))
	if err != nil {
		return nil, fmt.Errorf("pdf write: title: %w", err)
	}

	n := len(pages)
	pagesID := Ref(2)
	pageID := func(i int) Ref { return Ref(4 + 2*i) }
	contentID := func(i int) Ref { return Ref(3 + 2*i) }
	fontRegularID := Ref(2*n + 3)
	fontBoldID := Ref(2*n + 4)

	var doc document
	catalogID := doc.add(Dict{
		{"Type", Name("Catalog")},
		{"Pages", pagesID},
	})

	kids := make(Array, n)
	for i := range pages {
		kids[i] = pageID(i)
	}
	doc.add(Dict{
		{"Type", Name("Pages")},
		{"Count", Integer(n)},
		{"Kids", kids},
	})

	for i, page := range pages {
		content, err := contentStream(page)
		if err != nil {
			return nil, fmt.Errorf("pdf write: page %d: %w", i+1, err)
		}
		doc.add(Stream{Data: content})
		doc.add(Dict{
			{"Type", Name("Page")},
			{"Parent", pagesID},
			{"MediaBox", Array{Integer(0), Integer(0), Real(page.Width), Real(page.Height)}},
			{"Resources", Dict{
				{"Font", Dict{
					{"F1", fontRegularID},
					{"F2", fontBoldID},
				}},
			}},
			{"Contents", contentID(i)},
		})
	}

	doc.add(fontDict("Courier"))
	doc.add(fontDict("Courier-Bold"))
	infoID := doc.add(Dict{
		{"Title", String(titleText)},
	})

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(doc.objs)+1)
	for i, obj := range doc.objs {
		id := i + 1
		offsets[id] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", id)
		obj.writeTo(&buf)
		buf.WriteString("\nendobj\n")
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(doc.objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(doc.objs)+1, int(catalogID), int(infoID), xrefOffset)

	verifyOffsets(buf.Bytes(), offsets)
	return buf.Bytes(), nil
}

func fontDict(base string) Dict {
	return Dict{
		{"Type", Name("Font")},
		{"Subtype", Name("Type1")},
		{"BaseFont", Name(base)},
		{"Encoding", Name("WinAnsiEncoding")},
	}
}

// contentStream translates one page's ops into drawing instructions:
// select font and size, set the absolute baseline via the text matrix,
// show the text.
func contentStream(page Page) ([]byte, error) {
	var buf bytes.Buffer
	for _, op := range page.Ops {
		encoded, err := encodeText(op.Text)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, "BT /%s %.2f Tf 1 0 0 1 %.2f %.2f Tm (%s) Tj ET\n",
			fontResource(op.Face), op.Size, op.X, op.Y, escapeText(encoded))
	}
	return buf.Bytes(), nil
}

func fontResource(face Face) string {
	if face == FaceBold {
		return "F2"
	}
	return "F1"
}

// verifyOffsets confirms each recorded offset addresses its object
// header. Offsets and bytes come from the same emission pass, so a
// mismatch is an unrecoverable writer defect, not a runtime condition.
func verifyOffsets(buf []byte, offsets []int) {
	for id := 1; id < len(offsets); id++ {
		header := []byte(fmt.Sprintf("%d 0 obj", id))
		off := offsets[id]
		if off < 0 || off >= len(buf) || !bytes.HasPrefix(buf[off:], header) {
			panic(fmt.Sprintf("pdf: recorded offset %d does not address object %d", off, id))
		}
	}
}
