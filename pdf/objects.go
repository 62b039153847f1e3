package pdf

import (
	"bytes"
	"fmt"
)

// Object is a serializable PDF object. The concrete types are Name,
// Integer, Real, String, Array, Dict, Ref and Stream; references are
// plain ids into the document's object table.
type Object interface {
	writeTo(buf *bytes.Buffer)
}

// Name is a PDF name such as /Catalog.
type Name string

func (n Name) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('/')
	buf.WriteString(string(n))
}

// Integer is a whole number.
type Integer int

func (i Integer) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%d", int(i))
}

// Real is a fractional number, serialized with exactly two decimals so
// output stays byte-identical across platforms and locales.
type Real float64

func (r Real) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%.2f", float64(r))
}

// String is literal string data, already in the document encoding; it
// is escaped on write.
type String []byte

func (s String) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('(')
	buf.Write(escapeText(s))
	buf.WriteByte(')')
}

// Array is an ordered collection of objects.
type Array []Object

func (a Array) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, obj := range a {
		if i > 0 {
			buf.WriteByte(' ')
		}
		obj.writeTo(buf)
	}
	buf.WriteByte(']')
}

// Entry is one Dict key/value pair.
type Entry struct {
	Key Name
	Val Object
}

// Dict is a dictionary with a fixed entry order. Ordered entries
// instead of a map keep serialization deterministic.
type Dict []Entry

func (d Dict) writeTo(buf *bytes.Buffer) {
	buf.WriteString("<<")
	for _, e := range d {
		buf.WriteByte(' ')
		e.Key.writeTo(buf)
		buf.WriteByte(' ')
		e.Val.writeTo(buf)
	}
	buf.WriteString(" >>")
}

// Ref is an indirect reference to the object with that id.
type Ref int

func (r Ref) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%d 0 R", int(r))
}

// Stream is a content stream; its length is derived from the data on
// write. Streams are never compressed.
type Stream struct {
	Data []byte
}

func (s Stream) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "<< /Length %d >>\nstream\n", len(s.Data))
	buf.Write(s.Data)
	buf.WriteString("\nendstream")
}
