package xmlio

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gohealth/itemtypes/pool"
)

// Attr is an attribute on a start element.
type Attr struct {
	Name  string
	Value string
}

// Writer emits XML elements in exactly the order the caller issues them.
// It buffers output in a pooled byte buffer; call Close when done to
// return the buffer to the pool.
//
// Writer methods do not return errors; the first structural misuse
// (unbalanced EndElement, Bytes with open elements) is recorded and
// surfaced from Bytes.
type Writer struct {
	buf    *bytes.Buffer
	stack  []frame
	indent bool
	err    error
}

type frame struct {
	name        string
	hasChildren bool
	hasText     bool
}

// NewWriter creates a Writer producing compact output.
func NewWriter() *Writer {
	return &Writer{buf: pool.AcquireBuffer()}
}

// NewIndentWriter creates a Writer producing two-space indented output.
func NewIndentWriter() *Writer {
	return &Writer{buf: pool.AcquireBuffer(), indent: true}
}

// Close returns the internal buffer to the pool. The Writer must not be
// used afterwards.
func (w *Writer) Close() {
	if w.buf != nil {
		pool.ReleaseBuffer(w.buf)
		w.buf = nil
	}
}

// StartElement opens an element.
func (w *Writer) StartElement(name string) {
	w.StartElementAttrs(name)
}

// StartElementAttrs opens an element with attributes.
func (w *Writer) StartElementAttrs(name string, attrs ...Attr) {
	if w.err != nil {
		return
	}
	w.beforeChild()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.Name)
		w.buf.WriteString(`="`)
		w.escape(a.Value)
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
	w.stack = append(w.stack, frame{name: name})
}

// EndElement closes the most recently opened element.
func (w *Writer) EndElement() {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.err = errors.New("xmlio: EndElement without matching StartElement")
		return
	}
	f := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.indent && f.hasChildren && !f.hasText {
		w.newline()
	}
	w.buf.WriteString("</")
	w.buf.WriteString(f.name)
	w.buf.WriteByte('>')
}

// WriteString writes <name>value</name>.
func (w *Writer) WriteString(name, value string) {
	w.WriteStringAttrs(name, value)
}

// WriteStringAttrs writes <name attrs...>value</name>.
func (w *Writer) WriteStringAttrs(name, value string, attrs ...Attr) {
	if w.err != nil {
		return
	}
	w.beforeChild()
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.Name)
		w.buf.WriteString(`="`)
		w.escape(a.Value)
		w.buf.WriteByte('"')
	}
	w.buf.WriteByte('>')
	w.escape(value)
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteByte('>')
}

// WriteEmpty writes <name></name>.
func (w *Writer) WriteEmpty(name string) {
	w.WriteString(name, "")
}

// Text appends character data inside the currently open element.
func (w *Writer) Text(value string) {
	if w.err != nil {
		return
	}
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].hasText = true
	}
	w.escape(value)
}

// WriteDouble writes a float64 scalar element.
func (w *Writer) WriteDouble(name string, v float64) {
	w.WriteString(name, FormatDouble(v))
}

// WriteInt writes an int scalar element.
func (w *Writer) WriteInt(name string, v int) {
	w.WriteString(name, strconv.Itoa(v))
}

// WriteBool writes a bool scalar element as "true"/"false".
func (w *Writer) WriteBool(name string, v bool) {
	w.WriteString(name, strconv.FormatBool(v))
}

// WriteDecimal writes a decimal scalar element.
func (w *Writer) WriteDecimal(name string, v decimal.Decimal) {
	w.WriteString(name, v.String())
}

// --- Optional writers: nil values emit nothing ---

// WriteOptString writes the element only when v is non-nil.
func (w *Writer) WriteOptString(name string, v *string) {
	if v != nil {
		w.WriteString(name, *v)
	}
}

// WriteOptDouble writes the element only when v is non-nil.
func (w *Writer) WriteOptDouble(name string, v *float64) {
	if v != nil {
		w.WriteDouble(name, *v)
	}
}

// WriteOptInt writes the element only when v is non-nil.
func (w *Writer) WriteOptInt(name string, v *int) {
	if v != nil {
		w.WriteInt(name, *v)
	}
}

// WriteOptBool writes the element only when v is non-nil.
func (w *Writer) WriteOptBool(name string, v *bool) {
	if v != nil {
		w.WriteBool(name, *v)
	}
}

// WriteOptDecimal writes the element only when v is non-nil.
func (w *Writer) WriteOptDecimal(name string, v *decimal.Decimal) {
	if v != nil {
		w.WriteDecimal(name, *v)
	}
}

// Bytes returns the document written so far. It errors if any element is
// still open or a structural misuse occurred.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if len(w.stack) != 0 {
		return nil, errors.New("xmlio: unclosed element " + w.stack[len(w.stack)-1].name)
	}
	// Copy out so Close can recycle the buffer
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out, nil
}

// FormatDouble renders a float64 the way the wire format expects:
// shortest representation that round-trips.
func FormatDouble(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (w *Writer) beforeChild() {
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].hasChildren = true
		if w.indent {
			w.newline()
		}
	}
}

func (w *Writer) newline() {
	w.buf.WriteByte('\n')
	for i := 0; i < len(w.stack); i++ {
		w.buf.WriteString("  ")
	}
}

func (w *Writer) escape(s string) {
	// xml.EscapeText never fails on a bytes.Buffer
	_ = xml.EscapeText(w.buf, []byte(s))
}
