// Package xmlio provides the XML navigation and writing primitives the
// thing-type models consume.
//
// Navigator is a DOM-lite element tree parsed once from a byte slice;
// types read their fields through optional-value helpers that return nil
// when an element is absent. Writer emits elements in the exact order the
// caller issues them, which is how the fixed schema ordering of the wire
// format is preserved.
package xmlio

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoRoot is returned by Parse when the input contains no element.
var ErrNoRoot = errors.New("xmlio: no root element")

// ErrNoElement is returned by the required scalar readers when the
// named child is absent.
var ErrNoElement = errors.New("required element not found")

// Navigator is one element node in a parsed XML document. It supports
// child selection and typed scalar reads. Navigators are immutable after
// Parse and safe for concurrent reads.
type Navigator struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*Navigator
}

// Parse reads an XML document and returns the root element.
func Parse(data []byte) (*Navigator, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader reads an XML document from r and returns the root element.
func ParseReader(r io.Reader) (*Navigator, error) {
	dec := xml.NewDecoder(r)

	var root *Navigator
	var stack []*Navigator

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmlio: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Navigator{name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.attrs = append(n.attrs, t.Attr...)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xmlio: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("xmlio: unbalanced end element")
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, ErrNoRoot
	}
	if len(stack) != 0 {
		return nil, errors.New("xmlio: unexpected end of input")
	}
	return root, nil
}

// Name returns the element's local name.
func (n *Navigator) Name() string { return n.name }

// Text returns the element's character data with surrounding whitespace
// trimmed.
func (n *Navigator) Text() string { return strings.TrimSpace(n.text) }

// Attr returns the named attribute value, or "" if absent.
func (n *Navigator) Attr(name string) string {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func (n *Navigator) HasAttr(name string) bool {
	for _, a := range n.attrs {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Children returns the element's child elements in document order.
func (n *Navigator) Children() []*Navigator { return n.children }

// SelectSingle returns the first child element with the given name, or
// nil if no such child exists.
func (n *Navigator) SelectSingle(name string) *Navigator {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Select returns all child elements with the given name in document
// order.
func (n *Navigator) Select(name string) []*Navigator {
	var out []*Navigator
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and every descendant in document order. The path handed
// to visit is slash-separated element names rooted at n. Returning an
// error from visit stops the walk with that error.
func (n *Navigator) Walk(visit func(path string, node *Navigator) error) error {
	return n.walk(n.name, visit)
}

func (n *Navigator) walk(path string, visit func(string, *Navigator) error) error {
	if err := visit(path, n); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.walk(path+"/"+c.name, visit); err != nil {
			return err
		}
	}
	return nil
}

// --- Optional scalar readers ---
//
// Each returns nil when the named child element is absent, the typed
// value when present, and an error only when the content is malformed.

// OptString returns the named child's text, or nil if absent.
func (n *Navigator) OptString(name string) *string {
	c := n.SelectSingle(name)
	if c == nil {
		return nil
	}
	s := c.Text()
	return &s
}

// OptDouble returns the named child as a float64, or nil if absent.
func (n *Navigator) OptDouble(name string) (*float64, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(c.Text(), 64)
	if err != nil {
		return nil, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return &v, nil
}

// OptInt returns the named child as an int, or nil if absent.
func (n *Navigator) OptInt(name string) (*int, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(c.Text())
	if err != nil {
		return nil, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return &v, nil
}

// OptBool returns the named child as a bool, or nil if absent.
func (n *Navigator) OptBool(name string) (*bool, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	v, err := strconv.ParseBool(c.Text())
	if err != nil {
		return nil, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return &v, nil
}

// OptDecimal returns the named child as a decimal, or nil if absent.
func (n *Navigator) OptDecimal(name string) (*decimal.Decimal, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return nil, nil
	}
	v, err := decimal.NewFromString(c.Text())
	if err != nil {
		return nil, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return &v, nil
}

// --- Required scalar readers ---

// String returns the named child's text, erroring if the child is
// absent.
func (n *Navigator) String(name string) (string, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return "", fmt.Errorf("xmlio: element %q: %w", name, ErrNoElement)
	}
	return c.Text(), nil
}

// Double returns the named child as a float64, erroring if the child is
// absent or malformed.
func (n *Navigator) Double(name string) (float64, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return 0, fmt.Errorf("xmlio: element %q: %w", name, ErrNoElement)
	}
	v, err := strconv.ParseFloat(c.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return v, nil
}

// Int returns the named child as an int, erroring if the child is absent
// or malformed.
func (n *Navigator) Int(name string) (int, error) {
	c := n.SelectSingle(name)
	if c == nil {
		return 0, fmt.Errorf("xmlio: element %q: %w", name, ErrNoElement)
	}
	v, err := strconv.Atoi(c.Text())
	if err != nil {
		return 0, fmt.Errorf("xmlio: element %q: %w", name, err)
	}
	return v, nil
}
