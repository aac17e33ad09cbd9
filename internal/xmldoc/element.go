package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Attr is a single element attribute. Namespaces are dropped; descriptor
// files never rely on them.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of a parsed descriptor document. Attributes and children
// keep document order.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// BoolAttr interprets "true" (any case) as true. A present but empty
// attribute also counts as true, matching exported="" in module files.
func (e *Element) BoolAttr(name string) bool {
	v, ok := e.Attr(name)
	if !ok {
		return false
	}
	return v == "" || strings.EqualFold(v, "true")
}

// Child returns the first direct child with the given name.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name.
func (e *Element) ChildrenNamed(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// FindComponent returns the <component name="..."> child of e. Shard files
// under .idea/libraries and .idea/artifacts have the component as their
// root, so e itself is returned when it matches.
func (e *Element) FindComponent(name string) *Element {
	if e == nil {
		return nil
	}
	if e.Name == "component" && e.AttrOr("name", "") == name {
		return e
	}
	for _, c := range e.ChildrenNamed("component") {
		if c.AttrOr("name", "") == name {
			return c
		}
	}
	return nil
}

// Expand returns a deep copy of e with fn applied to every attribute value
// and text node. A nil fn yields a plain copy.
func (e *Element) Expand(fn func(string) string) *Element {
	if e == nil {
		return nil
	}
	if fn == nil {
		fn = func(s string) string { return s }
	}
	out := &Element{
		Name: e.Name,
		Text: fn(e.Text),
	}
	if len(e.Attrs) > 0 {
		out.Attrs = make([]Attr, len(e.Attrs))
		for i, a := range e.Attrs {
			out.Attrs[i] = Attr{Name: a.Name, Value: fn(a.Value)}
		}
	}
	if len(e.Children) > 0 {
		out.Children = make([]*Element, len(e.Children))
		for i, c := range e.Children {
			out.Children[i] = c.Expand(fn)
		}
	}
	return out
}

// Parse reads a whole document and returns its root element.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = true

	var root *Element
	var stack []*Element
	var text []*strings.Builder

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("multiple root elements: %q after %q", el.Name, root.Name)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text = append(text, &strings.Builder{})
		case xml.CharData:
			if len(stack) > 0 {
				text[len(text)-1].Write(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			el.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}
