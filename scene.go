package main

import "strings"

// --- Scene Graph ---

// property is one ordered name/value pair. Attributes and inline styles keep
// insertion order so serialised output is stable across runs.
type property struct {
	name  string
	value string
}

type properties []property

func (p *properties) set(name, value string) {
	for i := range *p {
		if (*p)[i].name == name {
			(*p)[i].value = value
			return
		}
	}
	*p = append(*p, property{name: name, value: value})
}

func (p properties) get(name string) (string, bool) {
	for _, prop := range p {
		if prop.name == name {
			return prop.value, true
		}
	}
	return "", false
}

// Element is a node of the DOM-like tree the gauge draws into. The host hands
// the renderer a container Element; everything below it is owned by the
// renderer.
type Element struct {
	Tag string

	classes  []string
	attrs    properties
	styles   properties
	text     string
	parent   *Element
	children []*Element
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Append creates a child element with the given tag as the last child.
func (e *Element) Append(tag string) *Element {
	child := &Element{Tag: tag, parent: e}
	e.children = append(e.children, child)
	return child
}

// InsertBefore creates a child element placed immediately before ref. A ref
// that is nil or not a child of e appends instead.
func (e *Element) InsertBefore(tag string, ref *Element) *Element {
	idx := e.indexOf(ref)
	if idx < 0 {
		return e.Append(tag)
	}
	child := &Element{Tag: tag, parent: e}
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = child
	return child
}

// Remove detaches e from its parent. Removing a detached element is a no-op.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	p := e.parent
	if idx := p.indexOf(e); idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	e.parent = nil
}

func (e *Element) indexOf(child *Element) int {
	if child == nil {
		return -1
	}
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// Classed adds or removes a class name.
func (e *Element) Classed(name string, on bool) *Element {
	has := e.HasClass(name)
	switch {
	case on && !has:
		e.classes = append(e.classes, name)
	case !on && has:
		kept := e.classes[:0]
		for _, c := range e.classes {
			if c != name {
				kept = append(kept, c)
			}
		}
		e.classes = kept
	}
	return e
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.classes {
		if c == name {
			return true
		}
	}
	return false
}

// Attr sets an attribute.
func (e *Element) Attr(name, value string) *Element {
	e.attrs.set(name, value)
	return e
}

// AttrValue returns an attribute value and whether it was set.
func (e *Element) AttrValue(name string) (string, bool) {
	return e.attrs.get(name)
}

// Style sets an inline style property.
func (e *Element) Style(name, value string) *Element {
	e.styles.set(name, value)
	return e
}

// StyleValue returns an inline style value and whether it was set.
func (e *Element) StyleValue(name string) (string, bool) {
	return e.styles.get(name)
}

// Text replaces the text content.
func (e *Element) Text(s string) *Element {
	e.text = s
	return e
}

// TextContent returns the element's own text content.
func (e *Element) TextContent() string {
	return e.text
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// SelectAll returns every descendant carrying the class, in document order.
func (e *Element) SelectAll(class string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			if c.HasClass(class) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// classAttr renders the class list the way it appears in markup.
func (e *Element) classAttr() string {
	return strings.Join(e.classes, " ")
}

// styleAttr renders inline styles as a CSS declaration list.
func (e *Element) styleAttr() string {
	parts := make([]string, 0, len(e.styles))
	for _, s := range e.styles {
		parts = append(parts, s.name+": "+s.value)
	}
	return strings.Join(parts, "; ")
}
