package markup

import (
	"iter"
	"strings"
)

// DocumentTag is the tag of the root Element returned by Parse.
const DocumentTag = "#document"

// Element is a single HTML element with its attributes and child elements.
// A parent exclusively owns its children; the tree is discarded once the
// caller has finished extracting from it.
type Element struct {
	// Tag is the lower-cased tag name (e.g. "script", "h3").
	Tag string

	// Attrs maps lower-cased attribute names to their values.
	// When an attribute is repeated, the first value wins.
	Attrs map[string]string

	// Children are the direct child elements in document order.
	Children []*Element
}

// newElement creates an Element with an initialized attribute map.
func newElement(tag string) *Element {
	return &Element{
		Tag:   strings.ToLower(tag),
		Attrs: make(map[string]string),
	}
}

// Is reports whether the element's tag equals tag, ignoring case.
func (e *Element) Is(tag string) bool {
	return strings.EqualFold(e.Tag, tag)
}

// Attr returns the value of the named attribute and whether it was present.
// Attribute names are matched case-insensitively.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[strings.ToLower(name)]
	return v, ok
}

// FirstChild returns the first direct child with the given tag, or nil.
func (e *Element) FirstChild(tag string) *Element {
	for _, c := range e.Children {
		if c.Is(tag) {
			return c
		}
	}
	return nil
}

// All returns a pre-order sequence over the element and all of its
// descendants. The sequence can be ranged over any number of times and
// always yields the same elements in the same order.
func (e *Element) All() iter.Seq[*Element] {
	return func(yield func(*Element) bool) {
		if e == nil {
			return
		}
		stack := []*Element{e}
		for len(stack) > 0 {
			n := len(stack) - 1
			el := stack[n]
			stack = stack[:n]

			if !yield(el) {
				return
			}

			// Push in reverse so the first child is visited next.
			for i := len(el.Children) - 1; i >= 0; i-- {
				stack = append(stack, el.Children[i])
			}
		}
	}
}

// Count returns the number of elements in the subtree rooted at e,
// including e itself.
func (e *Element) Count() int {
	n := 0
	for range e.All() {
		n++
	}
	return n
}
