package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Parse builds an element tree from raw HTML text.
//
// The text is taken as already-decoded UTF-8. Encoding declarations inside
// the markup (<meta charset>, http-equiv Content-Type) are not honoured;
// x/net/html never re-decodes its input.
//
// Structurally broken markup never fails. The HTML5 parser closes
// unterminated tags at EOF, drops stray end tags and keeps unknown tags as
// ordinary elements. Input it refuses, such as markup nested past its open
// element limit, is rebuilt from the raw token stream instead; elements
// below a fixed depth become leaves there. Parse only fails on empty or
// non-text input.
func Parse(text string) (*Element, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Err: ErrEmptyDocument}
	}
	if strings.IndexByte(text, 0) >= 0 {
		return nil, &ParseError{Err: ErrBinaryDocument}
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return buildFromTokens(text), nil
	}

	return convert(doc), nil
}

// convert copies the element nodes of an x/net/html tree into Elements.
// It walks with an explicit stack so deeply nested input cannot exhaust
// the goroutine stack.
func convert(doc *html.Node) *Element {
	type frame struct {
		node *html.Node
		el   *Element
	}

	root := newElement(DocumentTag)
	stack := []frame{{node: doc, el: root}}

	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		for c := f.node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			child := newElement(c.Data)
			for _, a := range c.Attr {
				key := strings.ToLower(a.Key)
				if _, seen := child.Attrs[key]; !seen {
					child.Attrs[key] = a.Val
				}
			}
			f.el.Children = append(f.el.Children, child)
			stack = append(stack, frame{node: c, el: child})
		}
	}

	return root
}
