package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// maxDepth bounds how deep the token-built tree goes. Elements opened
// below it are kept as leaves of the deepest open element.
const maxDepth = 1024

// voidTags never have content, so they are not pushed as open elements.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// buildFromTokens builds a tree straight from the token stream, without the
// HTML5 tree construction rules. Parse uses it for documents html.Parse
// refuses, such as those nested deeper than its open element limit.
//
// End tags close the nearest open element with the same name; stray end
// tags are dropped. Tokenizer errors end the tree where they occur.
func buildFromTokens(text string) *Element {
	root := newElement(DocumentTag)
	open := []*Element{root}
	// overflow counts non-void elements opened past maxDepth, so their end
	// tags do not close elements that are still on the stack.
	overflow := 0

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return root

		case html.StartTagToken, html.SelfClosingTagToken:
			el := tokenElement(z)
			top := open[len(open)-1]
			top.Children = append(top.Children, el)

			if voidTags[el.Tag] || tt == html.SelfClosingTagToken {
				continue
			}
			if len(open) < maxDepth {
				open = append(open, el)
			} else {
				overflow++
			}

		case html.EndTagToken:
			if overflow > 0 {
				overflow--
				continue
			}
			name, _ := z.TagName()
			for i := len(open) - 1; i > 0; i-- {
				if open[i].Tag == string(name) {
					open = open[:i]
					break
				}
			}
		}
	}
}

// tokenElement copies the tag and attributes of the current start tag.
// The tokenizer reuses its buffers, so every value is copied to a string.
func tokenElement(z *html.Tokenizer) *Element {
	name, hasAttr := z.TagName()
	el := newElement(string(name))
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		k := strings.ToLower(string(key))
		if _, seen := el.Attrs[k]; !seen {
			el.Attrs[k] = string(val)
		}
	}
	return el
}
