// Package markup turns raw HTML text into a tree of Elements and exposes
// that tree as a lazy, restartable element stream.
//
// Parsing is delegated to golang.org/x/net/html, which implements the HTML5
// tree-construction algorithm and therefore accepts anything a browser
// accepts: unknown tags, stray end tags and truncated documents all produce
// a usable tree. Documents that parser refuses, such as markup nested
// deeper than 512 elements, are rebuilt from its tokenizer with a depth cap.
// Only element nodes survive the conversion; text, comments and doctype
// nodes are dropped.
//
// # Usage
//
//	root, err := markup.Parse(page)
//	if err != nil {
//	    return err // *markup.ParseError
//	}
//	for el := range root.All() {
//	    if el.Is("script") {
//	        src, _ := el.Attr("src")
//	        ...
//	    }
//	}
package markup
