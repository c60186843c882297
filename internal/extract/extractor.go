package extract

import (
	"iter"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/nao1215/jsrank/internal/markup"
)

// HTML names the extractors look for.
const (
	tagHeading = "h3"
	tagAnchor  = "a"
	tagScript  = "script"

	attrClass = "class"
	attrHref  = "href"
	attrSrc   = "src"

	// resultClass marks a search-result heading.
	resultClass = "r"
)

// Markers that delimit the destination inside a search-result href.
// A typical href looks like "/url?q=https://example.com/&sa=U&ved=...".
const (
	startMarker = "http"
	endMarker   = "&sa="
)

// scriptExtension must appear in a script source path for it to count.
const scriptExtension = ".js"

// Extractor pulls result links and script references out of element streams.
// It is stateless apart from its logger and safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that receives skipped-element diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Extractor) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	x := &Extractor{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ResultLinks returns the destination URLs of all search-result headings in
// the stream, in document order. Duplicates are preserved.
//
// A result heading is an h3 whose class is "r" (case-insensitive). Its first
// direct anchor child carries an href that wraps the destination between an
// "http" marker and an "&sa=" tracking suffix.
func (x *Extractor) ResultLinks(stream iter.Seq[*markup.Element]) []string {
	links := make([]string, 0)

	for el := range stream {
		if !el.Is(tagHeading) {
			continue
		}
		class, ok := el.Attr(attrClass)
		if !ok || !strings.EqualFold(strings.TrimSpace(class), resultClass) {
			continue
		}

		anchor := el.FirstChild(tagAnchor)
		if anchor == nil {
			x.skip(&MalformedAttributeError{Tag: tagHeading, Attr: attrHref, Reason: reasonNoAnchor})
			continue
		}

		href, ok := anchor.Attr(attrHref)
		if !ok {
			x.skip(&MalformedAttributeError{Tag: tagAnchor, Attr: attrHref, Reason: reasonMissing})
			continue
		}

		link, reason := ResultLink(href)
		if reason != "" {
			x.skip(&MalformedAttributeError{Tag: tagAnchor, Attr: attrHref, Value: href, Reason: reason})
			continue
		}

		links = append(links, link)
	}

	return links
}

// ScriptRefs returns the filename of every script source in the stream that
// references a .js path, in document order. Each occurrence is reported, so
// a file included twice appears twice.
func (x *Extractor) ScriptRefs(stream iter.Seq[*markup.Element]) []string {
	refs := make([]string, 0)

	for el := range stream {
		if !el.Is(tagScript) {
			continue
		}

		src, ok := el.Attr(attrSrc)
		src = strings.TrimSpace(src)
		if !ok || src == "" {
			// Inline scripts have no source; that is not worth a log line.
			continue
		}

		name, reason := ScriptFilename(src)
		if reason != "" {
			x.skip(&MalformedAttributeError{Tag: tagScript, Attr: attrSrc, Value: src, Reason: reason})
			continue
		}

		refs = append(refs, name)
	}

	return refs
}

// skip logs an element that was ignored.
func (x *Extractor) skip(err *MalformedAttributeError) {
	x.logger.Debug("skipping element", "error", err)
}

// ResultLink cuts the destination URL out of a search-result href.
// It returns the URL and an empty reason on success, or an empty URL and
// the reason the href was rejected.
//
// The destination starts at the first "http" and ends right before the
// first "&sa=" that follows it. When "&sa=" is absent the destination runs
// to the end of the string. The destination is returned as found, including
// percent-encoded or relative forms, as long as it parses as a URL.
func ResultLink(href string) (string, string) {
	start := strings.Index(href, startMarker)
	if start < 0 {
		return "", reasonNoMarker
	}

	link := href[start:]
	if end := strings.Index(link, endMarker); end >= 0 {
		link = link[:end]
	}

	if _, err := url.Parse(link); err != nil {
		return "", reasonInvalidURL
	}

	return link, ""
}

// ScriptFilename returns the last path segment of a script source URI.
// It returns an empty filename and a reason when the URI cannot be parsed
// or its path does not reference a .js file.
func ScriptFilename(src string) (string, string) {
	u, err := url.Parse(src)
	if err != nil {
		return "", reasonUnparsable
	}

	// Opaque URIs (javascript:, data:) have no path and are rejected here.
	p := u.Path
	if !strings.Contains(p, scriptExtension) {
		return "", reasonNotJS
	}

	name := path.Base(p)
	if name == "/" || name == "." {
		return "", reasonNoFilename
	}

	return name, ""
}

// ResultLinksFromHTML parses a search-results page and returns its result
// links. It fails only when the page is not parseable at all.
func ResultLinksFromHTML(page string) ([]string, error) {
	root, err := markup.Parse(page)
	if err != nil {
		return nil, err
	}
	return New().ResultLinks(root.All()), nil
}

// ScriptRefsFromHTML parses a page and returns the script filenames it
// references. It fails only when the page is not parseable at all.
func ScriptRefsFromHTML(page string) ([]string, error) {
	root, err := markup.Parse(page)
	if err != nil {
		return nil, err
	}
	return New().ScriptRefs(root.All()), nil
}
