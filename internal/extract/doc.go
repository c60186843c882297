// Package extract picks search-result links and script filenames out of
// an element stream produced by the markup package.
//
// Both extractors are tolerant: an element with a missing or unusable
// attribute is skipped (and logged at debug level as a
// MalformedAttributeError), never reported as a failure of the page.
package extract
