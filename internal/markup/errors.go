package markup

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDocument is returned when the input has no content besides whitespace.
	ErrEmptyDocument = errors.New("empty document")

	// ErrBinaryDocument is returned when the input contains NUL bytes and
	// therefore is not text.
	ErrBinaryDocument = errors.New("document is not text")
)

// ParseError reports that a page could not be turned into an element tree.
// Callers treat such a page as contributing nothing.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }
