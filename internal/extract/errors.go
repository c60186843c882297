package extract

import "fmt"

// Skip reasons recorded in MalformedAttributeError.
const (
	reasonMissing    = "attribute missing"
	reasonNoAnchor   = "no anchor child"
	reasonNoMarker   = "no http marker"
	reasonInvalidURL = "unparsable URL"
	reasonUnparsable = "unparsable URI"
	reasonNotJS      = "path does not reference a .js file"
	reasonNoFilename = "path has no filename"
)

// MalformedAttributeError describes an element that was skipped because
// its link or source attribute was missing or could not be used.
type MalformedAttributeError struct {
	// Tag is the element that was skipped.
	Tag string

	// Attr is the attribute that was inspected.
	Attr string

	// Value is the raw attribute value, empty when absent.
	Value string

	// Reason is a short description of what was wrong.
	Reason string
}

// Error implements the error interface.
func (e *MalformedAttributeError) Error() string {
	return fmt.Sprintf("malformed %s attribute on <%s> (%q): %s", e.Attr, e.Tag, e.Value, e.Reason)
}
