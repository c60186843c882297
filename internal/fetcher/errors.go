package fetcher

import (
	"errors"
	"fmt"
)

// Fetcher errors.
var (
	// ErrHTTPStatus is wrapped by FetchError when the server answered with a
	// status code of 400 or above.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrInvalidProxyAddress is returned when the proxy address is not in
	// "host:port" or "socks5://[user:pass@]host:port" form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: expected host:port or socks5://host:port")

	// ErrUnsupportedEncoding is returned for a Content-Encoding the fetcher
	// cannot decode.
	ErrUnsupportedEncoding = errors.New("unsupported content encoding")
)

// FetchError describes a page that could not be retrieved.
type FetchError struct {
	// URL is the address that was requested.
	URL string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
