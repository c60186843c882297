package fetcher

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/andybalholm/brotli"
	"golang.org/x/net/html/charset"
)

// acceptEncoding is sent on every request. Transport-level compression is
// disabled so brotli can be offered as well.
const acceptEncoding = "gzip, deflate, br"

// decompress wraps body with the decoder for the given Content-Encoding.
// An empty or "identity" encoding returns body unchanged.
func decompress(encoding string, body io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return body, nil
	case "gzip", "x-gzip":
		return gzip.NewReader(body)
	case "deflate":
		return zlib.NewReader(body)
	case "br":
		return brotli.NewReader(body), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

// decodeCharset converts body to UTF-8 according to the charset parameter
// of contentType. Unknown or missing charsets leave body unchanged. Charset
// declarations inside the document are not consulted.
func decodeCharset(contentType string, body io.Reader) io.Reader {
	if contentType == "" {
		return body
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body
	}
	label := params["charset"]
	if label == "" {
		return body
	}

	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return body
	}
	return enc.NewDecoder().Reader(body)
}
