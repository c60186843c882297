package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// Defaults used when no option overrides them.
const (
	DefaultUserAgent   = "Mozilla/5.0"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 5 * 1024 * 1024
	maxRedirects       = 10
)

// Fetcher retrieves the text of a page.
type Fetcher interface {
	// Fetch returns the decoded body of url. Failures are *FetchError.
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher implements Fetcher using net/http.
type HTTPFetcher struct {
	// client performs the requests. Its transport injects the configured
	// cookie and headers.
	client *http.Client

	// userAgent is sent as the User-Agent header.
	userAgent string

	// maxBodySize caps the number of decoded bytes read from a response.
	maxBodySize int64

	// timeout bounds a whole request, redirects and body read included.
	timeout time.Duration

	// proxyAddress is the SOCKS5 proxy, empty for direct connections.
	proxyAddress string

	cookie  string
	headers map[string]string

	logger *slog.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header. Empty values are ignored.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum number of decoded body bytes read.
// Non-positive values are ignored.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithProxy routes all connections through the SOCKS5 proxy at address.
func WithProxy(address string) Option {
	return func(f *HTTPFetcher) {
		f.proxyAddress = address
	}
}

// WithCookie sends a raw cookie string (e.g. "CONSENT=YES+") on every request.
func WithCookie(cookie string) Option {
	return func(f *HTTPFetcher) {
		f.cookie = cookie
	}
}

// WithHeaders sends extra headers on every request. They override the
// defaults, User-Agent included.
func WithHeaders(headers map[string]string) Option {
	return func(f *HTTPFetcher) {
		f.headers = make(map[string]string, len(headers))
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates an HTTPFetcher. It fails only when the proxy address is invalid.
func New(opts ...Option) (*HTTPFetcher, error) {
	f := &HTTPFetcher{
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		timeout:     DefaultTimeout,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   f.timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		// Decompression is done in Fetch so brotli can be offered too.
		DisableCompression: true,
	}

	if f.proxyAddress != "" {
		dialer, err := newSOCKS5Dialer(f.proxyAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		transport.DialContext = dialer.DialContext
	}

	var rt http.RoundTripper = transport
	if f.cookie != "" || len(f.headers) > 0 {
		rt = &headerInjectingTransport{
			base:    transport,
			cookie:  f.cookie,
			headers: f.headers,
		}
	}

	f.client = &http.Client{
		Transport: rt,
		Timeout:   f.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	f.logger = f.logger.With("component", "fetcher")

	return f, nil
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", acceptEncoding)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status),
		}
	}

	body, err := decompress(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	body = decodeCharset(resp.Header.Get("Content-Type"), body)

	// The cap applies after decompression.
	data, err := io.ReadAll(io.LimitReader(body, f.maxBodySize))
	if err != nil {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}

	f.logger.Debug("fetch complete",
		"url", url,
		"status", resp.StatusCode,
		"size", len(data),
		"duration", time.Since(start),
	)

	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// ProxyAddress returns the configured SOCKS5 proxy, empty when direct.
func (f *HTTPFetcher) ProxyAddress() string {
	return f.proxyAddress
}
