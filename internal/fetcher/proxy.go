package fetcher

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/proxy"
)

// socks5Scheme is the only proxy scheme accepted in URL form.
const socks5Scheme = "socks5"

// newSOCKS5Dialer builds a dialer for address, which is either "host:port"
// or "socks5://[user:pass@]host:port".
func newSOCKS5Dialer(address string) (proxy.ContextDialer, error) {
	hostport, auth, err := parseProxyAddress(address)
	if err != nil {
		return nil, err
	}

	d, err := proxy.SOCKS5("tcp", hostport, auth, proxy.Direct)
	if err != nil {
		return nil, err
	}

	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return contextDialer{d}, nil
	}
	return cd, nil
}

// parseProxyAddress splits a proxy address into "host:port" and optional
// credentials.
func parseProxyAddress(address string) (string, *proxy.Auth, error) {
	address = strings.TrimSpace(address)
	if !strings.Contains(address, "://") {
		if !isValidHostPort(address) {
			return "", nil, ErrInvalidProxyAddress
		}
		return address, nil, nil
	}

	u, err := url.Parse(address)
	if err != nil || !strings.EqualFold(u.Scheme, socks5Scheme) || !isValidHostPort(u.Host) {
		return "", nil, ErrInvalidProxyAddress
	}
	if u.Path != "" && u.Path != "/" {
		return "", nil, ErrInvalidProxyAddress
	}

	var auth *proxy.Auth
	if u.User != nil {
		password, _ := u.User.Password()
		auth = &proxy.Auth{User: u.User.Username(), Password: password}
	}
	return u.Host, auth, nil
}

// isValidHostPort reports whether address has a non-empty host and a port
// between 1 and 65535.
func isValidHostPort(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

// contextDialer adapts a proxy.Dialer without context support.
type contextDialer struct {
	d proxy.Dialer
}

// DialContext dials in a goroutine so the caller can give up when ctx ends.
// The underlying attempt may outlive the call briefly.
func (c contextDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	type dialResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan dialResult, 1)

	go func() {
		conn, err := c.d.Dial(network, address)
		resultCh <- dialResult{conn, err}
	}()

	select {
	case result := <-resultCh:
		return result.conn, result.err
	case <-ctx.Done():
		go func() {
			if result := <-resultCh; result.conn != nil {
				result.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// headerInjectingTransport adds a fixed cookie and headers to every request,
// redirects included.
type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
