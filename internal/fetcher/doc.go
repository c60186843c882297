// Package fetcher retrieves pages over HTTP(S) and returns their text.
//
// HTTPFetcher sends a fixed User-Agent, optional extra headers and a cookie,
// follows a bounded number of redirects, and can route every connection
// through a SOCKS5 proxy. Response bodies are decompressed (gzip, deflate,
// brotli), capped at a configurable size, and decoded to UTF-8 using the
// charset named in the Content-Type header.
//
// Any transport failure or HTTP status of 400 or above is returned as a
// *FetchError.
package fetcher
