// Package httpclient is the thin HTTP surface the source fetchers depend on.
// Keeping it this narrow lets fetcher tests substitute canned responses
// without standing up a server.
package httpclient

import "context"

// Response exposes the parts of an upstream reply the fetchers read.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client issues the GET requests against upstream publication APIs.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
