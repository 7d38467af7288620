package pagesnap

import (
	"context"
	"fmt"
)

// Response is the result of a successful fetch.
type Response struct {
	// URL is the final URL of the response, after redirects.
	URL string

	// ContentType is the declared Content-Type header, verbatim.
	// Empty when the server did not send one.
	ContentType string

	Body []byte
}

// Fetcher retrieves raw content from URLs.
type Fetcher interface {
	// Fetch issues a GET request for the URL and returns the response body.
	// Returns a *FetchError if the request fails, times out, or the server
	// answers with a non-success status.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// FetchError reports a failed fetch.
type FetchError struct {
	URL string

	// StatusCode is the HTTP status returned by the server.
	// Zero when no response was received.
	StatusCode int

	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// HostLimiter throttles requests per host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed or ctx is done.
	Wait(ctx context.Context, host string) error
}
