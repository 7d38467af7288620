// Package http provides an HTTP-based implementation of pagesnap.Fetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/pagesnap"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements pagesnap.Fetcher at compile time.
var _ pagesnap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using plain GET requests,
// optionally through a forward proxy.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	proxy   *url.URL
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProxy routes both http and https requests through the proxy.
// A nil proxy disables proxying, including any proxy set in the environment.
func WithProxy(proxy *url.URL) Option {
	return func(f *Fetcher) {
		f.proxy = proxy
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	if f.proxy != nil {
		transport.Proxy = http.ProxyURL(f.proxy)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f
}

// Fetch retrieves the content at the given URL.
// Any 2xx status is a success.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*pagesnap.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &pagesnap.FetchError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Drop the *url.Error wrapper; FetchError already names the URL.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, &pagesnap.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &pagesnap.FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pagesnap.FetchError{URL: rawURL, Err: err}
	}

	return &pagesnap.Response{
		URL:         resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// ParseProxy parses a proxy address such as "http://127.0.0.1:7890" or
// "socks5://127.0.0.1:1080". An empty string means no proxy and returns nil.
func ParseProxy(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "invalid proxy URL %q: %v", raw, err)
	}

	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "unsupported proxy scheme %q in %q", u.Scheme, raw)
	}

	if u.Host == "" {
		return nil, pagesnap.Errorf(pagesnap.EINVALID, "proxy URL %q has no host", raw)
	}

	return u, nil
}
