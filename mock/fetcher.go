package mock

import (
	"context"

	"github.com/fwojciec/pagesnap"
)

var _ pagesnap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagesnap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*pagesnap.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*pagesnap.Response, error) {
	return f.FetchFn(ctx, url)
}

var _ pagesnap.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of pagesnap.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
