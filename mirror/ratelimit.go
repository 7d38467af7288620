package mirror

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/pagesnap"
	"golang.org/x/time/rate"
)

var _ pagesnap.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces out requests to each host. Assets on a CDN do not wait
// behind requests to the page's own server.
type HostLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter returns a limiter allowing rps requests per second to any
// one host, with no bursts.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{rps: rps, buckets: make(map[string]*rate.Limiter)}
}

// Wait blocks until a request to host may proceed or ctx is done.
// Hosts differing only in case, port or a trailing dot share a bucket.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.bucket(hostKey(host)).Wait(ctx)
}

func (l *HostLimiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.buckets[key] = b
	}
	return b
}

// hostKey reduces a URL host to the machine it names.
func hostKey(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	return strings.TrimSuffix(strings.ToLower(host), ".")
}
