package mirror_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagesnap"
	"github.com/fwojciec/pagesnap/mirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	var _ pagesnap.HostLimiter = mirror.NewHostLimiter(1)

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(10)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(10) // one request per 100ms

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("page host and CDN host are limited separately", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "cdn.example.net"))
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("case, port and trailing dot name the same host", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		for _, host := range []string{"Example.com:443", "EXAMPLE.COM.", "example.com:8443"} {
			start := time.Now()
			require.NoError(t, limiter.Wait(context.Background(), host))
			assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond, host)
		}
	})

	t.Run("IPv6 hosts with and without port share a bucket", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "[::1]:8080"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "[::1]"))
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("gives up when context ends", func(t *testing.T) {
		t.Parallel()

		limiter := mirror.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
