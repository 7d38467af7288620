// Package slog provides log/slog decorators for pagesnap services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnap"
)

// Ensure LoggingFetcher implements pagesnap.Fetcher.
var _ pagesnap.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   pagesnap.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pagesnap.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the URL, size and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *pagesnap.Response, err error) {
	defer func(begin time.Time) {
		var n int
		var contentType string
		if resp != nil {
			n = len(resp.Body)
			contentType = resp.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", n,
			"type", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
