package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagesnap"
)

// Ensure LoggingStore implements pagesnap.Store.
var _ pagesnap.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with write logging.
type LoggingStore struct {
	next   pagesnap.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next pagesnap.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Init delegates to the wrapped store.
func (s *LoggingStore) Init(ctx context.Context) (err error) {
	defer func() {
		s.logger.Info("init store", "err", err)
	}()
	return s.next.Init(ctx)
}

// SaveResource delegates to the wrapped store and logs the written path.
func (s *LoggingStore) SaveResource(ctx context.Context, name string, body []byte) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("write resource",
			"name", name,
			"path", path,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveResource(ctx, name, body)
}

// SaveDocument delegates to the wrapped store and logs the written path.
func (s *LoggingStore) SaveDocument(ctx context.Context, doc pagesnap.Document) (path string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("write document",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveDocument(ctx, doc)
}
