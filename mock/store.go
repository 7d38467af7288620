package mock

import (
	"context"

	"github.com/fwojciec/pagesnap"
)

var _ pagesnap.Store = (*Store)(nil)

// Store is a mock implementation of pagesnap.Store.
type Store struct {
	InitFn         func(ctx context.Context) error
	SaveResourceFn func(ctx context.Context, name string, body []byte) (string, error)
	SaveDocumentFn func(ctx context.Context, doc pagesnap.Document) (string, error)
}

func (s *Store) Init(ctx context.Context) error {
	return s.InitFn(ctx)
}

func (s *Store) SaveResource(ctx context.Context, name string, body []byte) (string, error) {
	return s.SaveResourceFn(ctx, name, body)
}

func (s *Store) SaveDocument(ctx context.Context, doc pagesnap.Document) (string, error) {
	return s.SaveDocumentFn(ctx, doc)
}
