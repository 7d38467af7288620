package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagesnap"
	"github.com/fwojciec/pagesnap/mock"
	snapslog "github.com/fwojciec/pagesnap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore(t *testing.T) {
	t.Parallel()

	t.Run("logs resource writes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Store{
			SaveResourceFn: func(ctx context.Context, name string, body []byte) (string, error) {
				return "resources/" + name, nil
			},
		}

		store := snapslog.NewLoggingStore(inner, logger)
		path, err := store.SaveResource(context.Background(), "script_1.js", []byte("let a;"))

		require.NoError(t, err)
		assert.Equal(t, "resources/script_1.js", path)
		output := buf.String()
		assert.Contains(t, output, "write resource")
		assert.Contains(t, output, "name=script_1.js")
		assert.Contains(t, output, "path=resources/script_1.js")
		assert.Contains(t, output, "bytes=6")
	})

	t.Run("logs document write errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Store{
			SaveDocumentFn: func(ctx context.Context, doc pagesnap.Document) (string, error) {
				return "", errors.New("disk full")
			},
		}

		store := snapslog.NewLoggingStore(inner, logger)
		_, err := store.SaveDocument(context.Background(), &mock.Document{})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "write document")
		assert.Contains(t, output, "err=\"disk full\"")
	})

	t.Run("delegates init", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		initCalled := false
		inner := &mock.Store{
			InitFn: func(ctx context.Context) error {
				initCalled = true
				return nil
			},
		}

		store := snapslog.NewLoggingStore(inner, logger)

		require.NoError(t, store.Init(context.Background()))
		assert.True(t, initCalled)
		assert.Contains(t, buf.String(), "init store")
	})
}
