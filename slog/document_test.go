package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/mock"
	figslog "github.com/fwojciec/figtext/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingDocumentService(t *testing.T) {
	t.Parallel()

	t.Run("logs created documents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			CreateDocumentFn: func(ctx context.Context, doc *figtext.Document) error {
				doc.ID = "doc-1"
				return nil
			},
		}

		svc := figslog.NewLoggingDocumentService(inner, logger)
		doc := &figtext.Document{Name: "Onboarding", Pages: []*figtext.Node{{ID: "0:1"}}}
		require.NoError(t, svc.CreateDocument(context.Background(), doc))

		output := buf.String()
		assert.Contains(t, output, "create document")
		assert.Contains(t, output, "id=doc-1")
		assert.Contains(t, output, "name=Onboarding")
		assert.Contains(t, output, "pages=1")
	})

	t.Run("logs lookups at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.DocumentService{
			FindDocumentByIDFn: func(ctx context.Context, id string) (*figtext.Document, error) {
				return nil, figtext.Errorf(figtext.ENOTFOUND, "document not found")
			},
			FindDocumentsFn: func(ctx context.Context, filter figtext.DocumentFilter) ([]*figtext.Document, error) {
				return []*figtext.Document{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		svc := figslog.NewLoggingDocumentService(inner, logger)
		_, err := svc.FindDocumentByID(context.Background(), "missing")
		require.Error(t, err)
		docs, err := svc.FindDocuments(context.Background(), figtext.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		output := buf.String()
		assert.Contains(t, output, "find document")
		assert.Contains(t, output, "id=missing")
		assert.Contains(t, output, "message=document not found")
		assert.Contains(t, output, "count=2")
	})

	t.Run("logs deletions", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.DocumentService{
			DeleteDocumentFn: func(ctx context.Context, id string) error { return nil },
		}

		require.NoError(t, figslog.NewLoggingDocumentService(inner, logger).DeleteDocument(context.Background(), "doc-1"))
		assert.Contains(t, buf.String(), "delete document")
	})
}
