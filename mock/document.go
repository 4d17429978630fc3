package mock

import (
	"context"

	"github.com/fwojciec/figtext"
)

var _ figtext.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of figtext.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *figtext.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*figtext.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter figtext.DocumentFilter) ([]*figtext.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *figtext.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*figtext.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter figtext.DocumentFilter) ([]*figtext.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}

var _ figtext.DocumentDecoder = (*DocumentDecoder)(nil)

// DocumentDecoder is a mock implementation of figtext.DocumentDecoder.
type DocumentDecoder struct {
	DecodeFn func(data []byte, name string) (*figtext.Document, error)
}

func (d *DocumentDecoder) Decode(data []byte, name string) (*figtext.Document, error) {
	return d.DecodeFn(data, name)
}
