package figtext

import (
	"context"
	"time"
)

// Document is an imported design document: one or more pages plus the
// components its instances refer to.
type Document struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Source      string                `json:"source"`
	ContentHash string                `json:"contentHash"`
	Pages       []*Node               `json:"pages"`
	Components  map[string]*Component `json:"components,omitempty"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "document name required")
	}
	if len(d.Pages) == 0 {
		return Errorf(EINVALID, "document %q has no pages", d.Name)
	}
	for _, p := range d.Pages {
		if p == nil || p.ID == "" {
			return Errorf(EINVALID, "document %q has a page without id", d.Name)
		}
	}
	return nil
}

// Page returns the page with the given name, or the first page when name
// is empty. Returns ENOTFOUND if no page matches.
func (d *Document) Page(name string) (*Node, error) {
	if len(d.Pages) == 0 {
		return nil, Errorf(ENOTFOUND, "document has no pages")
	}
	if name == "" {
		return d.Pages[0], nil
	}
	for _, p := range d.Pages {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "page %q not found", name)
}

// Ensure Document implements ComponentResolver over its own components.
var _ ComponentResolver = (*Document)(nil)

// ResolveComponent returns the document component with the given id.
// Returns ENOTFOUND if the document does not define it.
func (d *Document) ResolveComponent(ctx context.Context, id string) (*Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c, ok := d.Components[id]; ok && c != nil {
		return c, nil
	}
	return nil, Errorf(ENOTFOUND, "component %q not found", id)
}

// Link links the parent pointers of every page.
func (d *Document) Link() error {
	for _, p := range d.Pages {
		if err := p.Link(); err != nil {
			return err
		}
	}
	return nil
}

// DocumentService represents a service for managing imported documents.
type DocumentService interface {
	// CreateDocument stores a new document and assigns its ID.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document with its full node tree.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves document summaries (without trees).
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document and all of its nodes.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentDecoder turns raw bytes in some format into a Document.
type DocumentDecoder interface {
	// Decode parses the document. The name is used when the format carries
	// no document name of its own.
	Decode(data []byte, name string) (*Document, error)
}
