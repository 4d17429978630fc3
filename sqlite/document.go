package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/figtext"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ figtext.DocumentService = (*DocumentService)(nil)

// DocumentService implements figtext.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashTree computes an xxHash over the text-bearing fields of the tree, used
// when the importer did not hash the raw source.
func hashTree(doc *figtext.Document) string {
	h := xxhash.New()
	for _, p := range doc.Pages {
		p.Walk(func(n *figtext.Node) bool {
			_, _ = h.WriteString(n.ID)
			_, _ = h.WriteString(n.Name)
			_, _ = h.WriteString(n.Characters)
			return true
		})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CreateDocument stores the document with its node tree and components.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *figtext.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := doc.Link(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.CreatedAt = time.Now().UTC()
	if doc.ContentHash == "" {
		doc.ContentHash = hashTree(doc)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, name, source, content_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.Source, doc.ContentHash, doc.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for _, c := range doc.Components {
		if err := insertComponent(ctx, tx, doc.ID, c); err != nil {
			return err
		}
	}

	var seq int
	for _, page := range doc.Pages {
		var walkErr error
		page.Walk(func(n *figtext.Node) bool {
			if walkErr != nil {
				return false
			}
			walkErr = insertNode(ctx, tx, doc.ID, n, seq)
			seq++
			if walkErr == nil && n.MainComponent != nil {
				walkErr = insertComponent(ctx, tx, doc.ID, n.MainComponent)
			}
			return walkErr == nil
		})
		if walkErr != nil {
			return walkErr
		}
	}

	return tx.Commit()
}

func insertNode(ctx context.Context, tx *sql.Tx, docID string, n *figtext.Node, seq int) error {
	var parentID sql.NullString
	if n.Parent != nil {
		parentID = sql.NullString{String: n.Parent.ID, Valid: true}
	}
	mainID := n.MainComponentID
	if mainID == "" && n.MainComponent != nil {
		mainID = n.MainComponent.ID
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nodes (document_id, id, parent_id, seq, name, kind, visible, characters, main_component_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, docID, n.ID, parentID, seq, n.Name, n.Kind.String(), n.Visible, n.Characters, mainID)
	if err != nil {
		return fmt.Errorf("insert node %q: %w", n.ID, err)
	}
	return nil
}

func insertComponent(ctx context.Context, tx *sql.Tx, docID string, c *figtext.Component) error {
	if c == nil || c.ID == "" {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO components (document_id, id, name) VALUES (?, ?, ?)
	`, docID, c.ID, c.Name)
	return err
}

// FindDocumentByID retrieves a document and rebuilds its node tree.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*figtext.Document, error) {
	doc, err := s.findSummary(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Components, err = s.findComponents(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Pages, err = s.findPages(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := doc.Link(); err != nil {
		return nil, fmt.Errorf("link document %s: %w", id, err)
	}

	return doc, nil
}

func (s *DocumentService) findSummary(ctx context.Context, id string) (*figtext.Document, error) {
	var doc figtext.Document
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, content_hash, created_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.Source, &doc.ContentHash, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, figtext.Errorf(figtext.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) findComponents(ctx context.Context, docID string) (map[string]*figtext.Component, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM components WHERE document_id = ?", docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	components := make(map[string]*figtext.Component)
	for rows.Next() {
		var c figtext.Component
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		components[c.ID] = &c
	}
	return components, rows.Err()
}

// findPages loads the nodes in pre-order so every parent precedes its
// children and siblings keep their document order.
func (s *DocumentService) findPages(ctx context.Context, docID string) ([]*figtext.Node, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id, name, kind, visible, characters, main_component_id
		FROM nodes
		WHERE document_id = ?
		ORDER BY seq ASC
	`, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*figtext.Node)
	var pages []*figtext.Node
	for rows.Next() {
		var n figtext.Node
		var parentID sql.NullString
		var kind string
		if err := rows.Scan(&n.ID, &parentID, &n.Name, &kind, &n.Visible, &n.Characters, &n.MainComponentID); err != nil {
			return nil, err
		}
		n.Kind = figtext.ParseKind(kind)
		byID[n.ID] = &n

		if !parentID.Valid {
			pages = append(pages, &n)
			continue
		}
		parent, ok := byID[parentID.String]
		if !ok {
			return nil, figtext.Errorf(figtext.EINTERNAL, "node %q stored before its parent %q", n.ID, parentID.String)
		}
		parent.Children = append(parent.Children, &n)
	}
	return pages, rows.Err()
}

// FindDocuments retrieves document summaries matching the filter. Pages are
// not loaded.
func (s *DocumentService) FindDocuments(ctx context.Context, filter figtext.DocumentFilter) ([]*figtext.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source, content_hash, created_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC, name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*figtext.Document
	for rows.Next() {
		var doc figtext.Document
		var createdAt string

		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Source, &doc.ContentHash, &createdAt); err != nil {
			return nil, err
		}

		doc.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document with its nodes and components.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return figtext.Errorf(figtext.ENOTFOUND, "document not found")
	}

	return nil
}
