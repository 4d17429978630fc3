package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/figtext"
)

// storePrefix marks a source that refers to an imported document.
const storePrefix = "db:"

// Loader opens documents from files or from the document store.
type Loader struct {
	// Decoders by lower-case file extension, including the dot.
	Decoders map[string]figtext.DocumentDecoder

	// Documents is the store used for db:<id> sources. May be nil when no
	// store is open.
	Documents figtext.DocumentService

	// StoreResolver returns the component resolver for a stored document.
	// When nil, the loaded document resolves its own components.
	StoreResolver func(documentID string) figtext.ComponentResolver
}

// Load returns the document named by source together with the resolver
// for its main components.
func (l *Loader) Load(ctx context.Context, source string) (*figtext.Document, figtext.ComponentResolver, error) {
	if id, ok := strings.CutPrefix(source, storePrefix); ok {
		return l.loadStored(ctx, id)
	}
	doc, err := l.LoadFile(source)
	if err != nil {
		return nil, nil, err
	}
	return doc, doc, nil
}

func (l *Loader) loadStored(ctx context.Context, id string) (*figtext.Document, figtext.ComponentResolver, error) {
	if l.Documents == nil {
		return nil, nil, figtext.Errorf(figtext.EINVALID, "no document store available")
	}
	doc, err := l.Documents.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if l.StoreResolver != nil {
		return doc, l.StoreResolver(doc.ID), nil
	}
	return doc, doc, nil
}

// LoadFile decodes a document file, choosing the decoder by extension.
func (l *Loader) LoadFile(path string) (*figtext.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	dec, ok := l.Decoders[ext]
	if !ok {
		return nil, figtext.Errorf(figtext.EINVALID, "unsupported file type %q: use .json, .svg or .html", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, figtext.Errorf(figtext.ENOTFOUND, "file %q not found", path)
		}
		return nil, err
	}

	doc, err := dec.Decode(data, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	doc.Source = path
	return doc, nil
}
