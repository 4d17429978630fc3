package mock

import (
	"context"

	"github.com/fwojciec/figtext"
)

var _ figtext.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of figtext.Extractor.
type Extractor struct {
	ExtractTargetsFn func(ctx context.Context, page *figtext.Node, names []string, opts figtext.Options) (string, error)
	ExtractPageFn    func(ctx context.Context, page *figtext.Node, opts figtext.Options) (string, error)
}

func (e *Extractor) ExtractTargets(ctx context.Context, page *figtext.Node, names []string, opts figtext.Options) (string, error) {
	return e.ExtractTargetsFn(ctx, page, names, opts)
}

func (e *Extractor) ExtractPage(ctx context.Context, page *figtext.Node, opts figtext.Options) (string, error) {
	return e.ExtractPageFn(ctx, page, opts)
}

var _ figtext.ComponentResolver = (*ComponentResolver)(nil)

// ComponentResolver is a mock implementation of figtext.ComponentResolver.
type ComponentResolver struct {
	ResolveComponentFn func(ctx context.Context, id string) (*figtext.Component, error)
}

func (r *ComponentResolver) ResolveComponent(ctx context.Context, id string) (*figtext.Component, error) {
	return r.ResolveComponentFn(ctx, id)
}
