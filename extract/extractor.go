package extract

import (
	"context"

	"github.com/fwojciec/figtext"
)

// Compile-time interface verification.
var _ figtext.Extractor = (*Extractor)(nil)

// Extractor implements figtext.Extractor.
//
// Extraction runs in two phases. Instances whose main component must be
// looked up are collected and resolved first; the tree is then walked
// synchronously, so no lookup is ever in flight while text is written.
// An Extractor holds no per-call state and is safe for concurrent use.
type Extractor struct {
	resolver figtext.ComponentResolver
}

// NewExtractor creates a new Extractor. The resolver may be nil, in which
// case only inline main components take part in component exclusion.
func NewExtractor(resolver figtext.ComponentResolver) *Extractor {
	return &Extractor{resolver: resolver}
}

// ExtractTargets extracts text from every frame named in names.
func (e *Extractor) ExtractTargets(ctx context.Context, page *figtext.Node, names []string, opts figtext.Options) (string, error) {
	if page == nil {
		return "", figtext.Errorf(figtext.EINVALID, "page required")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}

	targets := Locate(page, names, opts.TargetKinds)
	if len(targets) == 0 {
		return "", figtext.Errorf(figtext.ENOTFOUND, "%s", figtext.NotFoundMessage(len(names)))
	}
	return e.extract(ctx, targets, opts)
}

// ExtractPage extracts text from every first-level container of page.
func (e *Extractor) ExtractPage(ctx context.Context, page *figtext.Node, opts figtext.Options) (string, error) {
	if page == nil {
		return "", figtext.Errorf(figtext.EINVALID, "page required")
	}
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return e.extract(ctx, LocatePage(page, opts.Exclusions), opts)
}

func (e *Extractor) extract(ctx context.Context, targets []*figtext.Node, opts figtext.Options) (string, error) {
	components := map[string]*figtext.Component{}
	excl := opts.Exclusions
	if excl.Mode() == figtext.MatchMainComponent && len(excl.Components) > 0 {
		var err error
		components, err = resolveComponents(ctx, e.resolver, pendingComponents(targets, excl), opts.ResolveConcurrency)
		if err != nil {
			return "", err
		}
	}

	t := newTraversal(opts, components, sizeHint(targets))
	blocks := make([]figtext.Block, 0, len(targets))
	for _, target := range targets {
		blocks = append(blocks, figtext.Block{Name: target.Name, Text: t.target(target)})
	}
	return figtext.FormatBlocks(blocks, headers(opts.TargetHeaders, len(targets))), nil
}

func headers(mode figtext.HeaderMode, targets int) bool {
	switch mode {
	case figtext.HeadersAlways:
		return true
	case figtext.HeadersNever:
		return false
	default:
		return targets > 1
	}
}

// sizeHint estimates the number of ids a call will record.
func sizeHint(targets []*figtext.Node) uint {
	var n uint
	for _, target := range targets {
		target.Walk(func(*figtext.Node) bool {
			n++
			return true
		})
	}
	return n
}
