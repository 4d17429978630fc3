package extract

import (
	"context"
	"sync"

	"github.com/fwojciec/figtext"
	"golang.org/x/sync/errgroup"
)

// defaultResolveConcurrency bounds concurrent main-component lookups.
const defaultResolveConcurrency = 8

// pendingComponents walks the targets and returns the distinct main
// component ids of instances that may be visited and have no inline main
// component. Hidden and name-excluded subtrees are not entered.
func pendingComponents(targets []*figtext.Node, excl figtext.ExclusionSpec) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, target := range targets {
		target.Walk(func(n *figtext.Node) bool {
			if !n.Visible || excl.Excludes(n) {
				return false
			}
			if n.Kind == figtext.KindInstance && n.MainComponent == nil && n.MainComponentID != "" {
				if _, ok := seen[n.MainComponentID]; !ok {
					seen[n.MainComponentID] = struct{}{}
					ids = append(ids, n.MainComponentID)
				}
			}
			return true
		})
	}
	return ids
}

// resolveComponents looks up every id through the resolver, at most limit at
// a time. A failed or missing lookup is left out of the result, which means
// the instance is treated as not excluded. Only cancellation of ctx fails
// the whole phase.
func resolveComponents(ctx context.Context, r figtext.ComponentResolver, ids []string, limit int) (map[string]*figtext.Component, error) {
	resolved := make(map[string]*figtext.Component, len(ids))
	if r == nil || len(ids) == 0 {
		return resolved, nil
	}
	if limit <= 0 {
		limit = defaultResolveConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, id := range ids {
		g.Go(func() error {
			comp, err := r.ResolveComponent(gctx, id)
			if err != nil {
				return ctx.Err()
			}
			if comp == nil {
				return nil
			}
			mu.Lock()
			resolved[id] = comp
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}
