// Package extract implements the text extraction engine: locating target
// containers, walking them in document order and accumulating their text.
package extract

import (
	"slices"

	"github.com/fwojciec/figtext"
)

// Locate returns every node under root whose kind is one of kinds and whose
// name is one of names, in breadth-first discovery order: shallower matches
// come first, siblings left to right.
//
// A matching node is not searched further, so a target never yields nested
// targets of its own. If root itself matches it is the only result.
func Locate(root *figtext.Node, names []string, kinds []figtext.Kind) []*figtext.Node {
	if root == nil || len(names) == 0 {
		return nil
	}
	if len(kinds) == 0 {
		kinds = figtext.DefaultTargetKinds
	}

	matches := func(n *figtext.Node) bool {
		return slices.Contains(kinds, n.Kind) && slices.Contains(names, n.Name)
	}

	if matches(root) {
		return []*figtext.Node{root}
	}

	var found []*figtext.Node
	queue := []*figtext.Node{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, child := range node.Children {
			if child == nil {
				continue
			}
			if matches(child) {
				found = append(found, child)
				continue
			}
			if child.HasChildren() {
				queue = append(queue, child)
			}
		}
	}
	return found
}

// pageTargetKinds are the first-level kinds whole-page extraction visits.
var pageTargetKinds = []figtext.Kind{
	figtext.KindContainer,
	figtext.KindFrame,
	figtext.KindSection,
	figtext.KindInstance,
}

// LocatePage returns the direct children of page that whole-page extraction
// visits: containers, frames, sections and instances, minus those excluded
// by exact name. Visibility is deliberately not checked here; hidden nodes
// are listed and simply yield no text when walked.
func LocatePage(page *figtext.Node, excl figtext.ExclusionSpec) []*figtext.Node {
	if page == nil {
		return nil
	}
	var found []*figtext.Node
	for _, child := range page.Children {
		if child == nil || !slices.Contains(pageTargetKinds, child.Kind) {
			continue
		}
		if excl.ExcludesName(child.Name) {
			continue
		}
		found = append(found, child)
	}
	return found
}
