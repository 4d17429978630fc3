package extract

import (
	"github.com/fwojciec/figtext"
	"github.com/fwojciec/figtext/bloom"
)

// traversal holds the state of one extraction call. The visited sets are
// shared by every target of the call and discarded afterwards.
type traversal struct {
	opts       figtext.Options
	components map[string]*figtext.Component

	instances *bloom.Set
	texts     *bloom.Set
}

func newTraversal(opts figtext.Options, components map[string]*figtext.Component, sizeHint uint) *traversal {
	return &traversal{
		opts:       opts,
		components: components,
		instances:  bloom.NewSet(sizeHint),
		texts:      bloom.NewSet(sizeHint),
	}
}

// scope is what a node inherits from its ancestors on the current path.
type scope struct {
	section    *section
	inInstance bool
	// component is the closest component or instance above the node.
	component *figtext.Node
}

// target walks a single target and returns its text.
func (t *traversal) target(node *figtext.Node) string {
	if !node.EffectivelyVisible() {
		return ""
	}
	var acc accumulator
	t.visit(node, scope{component: node.NearestComponentAncestor()}, &acc)
	return acc.String()
}

func (t *traversal) visit(node *figtext.Node, sc scope, acc *accumulator) {
	if node == nil || !node.Visible {
		return
	}
	excl := t.opts.Exclusions
	if excl.Excludes(node) {
		return
	}

	switch node.Kind {
	case figtext.KindInstance:
		if !t.instances.Add(node.ID) {
			return
		}
		if excl.Mode() == figtext.MatchMainComponent && t.excludedInstance(node) {
			return
		}
		if !sc.inInstance && t.opts.ComponentHeaders {
			acc.componentHeader(node.Name)
		}
		child := scope{section: t.enter(node, sc.section), inInstance: true, component: node}
		for _, c := range node.Children {
			t.visit(c, child, acc)
		}

	case figtext.KindText:
		if t.texts.Has(node.ID) {
			return
		}
		if excl.Mode() == figtext.MatchNearestAncestor && sc.component != nil && excl.ExcludesComponent(sc.component.Name) {
			return
		}
		if t.opts.Sections {
			acc.sectionLabel(sc.section)
		}
		acc.text(node.Characters)
		t.texts.Add(node.ID)

	default:
		child := sc
		if node.Kind == figtext.KindComponent {
			child.component = node
		}
		if node.Kind == figtext.KindFrame || node.Kind == figtext.KindSection {
			child.section = t.enter(node, sc.section)
		}
		for _, c := range node.Children {
			t.visit(c, child, acc)
		}
	}
}

// enter returns the active section, establishing node as the section when
// none is active yet. A section is never replaced deeper in the tree.
func (t *traversal) enter(node *figtext.Node, active *section) *section {
	if active != nil || !t.opts.Sections {
		return active
	}
	return &section{kind: node.Kind, label: node.Name}
}

// excludedInstance reports whether the instance's main component is listed.
// An unresolved main component never excludes.
func (t *traversal) excludedInstance(node *figtext.Node) bool {
	comp := node.MainComponent
	if comp == nil && node.MainComponentID != "" {
		comp = t.components[node.MainComponentID]
	}
	if comp == nil {
		return false
	}
	return t.opts.Exclusions.ExcludesComponent(comp.Name)
}
