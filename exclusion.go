package figtext

import (
	"slices"
	"strings"
)

// ComponentMatch selects how component exclusion names are compared.
//
// The two modes disagree when an instance is nested inside another,
// differently-named instance: MatchMainComponent looks at what each
// instance was created from, MatchNearestAncestor looks at the literal
// name of the closest enclosing component or instance of each text node.
type ComponentMatch string

// Component matching modes.
const (
	// MatchMainComponent excludes an instance (and its whole subtree) when
	// the name of its resolved main component is listed. Instances whose
	// main component cannot be resolved are never excluded.
	MatchMainComponent ComponentMatch = "main-component"

	// MatchNearestAncestor suppresses a text node when the name of its
	// nearest enclosing component or instance is listed. Only the nearest
	// such ancestor is consulted.
	MatchNearestAncestor ComponentMatch = "nearest-ancestor"
)

// Validate returns an error if the mode is unknown. The zero value is valid
// and means MatchMainComponent.
func (m ComponentMatch) Validate() error {
	switch m {
	case "", MatchMainComponent, MatchNearestAncestor:
		return nil
	}
	return Errorf(EINVALID, "unknown component match mode %q", string(m))
}

// ExclusionSpec describes which parts of a tree are left out of extraction.
type ExclusionSpec struct {
	// Names are exact node names. A matching node and its subtree are skipped.
	Names []string `json:"names,omitempty" yaml:"names"`

	// SectionPrefixes skip any node whose name starts with one of them,
	// together with its subtree.
	SectionPrefixes []string `json:"sectionPrefixes,omitempty" yaml:"sectionPrefixes"`

	// Components are component names, compared according to ComponentMatch.
	Components []string `json:"components,omitempty" yaml:"components"`

	// ComponentMatch selects the comparison mode for Components.
	ComponentMatch ComponentMatch `json:"componentMatch,omitempty" yaml:"componentMatch"`
}

// Mode returns the effective component match mode.
func (s ExclusionSpec) Mode() ComponentMatch {
	if s.ComponentMatch == "" {
		return MatchMainComponent
	}
	return s.ComponentMatch
}

// ExcludesName reports whether name is listed exactly.
func (s ExclusionSpec) ExcludesName(name string) bool {
	return slices.Contains(s.Names, name)
}

// ExcludesSection reports whether name starts with any listed prefix.
// Empty prefixes are ignored so that they cannot exclude everything.
func (s ExclusionSpec) ExcludesSection(name string) bool {
	for _, prefix := range s.SectionPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// ExcludesComponent reports whether a component name is listed.
func (s ExclusionSpec) ExcludesComponent(name string) bool {
	return name != "" && slices.Contains(s.Components, name)
}

// Excludes reports whether the node is skipped by name or section prefix.
// Component exclusion depends on resolution and is decided by the engine.
func (s ExclusionSpec) Excludes(n *Node) bool {
	if n == nil {
		return false
	}
	return s.ExcludesName(n.Name) || s.ExcludesSection(n.Name)
}
