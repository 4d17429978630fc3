package figtext

import (
	"strings"
)

// Kind identifies the type of a node in a design-document tree.
type Kind int

// Node kinds. Containers, frames, sections, components and instances may
// have children; text leaves never do.
const (
	KindOther Kind = iota
	KindPage
	KindContainer
	KindFrame
	KindSection
	KindComponent
	KindInstance
	KindText
)

// String returns the canonical upper-case name of the kind, matching the
// type names used by design-tool hosts.
func (k Kind) String() string {
	switch k {
	case KindPage:
		return "PAGE"
	case KindContainer:
		return "GROUP"
	case KindFrame:
		return "FRAME"
	case KindSection:
		return "SECTION"
	case KindComponent:
		return "COMPONENT"
	case KindInstance:
		return "INSTANCE"
	case KindText:
		return "TEXT"
	default:
		return "OTHER"
	}
}

// Label returns the human-readable name used in section annotations.
func (k Kind) Label() string {
	switch k {
	case KindPage:
		return "Page"
	case KindContainer:
		return "Group"
	case KindFrame:
		return "Frame"
	case KindSection:
		return "Section"
	case KindComponent:
		return "Component"
	case KindInstance:
		return "Instance"
	case KindText:
		return "Text"
	default:
		return "Other"
	}
}

// IsContainer reports whether nodes of this kind group other nodes.
func (k Kind) IsContainer() bool {
	switch k {
	case KindPage, KindContainer, KindFrame, KindSection, KindComponent, KindInstance:
		return true
	}
	return false
}

// IsComponentLike reports whether the kind is a component definition or an
// instance of one. These are the boundaries used by component exclusion.
func (k Kind) IsComponentLike() bool {
	return k == KindComponent || k == KindInstance
}

// ParseKind converts a host type name into a Kind. Matching is
// case-insensitive and accepts the common aliases used by design tools
// (CANVAS for pages, COMPONENT_SET for component sets). Unknown names
// map to KindOther.
func ParseKind(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAGE", "CANVAS", "DOCUMENT":
		return KindPage
	case "GROUP", "CONTAINER", "BOOLEAN_OPERATION":
		return KindContainer
	case "FRAME":
		return KindFrame
	case "SECTION":
		return KindSection
	case "COMPONENT", "COMPONENT_SET":
		return KindComponent
	case "INSTANCE":
		return KindInstance
	case "TEXT":
		return KindText
	default:
		return KindOther
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ParseKind(string(text))
	return nil
}

// Component is the canonical definition an instance is derived from.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Node is a single element of a design-document tree.
//
// Parent is a non-owning back-reference used only for upward queries such as
// ancestor visibility and component exclusion checks. It is populated by
// Link.
type Node struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Kind       Kind    `json:"type"`
	Visible    bool    `json:"visible"`
	Characters string  `json:"characters,omitempty"`
	Children   []*Node `json:"children,omitempty"`
	Parent     *Node   `json:"-"`

	// Instance nodes only. MainComponent is set when the host supplied the
	// definition inline; otherwise MainComponentID may be resolved through a
	// ComponentResolver. Both may be empty.
	MainComponentID string     `json:"componentId,omitempty"`
	MainComponent   *Component `json:"-"`
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// EffectivelyVisible reports whether the node and all of its ancestors are
// visible. A node's own Visible flag says nothing about its ancestors.
func (n *Node) EffectivelyVisible() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if !cur.Visible {
			return false
		}
	}
	return n != nil
}

// NearestComponentAncestor returns the closest ancestor (excluding the node
// itself) that is a component or an instance, or nil if there is none.
func (n *Node) NearestComponentAncestor() *Node {
	if n == nil {
		return nil
	}
	for cur := n.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind.IsComponentLike() {
			return cur
		}
	}
	return nil
}

// Walk calls fn for n and each of its descendants in pre-order. If fn
// returns false the node's children are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Link sets the Parent pointer of every descendant of n and validates that
// ids are present and unique within the subtree. A repeated id is also how
// a cycle shows up, so Link never loops forever.
func (n *Node) Link() error {
	if n == nil {
		return Errorf(EINVALID, "node required")
	}
	seen := make(map[string]struct{})
	var link func(node, parent *Node) error
	link = func(node, parent *Node) error {
		if node == nil {
			return Errorf(EINVALID, "nil child under %q", parent.ID)
		}
		if node.ID == "" {
			return Errorf(EINVALID, "node %q has no id", node.Name)
		}
		if _, ok := seen[node.ID]; ok {
			return Errorf(EINVALID, "duplicate node id %q", node.ID)
		}
		seen[node.ID] = struct{}{}
		node.Parent = parent
		for _, child := range node.Children {
			if err := link(child, node); err != nil {
				return err
			}
		}
		return nil
	}
	return link(n, n.Parent)
}
