package extract_test

import (
	"testing"

	"github.com/fwojciec/figtext"
	"github.com/stretchr/testify/require"
)

func node(kind figtext.Kind, id, name string, children ...*figtext.Node) *figtext.Node {
	return &figtext.Node{ID: id, Name: name, Kind: kind, Visible: true, Children: children}
}

func page(children ...*figtext.Node) *figtext.Node {
	return node(figtext.KindPage, "0:1", "Page 1", children...)
}

func frame(id, name string, children ...*figtext.Node) *figtext.Node {
	return node(figtext.KindFrame, id, name, children...)
}

func group(id, name string, children ...*figtext.Node) *figtext.Node {
	return node(figtext.KindContainer, id, name, children...)
}

func sectionNode(id, name string, children ...*figtext.Node) *figtext.Node {
	return node(figtext.KindSection, id, name, children...)
}

func instance(id, name, mainName string, children ...*figtext.Node) *figtext.Node {
	n := node(figtext.KindInstance, id, name, children...)
	if mainName != "" {
		n.MainComponent = &figtext.Component{ID: "c-" + id, Name: mainName}
	}
	return n
}

func text(id, characters string) *figtext.Node {
	n := node(figtext.KindText, id, characters)
	n.Characters = characters
	return n
}

func hidden(n *figtext.Node) *figtext.Node {
	n.Visible = false
	return n
}

func linked(t *testing.T, root *figtext.Node) *figtext.Node {
	t.Helper()
	require.NoError(t, root.Link())
	return root
}
