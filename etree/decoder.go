// Package etree decodes SVG exports of design documents into node trees.
//
// Figma-style SVG exports keep the layer structure as nested <g> elements
// whose id attributes carry layer names. Richer exports may add data-type,
// data-name and data-id attributes, which take precedence when present.
package etree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/figtext"
)

// Ensure Decoder implements figtext.DocumentDecoder.
var _ figtext.DocumentDecoder = (*Decoder)(nil)

// Decoder decodes SVG into a single-page figtext.Document.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses SVG data into a document named name.
func (d *Decoder) Decode(data []byte, name string) (*figtext.Document, error) {
	x := etree.NewDocument()
	if err := x.ReadFromBytes(data); err != nil {
		return nil, figtext.Errorf(figtext.EINVALID, "failed to parse SVG: %v", err)
	}
	root := x.Root()
	if root == nil || root.Tag != "svg" {
		return nil, figtext.Errorf(figtext.EINVALID, "document root is not <svg>")
	}

	doc := &figtext.Document{
		Name:        name,
		ContentHash: strconv.FormatUint(xxhash.Sum64(data), 16),
		Components:  make(map[string]*figtext.Component),
	}
	if title := root.SelectElement("title"); title != nil && strings.TrimSpace(title.Text()) != "" {
		doc.Name = strings.TrimSpace(title.Text())
	}

	c := &converter{symbols: make(map[string]*etree.Element)}
	for _, sym := range root.FindElements("//symbol") {
		id := sym.SelectAttrValue("id", "")
		if id == "" {
			continue
		}
		c.symbols[id] = sym
		doc.Components[id] = &figtext.Component{ID: id, Name: layerName(sym, id)}
	}

	page := &figtext.Node{
		ID:      root.SelectAttrValue("id", "svg"),
		Name:    layerName(root, doc.Name),
		Kind:    figtext.KindPage,
		Visible: visible(root),
	}
	page.Children = c.children(root, page.ID, "")
	doc.Pages = []*figtext.Node{page}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := doc.Link(); err != nil {
		return nil, fmt.Errorf("link %q: %w", doc.Name, err)
	}
	return doc, nil
}

type converter struct {
	symbols map[string]*etree.Element
	// expanding guards against <use> elements that reference their own symbol.
	expanding []string
}

// children converts the child elements of el. path is the generated id of
// el, used for children without an id attribute; prefix is prepended to
// every id inside an expanded symbol so instance copies stay unique.
func (c *converter) children(el *etree.Element, path, prefix string) []*figtext.Node {
	var out []*figtext.Node
	for i, child := range el.ChildElements() {
		if n := c.convert(child, path+"/"+strconv.Itoa(i), prefix); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (c *converter) convert(el *etree.Element, path, prefix string) *figtext.Node {
	id := prefix + el.SelectAttrValue("data-id", el.SelectAttrValue("id", path))
	n := &figtext.Node{
		ID:      id,
		Name:    layerName(el, ""),
		Visible: visible(el),
	}

	switch el.Tag {
	case "g", "a", "switch":
		n.Kind = figtext.KindContainer
		if t := el.SelectAttrValue("data-type", ""); t != "" {
			n.Kind = figtext.ParseKind(t)
		}
		n.Children = c.children(el, path, prefix)
	case "svg":
		n.Kind = figtext.KindFrame
		n.Children = c.children(el, path, prefix)
	case "text":
		n.Kind = figtext.KindText
		n.Characters = textContent(el)
		if n.Name == "" {
			n.Name = n.Characters
		}
	case "use":
		ref := strings.TrimPrefix(el.SelectAttrValue("href", ""), "#")
		n.Kind = figtext.KindInstance
		n.MainComponentID = ref
		if n.Name == "" {
			n.Name = ref
		}
		if sym, ok := c.symbols[ref]; ok && !slices.Contains(c.expanding, ref) {
			c.expanding = append(c.expanding, ref)
			n.Children = c.children(sym, path, "I"+id+";")
			c.expanding = c.expanding[:len(c.expanding)-1]
		}
	default:
		// defs, symbol, shapes and metadata carry no text of their own.
		return nil
	}
	return n
}

// layerName prefers data-name, then id, then fallback.
func layerName(el *etree.Element, fallback string) string {
	if v := el.SelectAttrValue("data-name", ""); v != "" {
		return v
	}
	return el.SelectAttrValue("id", fallback)
}

// visible reports whether the element is rendered according to its
// visibility and display attributes or inline style.
func visible(el *etree.Element) bool {
	if el.SelectAttrValue("visibility", "") == "hidden" || el.SelectAttrValue("display", "") == "none" {
		return false
	}
	style := strings.ReplaceAll(el.SelectAttrValue("style", ""), " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}

// textContent returns the characters of a <text> element. Each <tspan> is
// a line; loose character data outside tspans is kept as well.
func textContent(el *etree.Element) string {
	var lines []string
	var loose strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			loose.WriteString(t.Data)
		case *etree.Element:
			if t.Tag == "tspan" {
				lines = append(lines, strings.TrimSpace(collect(t)))
			}
		}
	}
	if s := strings.TrimSpace(loose.String()); s != "" {
		lines = append([]string{s}, lines...)
	}
	return strings.Join(lines, "\n")
}

func collect(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(collect(t))
		}
	}
	return b.String()
}
