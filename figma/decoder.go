// Package figma decodes design documents exported as Figma-style JSON.
//
// Two shapes are accepted: a REST file response with a "document" root
// whose CANVAS children are pages and a top-level "components" map, and a
// single exported node (typically a page) as produced by plugins.
package figma

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/figtext"
)

// Ensure Decoder implements figtext.DocumentDecoder.
var _ figtext.DocumentDecoder = (*Decoder)(nil)

// Decoder decodes Figma JSON into a figtext.Document.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

type file struct {
	Name       string                `json:"name"`
	Document   *node                 `json:"document"`
	Components map[string]*component `json:"components"`
}

type component struct {
	Name string `json:"name"`
}

type node struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Visible       *bool      `json:"visible"`
	Characters    string     `json:"characters"`
	ComponentID   string     `json:"componentId"`
	MainComponent *component `json:"mainComponent"`
	Children      []*node    `json:"children"`
}

// Decode parses data. The name is used when the JSON carries none.
func (d *Decoder) Decode(data []byte, name string) (*figtext.Document, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, figtext.Errorf(figtext.EINVALID, "failed to parse figma JSON: %v", err)
	}

	doc := &figtext.Document{
		Name:        f.Name,
		ContentHash: strconv.FormatUint(xxhash.Sum64(data), 16),
		Components:  make(map[string]*figtext.Component, len(f.Components)),
	}
	if doc.Name == "" {
		doc.Name = name
	}
	for id, c := range f.Components {
		if c == nil {
			continue
		}
		doc.Components[id] = &figtext.Component{ID: id, Name: c.Name}
	}

	if f.Document != nil {
		for _, child := range f.Document.Children {
			if child == nil {
				continue
			}
			doc.Pages = append(doc.Pages, d.convert(child))
		}
	} else {
		// A single exported node: decode again as a node.
		var root node
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, figtext.Errorf(figtext.EINVALID, "failed to parse figma node: %v", err)
		}
		if root.ID == "" {
			return nil, figtext.Errorf(figtext.EINVALID, "figma JSON has neither a document nor a node id")
		}
		page := d.convert(&root)
		if page.Kind != figtext.KindPage {
			page = &figtext.Node{
				ID:       "page:" + page.ID,
				Name:     page.Name,
				Kind:     figtext.KindPage,
				Visible:  true,
				Children: []*figtext.Node{page},
			}
		}
		doc.Pages = append(doc.Pages, page)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := doc.Link(); err != nil {
		return nil, fmt.Errorf("link %q: %w", doc.Name, err)
	}
	return doc, nil
}

// convert maps a JSON node to a figtext node. Instances keep only their
// component id unless the export inlined the main component; the document
// resolves ids from its components map.
func (d *Decoder) convert(n *node) *figtext.Node {
	out := &figtext.Node{
		ID:              n.ID,
		Name:            n.Name,
		Kind:            figtext.ParseKind(n.Type),
		Visible:         n.Visible == nil || *n.Visible,
		Characters:      n.Characters,
		MainComponentID: n.ComponentID,
	}
	if n.MainComponent != nil {
		out.MainComponent = &figtext.Component{ID: n.ComponentID, Name: n.MainComponent.Name}
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		out.Children = append(out.Children, d.convert(child))
	}
	return out
}
