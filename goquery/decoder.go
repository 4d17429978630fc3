// Package goquery decodes HTML mockups of design documents into node trees.
//
// The body becomes a single page. Landmark elements map onto design layers:
// <section> is a Section, <article>, <main> and elements carrying
// data-frame are Frames, and any element may name its layer type with a
// data-type attribute. Elements with data-component are component
// instances.
package goquery

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/figtext"
	"golang.org/x/net/html"
)

// Ensure Decoder implements figtext.DocumentDecoder.
var _ figtext.DocumentDecoder = (*Decoder)(nil)

// textTags are elements whose content reads as a single text layer.
var textTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "span": true, "a": true, "button": true, "label": true,
	"td": true, "th": true, "dt": true, "dd": true, "figcaption": true,
	"blockquote": true, "caption": true, "legend": true, "summary": true,
}

// inlineTags may appear inside a text layer without splitting it.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "code": true, "em": true,
	"i": true, "kbd": true, "mark": true, "q": true, "s": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true, "u": true,
}

// skipTags never carry visible layer text.
var skipTags = map[string]bool{
	"script": true, "style": true, "template": true, "noscript": true,
	"head": true, "svg": true, "canvas": true, "iframe": true,
}

// Decoder decodes HTML into a single-page figtext.Document.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses HTML data into a document named name.
func (d *Decoder) Decode(data []byte, name string) (*figtext.Document, error) {
	gq, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, figtext.Errorf(figtext.EINVALID, "failed to parse HTML: %v", err)
	}

	doc := &figtext.Document{
		Name:        name,
		ContentHash: strconv.FormatUint(xxhash.Sum64(data), 16),
		Components:  make(map[string]*figtext.Component),
	}
	if title := strings.TrimSpace(gq.Find("title").First().Text()); title != "" {
		doc.Name = title
	}

	gq.Find("template[data-component]").Each(func(_ int, sel *goquery.Selection) {
		id := strings.TrimSpace(sel.AttrOr("data-component", ""))
		if id == "" {
			return
		}
		doc.Components[id] = &figtext.Component{ID: id, Name: sel.AttrOr("data-name", id)}
	})

	body := gq.Find("body").First()
	if body.Length() == 0 {
		return nil, figtext.Errorf(figtext.EINVALID, "document has no body")
	}
	page := &figtext.Node{
		ID:      attrID(body, "body"),
		Name:    layerName(body, doc.Name),
		Kind:    figtext.KindPage,
		Visible: visible(body),
	}
	page.Children = children(body, page.ID)
	doc.Pages = []*figtext.Node{page}

	// Instances without a <template> refer to a component named by the
	// attribute itself.
	page.Walk(func(n *figtext.Node) bool {
		ref := n.MainComponentID
		if n.Kind == figtext.KindInstance && ref != "" && doc.Components[ref] == nil {
			doc.Components[ref] = &figtext.Component{ID: ref, Name: ref}
		}
		return true
	})

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := doc.Link(); err != nil {
		return nil, fmt.Errorf("link %q: %w", doc.Name, err)
	}
	return doc, nil
}

// children converts the contents of sel. Loose text between elements
// becomes an anonymous text layer.
func children(sel *goquery.Selection, path string) []*figtext.Node {
	var out []*figtext.Node
	sel.Contents().Each(func(i int, c *goquery.Selection) {
		p := path + "/" + strconv.Itoa(i)
		switch c.Nodes[0].Type {
		case html.TextNode:
			if s := collapse(c.Text()); s != "" {
				out = append(out, &figtext.Node{ID: p, Name: s, Kind: figtext.KindText, Visible: true, Characters: s})
			}
		case html.ElementNode:
			if n := convert(c, p); n != nil {
				out = append(out, n)
			}
		}
	})
	return out
}

func convert(sel *goquery.Selection, path string) *figtext.Node {
	tag := goquery.NodeName(sel)
	if skipTags[tag] {
		return nil
	}
	n := &figtext.Node{
		ID:      attrID(sel, path),
		Name:    layerName(sel, ""),
		Visible: visible(sel),
	}

	if ref, ok := sel.Attr("data-component"); ok && ref != "" {
		n.Kind = figtext.KindInstance
		n.Name = layerName(sel, ref)
		n.MainComponentID = ref
		n.Children = children(sel, path)
		return n
	}

	switch {
	case sel.AttrOr("data-type", "") != "":
		n.Kind = figtext.ParseKind(sel.AttrOr("data-type", ""))
	case tag == "section":
		n.Kind = figtext.KindSection
	case tag == "article" || tag == "main":
		n.Kind = figtext.KindFrame
	case sel.Is("[data-frame]"):
		n.Kind = figtext.KindFrame
		if v := sel.AttrOr("data-frame", ""); v != "" && n.Name == tag {
			n.Name = v
		}
	case isTextLayer(sel):
		n.Kind = figtext.KindText
		n.Characters = inlineText(sel.Nodes[0])
		if n.Characters == "" {
			return nil
		}
		if n.Name == tag {
			n.Name = n.Characters
		}
		return n
	default:
		n.Kind = figtext.KindContainer
	}
	if n.Kind == figtext.KindText {
		n.Characters = inlineText(sel.Nodes[0])
		return n
	}

	n.Children = children(sel, path)
	return n
}

// isTextLayer reports whether sel holds only inline content: a text tag,
// or any element without element children.
func isTextLayer(sel *goquery.Selection) bool {
	inline := true
	sel.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if !inlineTags[goquery.NodeName(c)] {
			inline = false
		}
		return inline
	})
	if !inline {
		return false
	}
	return textTags[goquery.NodeName(sel)] || sel.Children().Length() == 0
}

// inlineText renders the text of n with collapsed whitespace; <br> starts
// a new line. Hidden inline elements are dropped.
func inlineText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				if c.Data == "br" {
					b.WriteString("\n")
					continue
				}
				if skipTags[c.Data] || !visible(goquery.NewDocumentFromNode(c).Selection) {
					continue
				}
				walk(c)
			}
		}
	}
	walk(n)

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = collapse(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func attrID(sel *goquery.Selection, fallback string) string {
	if v := sel.AttrOr("data-id", ""); v != "" {
		return v
	}
	return sel.AttrOr("id", fallback)
}

// layerName prefers data-name, then id, then aria-label, then fallback,
// then the tag.
func layerName(sel *goquery.Selection, fallback string) string {
	for _, attr := range []string{"data-name", "id", "aria-label"} {
		if v := sel.AttrOr(attr, ""); v != "" {
			return v
		}
	}
	if fallback != "" {
		return fallback
	}
	return goquery.NodeName(sel)
}

// visible reports whether the element is rendered according to the hidden
// attribute or inline style.
func visible(sel *goquery.Selection) bool {
	if _, ok := sel.Attr("hidden"); ok {
		return false
	}
	style := strings.ReplaceAll(strings.ToLower(sel.AttrOr("style", "")), " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}
