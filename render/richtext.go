package render

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inline tags allowed in rich text attribute values, everything else is
// unwrapped to its text.
var inlineTags = map[atom.Atom]bool{
	atom.A:      true,
	atom.B:      true,
	atom.Code:   true,
	atom.Em:     true,
	atom.I:      true,
	atom.Mark:   true,
	atom.S:      true,
	atom.Span:   true,
	atom.Strong: true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.U:      true,
}

// dropped with content
var droppedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Template: true,
}

var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

// RichText appends sanitized inline markup to parent. Values which fail to
// parse are appended as plain text.
func RichText(parent *etree.Element, raw string) {
	if !strings.ContainsAny(raw, "<&") {
		appendText(parent, raw)
		return
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), fragmentContext)
	if err != nil {
		appendText(parent, raw)
		return
	}
	for _, n := range nodes {
		appendNode(parent, n)
	}
}

// RichTextElement creates element with rich text content.
func RichTextElement(parent *etree.Element, tag, class, raw string) *etree.Element {
	el := Child(parent, tag, class)
	RichText(el, raw)
	return el
}

// PlainText returns text content of rich text value.
func PlainText(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return raw
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), fragmentContext)
	if err != nil {
		return raw
	}
	var b strings.Builder
	for _, n := range nodes {
		collectText(&b, n)
	}
	return b.String()
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(b, c)
		}
	}
}

func appendNode(parent *etree.Element, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		appendText(parent, n.Data)
	case html.ElementNode:
		if droppedTags[n.DataAtom] {
			return
		}
		target := parent
		if inlineTags[n.DataAtom] {
			target = parent.CreateElement(n.DataAtom.String())
			copyAttrs(target, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			appendNode(target, c)
		}
	}
}

func copyAttrs(el *etree.Element, n *html.Node) {
	if n.DataAtom != atom.A {
		return
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "href":
			if SafeURL(a.Val) {
				el.CreateAttr("href", a.Val)
			}
		case "target":
			if a.Val == "_blank" {
				el.CreateAttr("target", "_blank")
				el.CreateAttr("rel", "noopener noreferrer")
			}
		}
	}
}

// SafeURL accepts relative links and a few well known schemes.
func SafeURL(u string) bool {
	u = strings.ToLower(strings.TrimSpace(u))
	scheme, _, found := strings.Cut(u, ":")
	if !found || strings.ContainsAny(scheme, "/?#") {
		return true
	}
	switch scheme {
	case "http", "https", "mailto", "tel":
		return true
	}
	return false
}

// appendText adds text after the last child element or as element text,
// etree keeps text following child elements in their tail.
func appendText(parent *etree.Element, text string) {
	if text == "" {
		return
	}
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + text)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + text)
}
