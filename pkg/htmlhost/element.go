package htmlhost

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/elmen/pkg/dom"
)

// Element is an element node of an x/net/html tree.
type Element struct {
	doc *Document
	n   *html.Node
}

// Text is a text node of an x/net/html tree.
type Text struct {
	doc *Document
	n   *html.Node
}

var (
	_ dom.Element = (*Element)(nil)
	_ dom.Node    = (*Text)(nil)
)

// Node returns the underlying x/net/html node.
func (e *Element) Node() *html.Node { return e.n }

// NodeType implements dom.Node.
func (e *Element) NodeType() dom.NodeType { return dom.ElementNode }

// NodeName implements dom.Node.
func (e *Element) NodeName() string { return e.n.Data }

// TagName implements dom.Element.
func (e *Element) TagName() string { return e.n.Data }

// TextContent implements dom.Node.
func (e *Element) TextContent() string { return textContent(e.n) }

// ParentNode implements dom.Node.
func (e *Element) ParentNode() dom.Node { return parentOf(e.doc, e.n) }

// OwnerDocument implements dom.Element.
func (e *Element) OwnerDocument() dom.Document { return e.doc }

// SetAttribute implements dom.Element. Names are lowercased.
func (e *Element) SetAttribute(name, value string) error {
	if err := dom.ValidateName(name); err != nil {
		return err
	}
	name = strings.ToLower(name)
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return nil
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// GetAttribute implements dom.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ClassList implements dom.Element over the class attribute.
func (e *Element) ClassList() dom.ClassList { return dom.AttributeClassList(e) }

// Style implements dom.Element over the style attribute.
func (e *Element) Style() dom.StyleDeclaration { return dom.AttributeStyle(e) }

// AppendChild implements dom.Element. Only nodes of the same document can
// be appended.
func (e *Element) AppendChild(child dom.Node) error {
	var (
		n   *html.Node
		doc *Document
	)
	switch c := child.(type) {
	case *Element:
		if c != nil {
			n, doc = c.n, c.doc
		}
	case *Text:
		if c != nil {
			n, doc = c.n, c.doc
		}
	}
	if n == nil {
		return fmt.Errorf("%w: cannot append %T to an html tree", dom.ErrWrongDocument, child)
	}
	if doc != e.doc {
		return fmt.Errorf("%w: node belongs to another document", dom.ErrWrongDocument)
	}
	for p := e.n; p != nil; p = p.Parent {
		if p == n {
			return fmt.Errorf("%w: node is an ancestor of the parent", dom.ErrHierarchyRequest)
		}
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	e.n.AppendChild(n)
	return nil
}

// AddEventListener implements dom.Element. A nil listener is ignored.
func (e *Element) AddEventListener(eventType string, listener dom.EventListener, options dom.ListenerOptions) error {
	if listener == nil {
		return nil
	}
	opts := make(dom.ListenerOptions, len(options))
	for k, v := range options {
		opts[k] = v
	}
	e.doc.listeners[e.n] = append(e.doc.listeners[e.n], Listener{
		Type:     eventType,
		Listener: listener,
		Options:  opts,
	})
	return nil
}

// Node returns the underlying x/net/html node.
func (t *Text) Node() *html.Node { return t.n }

// NodeType implements dom.Node.
func (t *Text) NodeType() dom.NodeType { return dom.TextNode }

// NodeName implements dom.Node.
func (t *Text) NodeName() string { return "#text" }

// TextContent implements dom.Node.
func (t *Text) TextContent() string { return t.n.Data }

// ParentNode implements dom.Node.
func (t *Text) ParentNode() dom.Node { return parentOf(t.doc, t.n) }

func parentOf(d *Document, n *html.Node) dom.Node {
	if n.Parent == nil {
		return nil
	}
	return d.wrapNode(n.Parent)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}
