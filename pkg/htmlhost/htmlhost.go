package htmlhost

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/elmen/pkg/dom"
)

// Document creates and tracks x/net/html nodes. html.Node has no notion of
// listeners, so subscriptions live on the document keyed by node.
type Document struct {
	nodes     map[*html.Node]*Element
	texts     map[*html.Node]*Text
	listeners map[*html.Node][]Listener
}

// Listener is one recorded subscription.
type Listener struct {
	Type     string
	Listener dom.EventListener
	Options  dom.ListenerOptions
}

var _ dom.Document = (*Document)(nil)

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		nodes:     make(map[*html.Node]*Element),
		texts:     make(map[*html.Node]*Text),
		listeners: make(map[*html.Node][]Listener),
	}
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	if err := dom.ValidateName(tag); err != nil {
		return nil, err
	}
	tag = strings.ToLower(tag)
	el, err := d.Wrap(&html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	})
	if err != nil {
		return nil, err
	}
	return el, nil
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(data string) dom.Node {
	return d.text(&html.Node{Type: html.TextNode, Data: data})
}

// Wrap adopts an existing element node, for example one produced by
// html.Parse, into the document.
func (d *Document) Wrap(n *html.Node) (*Element, error) {
	if n == nil || n.Type != html.ElementNode {
		return nil, fmt.Errorf("%w: htmlhost can only wrap element nodes", dom.ErrNotSupported)
	}
	if el, ok := d.nodes[n]; ok {
		return el, nil
	}
	el := &Element{doc: d, n: n}
	d.nodes[n] = el
	return el, nil
}

// Listeners returns the subscriptions recorded for el.
func (d *Document) Listeners(el *Element) []Listener {
	return d.listeners[el.n]
}

func (d *Document) text(n *html.Node) *Text {
	if t, ok := d.texts[n]; ok {
		return t
	}
	t := &Text{doc: d, n: n}
	d.texts[n] = t
	return t
}

// wrapNode returns the dom.Node for n, or nil for node types the host does
// not expose.
func (d *Document) wrapNode(n *html.Node) dom.Node {
	switch n.Type {
	case html.ElementNode:
		if el, err := d.Wrap(n); err == nil {
			return el
		}
		return nil
	case html.TextNode:
		return d.text(n)
	default:
		return nil
	}
}

// Render writes n as HTML.
func Render(w io.Writer, n dom.Node) error {
	raw, err := Unwrap(n)
	if err != nil {
		return err
	}
	return html.Render(w, raw)
}

// RenderToString renders n to a string.
func RenderToString(n dom.Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Unwrap returns the x/net/html node behind a host node.
func Unwrap(n dom.Node) (*html.Node, error) {
	switch v := n.(type) {
	case *Element:
		return v.n, nil
	case *Text:
		return v.n, nil
	default:
		return nil, fmt.Errorf("%w: %T is not an htmlhost node", dom.ErrWrongDocument, n)
	}
}
