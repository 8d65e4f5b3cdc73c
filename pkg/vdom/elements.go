package vdom

import (
	"strings"
	"sync/atomic"

	"github.com/vango-dev/elmen/pkg/dom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Document owns the nodes of one in-memory tree. Nodes of different
// documents cannot be mixed.
type Document struct {
	// id keeps the struct non-zero-sized so every document has its own
	// address.
	id uint64
}

var _ dom.Document = (*Document)(nil)

var documentIDs atomic.Uint64

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{id: documentIDs.Add(1)}
}

// NewElement creates a detached element. Tag names are lowercased.
func (d *Document) NewElement(tag string) (*VNode, error) {
	if err := dom.ValidateName(tag); err != nil {
		return nil, err
	}
	return &VNode{
		Kind:     KindElement,
		Tag:      strings.ToLower(tag),
		Children: make([]*VNode, 0),
		doc:      d,
	}, nil
}

// NewText creates a detached text node.
func (d *Document) NewText(data string) *VNode {
	return &VNode{Kind: KindText, Text: data, doc: d}
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	el, err := d.NewElement(tag)
	if err != nil {
		return nil, err
	}
	return el, nil
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(data string) dom.Node {
	return d.NewText(data)
}
