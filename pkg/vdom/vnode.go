package vdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/elmen/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is a mutable node of an in-memory UI tree. It implements dom.Element
// for elements and dom.Node for text nodes.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Text     string   // For KindText
	Attrs    []Attr   // Attributes in insertion order
	Children []*VNode // Child nodes

	parent    *VNode
	doc       *Document
	listeners []registration
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

var _ dom.Element = (*VNode)(nil)

// NodeType implements dom.Node.
func (v *VNode) NodeType() dom.NodeType {
	if v.Kind == KindText {
		return dom.TextNode
	}
	return dom.ElementNode
}

// NodeName implements dom.Node.
func (v *VNode) NodeName() string {
	if v.Kind == KindText {
		return "#text"
	}
	return v.Tag
}

// TextContent implements dom.Node.
func (v *VNode) TextContent() string {
	if v.Kind == KindText {
		return v.Text
	}
	var b strings.Builder
	v.writeText(&b)
	return b.String()
}

func (v *VNode) writeText(b *strings.Builder) {
	for _, c := range v.Children {
		if c.Kind == KindText {
			b.WriteString(c.Text)
		} else {
			c.writeText(b)
		}
	}
}

// ParentNode implements dom.Node.
func (v *VNode) ParentNode() dom.Node {
	if v.parent == nil {
		return nil
	}
	return v.parent
}

// Parent returns the parent as a *VNode.
func (v *VNode) Parent() *VNode { return v.parent }

// TagName implements dom.Element.
func (v *VNode) TagName() string { return v.Tag }

// OwnerDocument implements dom.Element.
func (v *VNode) OwnerDocument() dom.Document {
	if v.doc == nil {
		return nil
	}
	return v.doc
}

// SetAttribute implements dom.Element.
func (v *VNode) SetAttribute(name, value string) error {
	if v.Kind != KindElement {
		return fmt.Errorf("%w: attributes on %s node", dom.ErrNotSupported, v.Kind)
	}
	if err := dom.ValidateName(name); err != nil {
		return err
	}
	name = strings.ToLower(name)
	for i := range v.Attrs {
		if v.Attrs[i].Key == name {
			v.Attrs[i].Value = value
			return nil
		}
	}
	v.Attrs = append(v.Attrs, Attr{Key: name, Value: value})
	return nil
}

// GetAttribute implements dom.Element.
func (v *VNode) GetAttribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range v.Attrs {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// ClassList implements dom.Element.
func (v *VNode) ClassList() dom.ClassList { return dom.AttributeClassList(v) }

// Style implements dom.Element.
func (v *VNode) Style() dom.StyleDeclaration { return dom.AttributeStyle(v) }

// AppendChild implements dom.Element.
func (v *VNode) AppendChild(child dom.Node) error {
	c, ok := child.(*VNode)
	if !ok || c == nil {
		return fmt.Errorf("%w: cannot append %T to a vdom tree", dom.ErrWrongDocument, child)
	}
	if v.Kind != KindElement {
		return fmt.Errorf("%w: %s nodes cannot have children", dom.ErrHierarchyRequest, v.Kind)
	}
	if c.doc != v.doc {
		return fmt.Errorf("%w: node belongs to another document", dom.ErrWrongDocument)
	}
	for p := v; p != nil; p = p.parent {
		if p == c {
			return fmt.Errorf("%w: node is an ancestor of the parent", dom.ErrHierarchyRequest)
		}
	}
	c.detach()
	c.parent = v
	v.Children = append(v.Children, c)
	return nil
}

// detach removes v from its parent's children.
func (v *VNode) detach() {
	p := v.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == v {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	v.parent = nil
}
