package elmen

import (
	"errors"
	"fmt"

	"github.com/vango-dev/elmen/pkg/dom"
)

// Child is one of the accepted child shapes: Text, NodeChild, Of, Scalar,
// Group or Auto. A nil Child is skipped.
type Child interface {
	child()
}

type textChild string
type nodeChild struct{ node dom.Node }
type builderChild struct{ b *Builder }
type scalarChild struct{ v any }
type groupChild []Child
type autoChild struct{ v any }

func (textChild) child()    {}
func (nodeChild) child()    {}
func (builderChild) child() {}
func (scalarChild) child()  {}
func (groupChild) child()   {}
func (autoChild) child()    {}

// Text appends a text node.
func Text(s string) Child { return textChild(s) }

// Textf appends a formatted text node.
func Textf(format string, args ...any) Child { return textChild(fmt.Sprintf(format, args...)) }

// NodeChild appends an existing host node unchanged.
func NodeChild(n dom.Node) Child { return nodeChild{node: n} }

// Of finalizes a child builder and appends its element. The child builder
// cannot be appended again.
func Of(b *Builder) Child { return builderChild{b: b} }

// Scalar appends the string form of a boolean, a number or a *big.Int.
// Other values are a TypeKind error unless verbosity is NoChecks.
func Scalar(v any) Child { return scalarChild{v: v} }

// Group flattens children one level, so a slice can be spread among other
// children. A Group nested in a Group is a TypeKind error when validating.
func Group(children ...Child) Child { return groupChild(children) }

// Auto picks the shape from the runtime type of v: nil, string, dom.Node,
// *Builder, Child, []Child, []any or a scalar. Anything else is a TypeKind
// error, or a text node of fmt.Sprint(v) when verbosity is NoChecks.
func Auto(v any) Child { return autoChild{v: v} }

// WithChildren appends children to the element in order, skipping nil
// entries.
func (b *Builder) WithChildren(children ...Child) *Builder {
	return b.apply(OpChildren, func(el dom.Element) error {
		for _, c := range children {
			if err := b.appendChild(el, c, 0); err != nil {
				return err
			}
		}
		return nil
	})
}

// appendChild normalizes c into host nodes and appends them. depth counts
// enclosing groups.
func (b *Builder) appendChild(el dom.Element, c Child, depth int) error {
	switch v := c.(type) {
	case nil:
		return b.skip("nil child")

	case textChild:
		return b.appendText(el, string(v))

	case nodeChild:
		if isNil(v.node) {
			return b.skip("nil node")
		}
		return b.appendNode(el, v.node)

	case builderChild:
		if v.b == nil {
			return b.skip("nil builder")
		}
		node, err := v.b.Done()
		if err != nil {
			if errors.Is(err, ErrFinalized) {
				return newError(Finalized, OpChildren, "child builder was already finalized")
			}
			return err
		}
		if isNil(node) {
			return b.invalid(OpChildren, "child builder holds no element")
		}
		return b.appendNode(el, node)

	case scalarChild:
		if v.v == nil {
			return b.skip("nil scalar")
		}
		if !isPrimitive(v.v) && b.opts.verbosity.validates() {
			return newError(TypeKind, OpChildren, "unsupported scalar child %s", typeName(v.v))
		}
		s, ok := scalarString(v.v)
		if !ok {
			s = fmt.Sprint(v.v)
		}
		return b.appendText(el, s)

	case groupChild:
		if depth > 0 {
			if b.opts.verbosity.validates() {
				return newError(TypeKind, OpChildren, "groups flatten one level, got a nested group")
			}
		}
		for _, gc := range v {
			if err := b.appendChild(el, gc, depth+1); err != nil {
				return err
			}
		}
		return nil

	case autoChild:
		return b.appendChild(el, b.resolveAuto(v.v), depth)

	default:
		return b.invalid(OpChildren, "unsupported child %s", typeName(c))
	}
}

// resolveAuto maps a dynamic value to a concrete Child. Unknown values map
// to themselves wrapped in a scalarChild so validation reports them.
func (b *Builder) resolveAuto(v any) Child {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return textChild(x)
	case *Builder:
		return builderChild{b: x}
	case dom.Node:
		return nodeChild{node: x}
	case Child:
		return x
	case []Child:
		return groupChild(x)
	case []any:
		group := make(groupChild, len(x))
		for i, item := range x {
			group[i] = autoChild{v: item}
		}
		return group
	case []string:
		group := make(groupChild, len(x))
		for i, item := range x {
			group[i] = textChild(item)
		}
		return group
	}
	if isNil(v) {
		return nil
	}
	return scalarChild{v: v}
}

func (b *Builder) appendText(el dom.Element, s string) error {
	doc := el.OwnerDocument()
	if isNil(doc) {
		return newError(HostFailure, OpChildren, "element has no owner document to create text")
	}
	return b.appendNode(el, doc.CreateTextNode(s))
}

func (b *Builder) appendNode(el dom.Element, n dom.Node) error {
	if err := el.AppendChild(n); err != nil {
		return hostError(OpChildren, err)
	}
	return nil
}

func (b *Builder) skip(what string) error {
	b.debug("skipping child", "child", what)
	return nil
}
