package elmen

import (
	"strings"

	"github.com/vango-dev/elmen/pkg/dom"
)

// importantSuffix marks a two element property as important.
const importantSuffix = " !important"

// StyleInput is one of the accepted inline style shapes: Declaration,
// Tuples, Rows, Flat or CSSText.
type StyleInput interface {
	styleInput()
}

// Property is one CSS property. Use Prop or PropPriority to build it.
type Property struct {
	Name        string
	Value       string
	Priority    string
	HasPriority bool
}

// Prop is a two element property. A value ending in " !important" is
// stripped and marked important.
func Prop(name, value string) Property {
	return Property{Name: name, Value: value}
}

// PropPriority is a three element property with an explicit priority.
func PropPriority(name, value, priority string) Property {
	return Property{Name: name, Value: value, Priority: priority, HasPriority: true}
}

type declarationInput struct{ decl dom.StyleDeclaration }
type tuplesInput []Property
type rowsInput [][]string
type flatInput []string
type cssTextInput string

func (declarationInput) styleInput() {}
func (tuplesInput) styleInput()      {}
func (rowsInput) styleInput()        {}
func (flatInput) styleInput()        {}
func (cssTextInput) styleInput()     {}

// Declaration copies every property of a style declaration, keeping values
// and priorities.
func Declaration(decl dom.StyleDeclaration) StyleInput { return declarationInput{decl: decl} }

// Tuples applies properties in order.
func Tuples(props ...Property) StyleInput { return tuplesInput(props) }

// Rows applies [name, value] and [name, value, priority] rows in order.
// Rows of any other length are malformed.
func Rows(rows ...[]string) StyleInput { return rowsInput(rows) }

// Flat consumes property/value pairs: Flat("color", "red", "width", "10px").
// An odd number of tokens is malformed.
func Flat(tokens ...string) StyleInput { return flatInput(tokens) }

// CSSText parses style attribute syntax and applies it like Declaration.
func CSSText(text string) StyleInput { return cssTextInput(text) }

// WithCSS adds inline styles to the element. It never clears a property:
// entries with an empty value are skipped.
func (b *Builder) WithCSS(inputs ...StyleInput) *Builder {
	return b.apply(OpCSS, func(el dom.Element) error {
		for _, in := range inputs {
			decls, err := b.normalizeStyle(in)
			if err != nil {
				return err
			}
			style := el.Style()
			for _, d := range decls {
				if d.Value == "" {
					b.debug("skipping CSS property with empty value", "property", d.Property)
					continue
				}
				if err := style.SetProperty(d.Property, d.Value, d.Priority); err != nil {
					return hostError(OpCSS, err)
				}
			}
		}
		return nil
	})
}

// WithCSSText is WithCSS(CSSText(text)).
func (b *Builder) WithCSSText(text string) *Builder {
	return b.WithCSS(CSSText(text))
}

// normalizeStyle funnels every input shape into ordered declarations.
func (b *Builder) normalizeStyle(in StyleInput) ([]dom.Declaration, error) {
	switch v := in.(type) {
	case declarationInput:
		if isNil(v.decl) {
			return nil, b.invalid(OpCSS, "nil style declaration")
		}
		out := make([]dom.Declaration, 0, v.decl.Len())
		for i := 0; i < v.decl.Len(); i++ {
			name := v.decl.Item(i)
			out = append(out, dom.Declaration{
				Property: name,
				Value:    v.decl.GetPropertyValue(name),
				Priority: v.decl.GetPropertyPriority(name),
			})
		}
		return out, nil

	case cssTextInput:
		return b.normalizeStyle(declarationInput{decl: dom.ParseCSSText(string(v))})

	case tuplesInput:
		out := make([]dom.Declaration, 0, len(v))
		for _, p := range v {
			out = append(out, p.declaration())
		}
		return out, nil

	case rowsInput:
		props := make(tuplesInput, 0, len(v))
		for i, row := range v {
			switch len(row) {
			case 2:
				props = append(props, Prop(row[0], row[1]))
			case 3:
				props = append(props, PropPriority(row[0], row[1], row[2]))
			default:
				return nil, newError(MalformedArguments, OpCSS,
					"row %d has %d elements, want [property, value] or [property, value, priority]", i, len(row))
			}
		}
		return b.normalizeStyle(props)

	case flatInput:
		if len(v)%2 != 0 {
			return nil, newError(MalformedArguments, OpCSS,
				"got %d tokens; CSS properties need to be property-value pairs, use Rows or Tuples for priorities", len(v))
		}
		props := make(tuplesInput, 0, len(v)/2)
		for i := 0; i < len(v); i += 2 {
			props = append(props, Prop(v[i], v[i+1]))
		}
		return b.normalizeStyle(props)

	case nil:
		return nil, b.invalid(OpCSS, "nil style input")

	default:
		return nil, b.invalid(OpCSS, "unsupported style input %s", typeName(in))
	}
}

func (p Property) declaration() dom.Declaration {
	d := dom.Declaration{Property: p.Name, Value: p.Value, Priority: p.Priority}
	if !p.HasPriority && strings.HasSuffix(p.Value, importantSuffix) {
		d.Value = strings.TrimSuffix(p.Value, importantSuffix)
		d.Priority = dom.PriorityImportant
	}
	return d
}

// invalid reports input the builder cannot process: a TypeKind error when
// validating, otherwise a HostFailure.
func (b *Builder) invalid(op, format string, args ...any) *Error {
	if b.opts.verbosity.validates() {
		return newError(TypeKind, op, format, args...)
	}
	return newError(HostFailure, op, format, args...)
}
