package elmen

import "github.com/vango-dev/elmen/pkg/dom"

// Singular forms of the chained methods. They behave exactly like the
// plural forms.

// WithAttribute sets one attribute.
func (b *Builder) WithAttribute(name string, value any) *Builder {
	return b.WithAttributes(map[string]any{name: value})
}

// WithClass is WithClasses.
func (b *Builder) WithClass(classes ...string) *Builder { return b.WithClasses(classes...) }

// WithStyle is WithCSS.
func (b *Builder) WithStyle(inputs ...StyleInput) *Builder { return b.WithCSS(inputs...) }

// WithStyles is WithCSS.
func (b *Builder) WithStyles(inputs ...StyleInput) *Builder { return b.WithCSS(inputs...) }

// WithChild is WithChildren.
func (b *Builder) WithChild(children ...Child) *Builder { return b.WithChildren(children...) }

// WithListener is WithListeners.
func (b *Builder) WithListener(configs ...ListenerConfig) *Builder {
	return b.WithListeners(configs...)
}

// WithAction is WithActions.
func (b *Builder) WithAction(actions ...func(el dom.Element)) *Builder {
	return b.WithActions(actions...)
}
