package elmen

import (
	"context"

	"github.com/vango-dev/elmen/pkg/dom"
)

// Builder wraps one host element and configures it through chained calls.
//
// The first failing call records its error; every later call is a no-op
// and the error is returned by Err, Get and Done. Steps applied before the
// failure stay applied. A Builder is not safe for concurrent use.
type Builder struct {
	el        dom.Element
	finalized bool
	err       error
	opts      options
	span      Span
}

// New creates an element with the given tag through doc and wraps it.
func New(doc dom.Document, tag string, opts ...Option) *Builder {
	b := newBuilder(opts)
	switch {
	case doc == nil:
		b.fail(newError(HostFailure, OpNew, "no document to create <%s>", tag))
	case tag == "" && b.opts.verbosity.validates():
		b.fail(newError(TypeKind, OpNew, "empty tag name"))
	default:
		el, err := doc.CreateElement(tag)
		if err != nil {
			b.fail(hostError(OpNew, err))
		} else {
			b.el = el
		}
	}
	return b.begin()
}

// Wrap wraps an existing host element.
func Wrap(el dom.Element, opts ...Option) *Builder {
	b := newBuilder(opts)
	if isNil(el) {
		if b.opts.verbosity.validates() {
			b.fail(newError(TypeKind, OpNew, "cannot wrap a nil element"))
		}
	} else {
		b.el = el
	}
	return b.begin()
}

// From borrows the element of another builder. src is not finalized and
// both builders configure the same element.
func From(src *Builder, opts ...Option) *Builder {
	b := newBuilder(opts)
	switch {
	case src == nil:
		if b.opts.verbosity.validates() {
			b.fail(newError(TypeKind, OpNew, "cannot borrow from a nil builder"))
		}
	case src.finalized:
		b.fail(newError(Finalized, OpNew, "cannot borrow from a finalized builder"))
	default:
		b.el = src.el
	}
	return b.begin()
}

// NewFrom accepts a tag name, a dom.Element or a *Builder. Any other source
// is a TypeKind error unless verbosity is NoChecks, in which case the
// builder holds no element and every call fails with HostFailure.
func NewFrom(doc dom.Document, src any, opts ...Option) *Builder {
	switch v := src.(type) {
	case string:
		return New(doc, v, opts...)
	case *Builder:
		return From(v, opts...)
	case dom.Element:
		return Wrap(v, opts...)
	}
	b := newBuilder(opts)
	if b.opts.verbosity.validates() {
		b.fail(newError(TypeKind, OpNew, "cannot build from %s", typeName(src)))
	}
	return b.begin()
}

func newBuilder(opts []Option) *Builder {
	return &Builder{opts: buildOptions(opts)}
}

func (b *Builder) begin() *Builder {
	tag := ""
	if b.el != nil {
		tag = b.el.TagName()
	}
	b.span = b.opts.observer.Begin(b.opts.ctx, tag)
	if b.err != nil {
		b.span.Op(OpNew, b.err)
	}
	return b
}

// Err returns the recorded error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Context returns the context to start child builders from. When the
// observer's span is a ContextSpan it carries that span, so children
// created with WithContext(b.Context()) nest under this builder.
func (b *Builder) Context() context.Context {
	if cs, ok := b.span.(ContextSpan); ok {
		if ctx := cs.Context(); ctx != nil {
			return ctx
		}
	}
	return b.opts.ctx
}

// Finalized reports whether Done has been called.
func (b *Builder) Finalized() bool {
	return b.finalized
}

// Get returns the element without changing state. After Done it fails
// with a Finalized error.
func (b *Builder) Get() (dom.Element, error) {
	if b.finalized {
		return nil, newError(Finalized, OpGet, "element was released by done")
	}
	return b.el, b.err
}

// Done returns the element and finalizes the builder, releasing its link
// to the element. A second call fails with a Finalized error. A recorded
// error is returned together with the element.
func (b *Builder) Done() (dom.Element, error) {
	if b.finalized {
		return nil, newError(Finalized, OpDone, "done called twice")
	}
	b.trace(OpDone)
	el := b.el
	b.el = nil
	b.finalized = true
	b.span.End(b.err)
	return el, b.err
}

// MustDone is like Done but panics on error.
func (b *Builder) MustDone() dom.Element {
	el, err := b.Done()
	if err != nil {
		panic(err)
	}
	return el
}

// apply runs one chained operation unless the builder already failed.
func (b *Builder) apply(op string, fn func(el dom.Element) error) *Builder {
	if b.err != nil {
		return b
	}
	var err error
	switch {
	case b.finalized:
		err = newError(Finalized, op, "builder was finalized by done")
	case b.el == nil:
		err = newError(HostFailure, op, "builder holds no element")
	default:
		err = fn(b.el)
	}
	b.span.Op(op, err)
	if err != nil {
		b.fail(err)
		return b
	}
	b.trace(op)
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
	if b.opts.verbosity == High {
		b.opts.logger.Debug("builder call failed", "error", err)
	}
}

func (b *Builder) trace(op string) {
	if b.opts.verbosity != High {
		return
	}
	tag := ""
	if b.el != nil {
		tag = b.el.TagName()
	}
	b.opts.logger.Debug("builder call", "op", op, "tag", tag)
}

// debug logs a diagnostic under High verbosity.
func (b *Builder) debug(msg string, args ...any) {
	if b.opts.verbosity == High {
		b.opts.logger.Debug(msg, args...)
	}
}

// WithClasses adds class tokens to the element. Duplicates are idempotent.
func (b *Builder) WithClasses(classes ...string) *Builder {
	return b.apply(OpClasses, func(el dom.Element) error {
		if err := el.ClassList().Add(classes...); err != nil {
			return hostError(OpClasses, err)
		}
		return nil
	})
}

// WithActions runs each function with the element, in order.
func (b *Builder) WithActions(actions ...func(el dom.Element)) *Builder {
	return b.apply(OpActions, func(el dom.Element) error {
		for i, action := range actions {
			if action == nil {
				if b.opts.verbosity.validates() {
					return newError(TypeKind, OpActions, "action %d is nil, want func(dom.Element)", i)
				}
				return newError(HostFailure, OpActions, "action %d is not callable", i)
			}
			action(el)
		}
		return nil
	})
}
