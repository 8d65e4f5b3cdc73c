package markup

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/pkg/dom"
)

// Registry maps listener and action names used in descriptions to
// functions. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	listeners map[string]dom.EventListener
	actions   map[string]func(dom.Element)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[string]dom.EventListener),
		actions:   make(map[string]func(dom.Element)),
	}
}

// Listener registers an event listener under name, replacing any previous
// one.
func (r *Registry) Listener(name string, l dom.EventListener) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners[name] = l
	return r
}

// ListenerFunc registers fn as a listener under name.
func (r *Registry) ListenerFunc(name string, fn func(dom.Event)) *Registry {
	return r.Listener(name, dom.ListenerFunc(fn))
}

// Action registers an action under name, replacing any previous one.
func (r *Registry) Action(name string, fn func(dom.Element)) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
	return r
}

// Names returns the registered listener and action names, sorted.
func (r *Registry) Names() (listeners, actions []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.listeners {
		listeners = append(listeners, name)
	}
	for name := range r.actions {
		actions = append(actions, name)
	}
	sort.Strings(listeners)
	sort.Strings(actions)
	return listeners, actions
}

func (r *Registry) listener(name string) (dom.EventListener, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.listeners[name]
	return l, ok
}

func (r *Registry) action(name string) (func(dom.Element), bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actions[name]
	return fn, ok
}

// Build creates the described element and its descendants in doc. reg may
// be nil when the description names no listeners or actions. Builder
// errors are wrapped in a PathError naming the failing element.
//
// Nested elements get their own builders, started from the parent's
// Context and finalized when the parent adopts them.
func Build(doc dom.Document, el *Element, reg *Registry, opts ...elmen.Option) (dom.Element, error) {
	if el == nil {
		return nil, invalid("", "nil element")
	}
	b, err := build(doc, el, reg, opts, "")
	if err != nil {
		return nil, err
	}
	out, err := b.Done()
	if err != nil {
		return nil, wrapAt("", err)
	}
	return out, nil
}

// build returns a configured builder that is not finalized yet. On error
// every builder it started has been finalized.
func build(doc dom.Document, el *Element, reg *Registry, opts []elmen.Option, path string) (*elmen.Builder, error) {
	b := elmen.New(doc, el.Tag, opts...)
	abort := func(err error) (*elmen.Builder, error) {
		b.Done()
		return nil, err
	}

	if len(el.Attributes) > 0 {
		b.WithAttributes(el.Attributes)
	}
	if len(el.Classes) > 0 {
		b.WithClasses(el.Classes...)
	}
	if el.CSS != nil {
		b.WithCSS(el.CSS.input())
	}
	if err := b.Err(); err != nil {
		return abort(wrapAt(path, err))
	}

	var pending []*elmen.Builder
	childOpts := append(slices.Clip(opts), elmen.WithContext(b.Context()))
	children, err := buildChildren(doc, el.Children, reg, childOpts, join(path, keyChildren), &pending)
	if err != nil {
		release(pending)
		return abort(err)
	}
	b.WithChildren(children...)
	if err := b.Err(); err != nil {
		release(pending)
		return abort(wrapAt(path, err))
	}

	for i, l := range el.Listeners {
		cfg, err := l.config(reg, index(join(path, keyListeners), i))
		if err != nil {
			return abort(err)
		}
		b.WithListeners(cfg)
		if err := b.Err(); err != nil {
			return abort(wrapAt(index(join(path, keyListeners), i), err))
		}
	}

	for i, name := range el.Actions {
		fn, ok := reg.action(name)
		if !ok {
			return abort(&PathError{
				Path: index(join(path, keyActions), i),
				Err:  &elmen.Error{Kind: elmen.MissingField, Op: elmen.OpActions, Msg: fmt.Sprintf("no action registered as %q", name)},
			})
		}
		b.WithActions(fn)
	}
	if err := b.Err(); err != nil {
		return abort(wrapAt(path, err))
	}
	return b, nil
}

// release finalizes child builders the parent did not adopt.
func release(pending []*elmen.Builder) {
	for _, c := range pending {
		if !c.Finalized() {
			c.Done()
		}
	}
}

// buildChildren converts nodes to builder children. Nested elements are
// configured first so their errors keep their own path; their builders are
// collected in pending until the parent adopts them.
func buildChildren(doc dom.Document, nodes []Node, reg *Registry, opts []elmen.Option, path string, pending *[]*elmen.Builder) ([]elmen.Child, error) {
	out := make([]elmen.Child, 0, len(nodes))
	for i, n := range nodes {
		p := index(path, i)
		switch v := n.(type) {
		case nil:
			out = append(out, nil)
		case string:
			out = append(out, elmen.Text(v))
		case json.Number, bool:
			out = append(out, elmen.Scalar(v))
		case *Element:
			child, err := build(doc, v, reg, opts, p)
			if err != nil {
				return nil, err
			}
			*pending = append(*pending, child)
			out = append(out, elmen.Of(child))
		case []Node:
			group, err := buildChildren(doc, v, reg, opts, p, pending)
			if err != nil {
				return nil, err
			}
			out = append(out, elmen.Group(group...))
		default:
			return nil, invalid(p, "unsupported child %T", n)
		}
	}
	return out, nil
}

func (l Listener) config(reg *Registry, path string) (elmen.ListenerConfig, error) {
	cfg := make(elmen.ListenerConfig, len(l.Options)+2)
	for k, v := range l.Options {
		cfg[k] = v
	}
	if l.Type != "" {
		cfg[elmen.KeyType] = l.Type
	}
	if l.Handler == "" {
		return cfg, nil
	}
	fn, ok := reg.listener(l.Handler)
	if !ok {
		return nil, &PathError{
			Path: join(path, elmen.KeyListener),
			Err:  &elmen.Error{Kind: elmen.MissingField, Op: elmen.OpListeners, Msg: fmt.Sprintf("no listener registered as %q", l.Handler)},
		}
	}
	cfg[elmen.KeyListener] = fn
	return cfg, nil
}

func (s *Style) input() elmen.StyleInput {
	switch {
	case s.Props != nil:
		names := make([]string, 0, len(s.Props))
		for name := range s.Props {
			names = append(names, name)
		}
		sort.Strings(names)
		props := make([]elmen.Property, len(names))
		for i, name := range names {
			props[i] = elmen.Prop(name, s.Props[name])
		}
		return elmen.Tuples(props...)
	case s.Rows != nil:
		return elmen.Rows(s.Rows...)
	case s.Flat != nil:
		return elmen.Flat(s.Flat...)
	default:
		return elmen.CSSText(s.Text)
	}
}

func wrapAt(path string, err error) error {
	return &PathError{Path: path, Err: err}
}
