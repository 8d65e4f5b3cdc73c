package elmen

import (
	"fmt"
	"sort"

	"github.com/vango-dev/elmen/pkg/dom"
)

// Listener config keys consumed by WithListeners.
const (
	KeyType     = "type"
	KeyListener = "listener"
)

// ListenerConfig describes one event subscription. KeyType and KeyListener
// are required; every other entry is passed to the host as a listener
// option.
type ListenerConfig map[string]any

// On builds a ListenerConfig for fn with the given options.
func On(eventType string, fn func(dom.Event), opts dom.ListenerOptions) ListenerConfig {
	cfg := make(ListenerConfig, len(opts)+2)
	for k, v := range opts {
		cfg[k] = v
	}
	cfg[KeyType] = eventType
	cfg[KeyListener] = fn
	return cfg
}

// WithListeners subscribes to events on the element. The listener may be a
// dom.EventListener, a func(dom.Event) or a func().
func (b *Builder) WithListeners(configs ...ListenerConfig) *Builder {
	return b.apply(OpListeners, func(el dom.Element) error {
		for i, cfg := range configs {
			eventType, listener, err := b.listenerOf(i, cfg)
			if err != nil {
				return err
			}
			if err := el.AddEventListener(eventType, listener, cfg.options()); err != nil {
				return hostError(OpListeners, err)
			}
			b.debug("added listener", "type", eventType, "options", cfg.optionKeys())
		}
		return nil
	})
}

func (b *Builder) listenerOf(i int, cfg ListenerConfig) (string, dom.EventListener, error) {
	validate := b.opts.verbosity.validates()

	rawType, ok := cfg[KeyType]
	if !ok || rawType == nil {
		if validate {
			return "", nil, newError(MissingField, OpListeners, "listener %d: missing %q", i, KeyType)
		}
		return "", nil, newError(HostFailure, OpListeners, "listener %d has no event type", i)
	}
	eventType, ok := rawType.(string)
	if !ok {
		if validate {
			return "", nil, newError(TypeKind, OpListeners, "listener %d: %q is %s, want string", i, KeyType, typeName(rawType))
		}
		eventType = fmt.Sprint(rawType)
	}

	rawListener, ok := cfg[KeyListener]
	if !ok || isNil(rawListener) {
		if validate {
			return "", nil, newError(MissingField, OpListeners, "listener %d: missing %q", i, KeyListener)
		}
		return "", nil, newError(HostFailure, OpListeners, "listener %d has no listener", i)
	}
	listener := asListener(rawListener)
	if listener == nil {
		if validate {
			return "", nil, newError(TypeKind, OpListeners, "listener %d: %q is %s, want a function", i, KeyListener, typeName(rawListener))
		}
		return "", nil, newError(HostFailure, OpListeners, "listener %d is not callable", i)
	}
	return eventType, listener, nil
}

func asListener(v any) dom.EventListener {
	switch fn := v.(type) {
	case dom.EventListener:
		return fn
	case func(dom.Event):
		return dom.ListenerFunc(fn)
	case func():
		return dom.ListenerFunc(func(dom.Event) { fn() })
	default:
		return nil
	}
}

// options returns every entry except the type and listener, or nil when
// there are none.
func (c ListenerConfig) options() dom.ListenerOptions {
	var opts dom.ListenerOptions
	for k, v := range c {
		if k == KeyType || k == KeyListener {
			continue
		}
		if opts == nil {
			opts = make(dom.ListenerOptions, len(c))
		}
		opts[k] = v
	}
	return opts
}

// optionKeys lists the option keys in sorted order.
func (c ListenerConfig) optionKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c.options() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
