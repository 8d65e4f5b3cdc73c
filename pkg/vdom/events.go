package vdom

import (
	"fmt"

	"github.com/vango-dev/elmen/pkg/dom"
)

// registration is one AddEventListener subscription.
type registration struct {
	eventType string
	listener  dom.EventListener
	options   dom.ListenerOptions
}

// AddEventListener implements dom.Element. A nil listener is ignored.
func (v *VNode) AddEventListener(eventType string, listener dom.EventListener, options dom.ListenerOptions) error {
	if v.Kind != KindElement {
		return fmt.Errorf("%w: listeners on %s node", dom.ErrNotSupported, v.Kind)
	}
	if listener == nil {
		return nil
	}
	opts := make(dom.ListenerOptions, len(options))
	for k, val := range options {
		opts[k] = val
	}
	v.listeners = append(v.listeners, registration{
		eventType: eventType,
		listener:  listener,
		options:   opts,
	})
	return nil
}

// ListenerCount returns the number of listeners registered for eventType.
func (v *VNode) ListenerCount(eventType string) int {
	n := 0
	for _, r := range v.listeners {
		if r.eventType == eventType {
			n++
		}
	}
	return n
}

// ListenerTypes returns the distinct event types with listeners, in
// registration order.
func (v *VNode) ListenerTypes() []string {
	var types []string
	seen := make(map[string]bool)
	for _, r := range v.listeners {
		if !seen[r.eventType] {
			seen[r.eventType] = true
			types = append(types, r.eventType)
		}
	}
	return types
}

// ListenerOptions returns the options of the i-th listener registered for
// eventType, or nil.
func (v *VNode) ListenerOptions(eventType string, i int) dom.ListenerOptions {
	for _, r := range v.listeners {
		if r.eventType != eventType {
			continue
		}
		if i == 0 {
			return r.options
		}
		i--
	}
	return nil
}

// Event is a synthetic event dispatched through a vdom tree.
type Event struct {
	eventType string
	target    *VNode
	current   *VNode
	stopped   bool
}

var _ dom.Event = (*Event)(nil)

// NewEvent creates an event of the given type.
func NewEvent(eventType string) *Event {
	return &Event{eventType: eventType}
}

// Type implements dom.Event.
func (e *Event) Type() string { return e.eventType }

// Target implements dom.Event.
func (e *Event) Target() dom.Node {
	if e.target == nil {
		return nil
	}
	return e.target
}

// CurrentTarget implements dom.Event.
func (e *Event) CurrentTarget() dom.Node {
	if e.current == nil {
		return nil
	}
	return e.current
}

// StopPropagation prevents the event from reaching further nodes. Listeners
// on the current node still run.
func (e *Event) StopPropagation() { e.stopped = true }

// Dispatch delivers ev to target and its ancestors: capture listeners from
// the root down to the target, then bubble listeners from the target up.
// It returns the number of listeners invoked.
func Dispatch(target *VNode, ev *Event) int {
	ev.target = target

	var path []*VNode
	for n := target; n != nil; n = n.parent {
		path = append(path, n)
	}

	invoked := 0
	for i := len(path) - 1; i >= 0 && !ev.stopped; i-- {
		invoked += path[i].invoke(ev, true)
	}
	for i := 0; i < len(path) && !ev.stopped; i++ {
		invoked += path[i].invoke(ev, false)
	}
	ev.current = nil
	return invoked
}

// invoke runs the listeners of v for one phase. Once listeners are removed
// before they run.
func (v *VNode) invoke(ev *Event, capture bool) int {
	var due []dom.EventListener
	kept := v.listeners[:0]
	for _, r := range v.listeners {
		if r.eventType == ev.eventType && r.options.Capture() == capture {
			due = append(due, r.listener)
			if r.options.Once() {
				continue
			}
		}
		kept = append(kept, r)
	}
	v.listeners = kept

	ev.current = v
	for _, l := range due {
		l.HandleEvent(ev)
	}
	return len(due)
}
