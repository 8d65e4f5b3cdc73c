package dom

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1 // <div>, <button>, etc.
	TextNode                        // Plain text node
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is any member of a UI tree.
type Node interface {
	NodeType() NodeType

	// NodeName is the tag name for elements and "#text" for text nodes.
	NodeName() string

	// TextContent is the concatenated text of the node and its descendants.
	TextContent() string

	// ParentNode returns the parent, or nil for detached nodes.
	ParentNode() Node
}

// Element is a host element the builder can configure.
type Element interface {
	Node

	TagName() string
	OwnerDocument() Document

	// SetAttribute sets name to value, replacing any previous value.
	SetAttribute(name, value string) error
	GetAttribute(name string) (string, bool)

	// ClassList is a live view over the class attribute.
	ClassList() ClassList

	// Style is a live view over the style attribute.
	Style() StyleDeclaration

	// AppendChild appends child as the last child. A child that already has a
	// parent is moved.
	AppendChild(child Node) error

	AddEventListener(eventType string, listener EventListener, options ListenerOptions) error
}

// Document creates nodes that belong to one host tree.
type Document interface {
	CreateElement(tag string) (Element, error)
	CreateTextNode(data string) Node
}

// ClassList is the ordered set of class tokens of an element.
type ClassList interface {
	Add(tokens ...string) error
	Contains(token string) bool
	Len() int
	Item(index int) string
}

// StyleDeclaration is an indexable collection of CSS property, value and
// priority triples.
type StyleDeclaration interface {
	Len() int
	Item(index int) string
	GetPropertyValue(name string) string
	GetPropertyPriority(name string) string

	// SetProperty sets name to value with an optional "important" priority.
	// An empty value removes the property.
	SetProperty(name, value, priority string) error

	// CSSText serializes the declaration in style attribute syntax.
	CSSText() string
}

// Event is delivered to listeners.
type Event interface {
	Type() string
	Target() Node
	CurrentTarget() Node
}

// EventListener receives events.
type EventListener interface {
	HandleEvent(ev Event)
}

// ListenerFunc adapts a function to EventListener.
type ListenerFunc func(ev Event)

// HandleEvent implements EventListener.
func (f ListenerFunc) HandleEvent(ev Event) { f(ev) }

// ListenerOptions holds the options bag of a subscription (capture, once,
// passive and any host specific key).
type ListenerOptions map[string]any

// Capture reports whether the listener runs during the capture phase.
func (o ListenerOptions) Capture() bool { return o.flag("capture") }

// Once reports whether the listener is removed after its first call.
func (o ListenerOptions) Once() bool { return o.flag("once") }

// Passive reports whether the listener promised not to cancel the event.
func (o ListenerOptions) Passive() bool { return o.flag("passive") }

func (o ListenerOptions) flag(key string) bool {
	v, _ := o[key].(bool)
	return v
}
