package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/elmen/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// MarkListeners adds a data-on-<event>="true" attribute for every event
	// type an element listens to.
	MarkListeners bool
}

// Renderer serializes vdom trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0, false)
}

// renderNode dispatches rendering based on node kind. indent is set when the
// node starts on its own pretty-printed line.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int, indent bool) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth, indent)
	case vdom.KindText:
		return r.renderText(w, node, depth, indent)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int, indent bool) error {
	tag := node.Tag

	if indent {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	// Void elements have no closing tag; children appended to them are dropped.
	if vdom.IsVoidElement(tag) {
		if indent {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag) && !onlyText(node)
	if block {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1, block); err != nil {
			return err
		}
	}

	if block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if indent {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, node *vdom.VNode, depth int, indent bool) error {
	if indent {
		r.writeIndent(w, depth)
	}
	if _, err := io.WriteString(w, escapeHTML(node.Text)); err != nil {
		return err
	}
	if indent {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders attributes in insertion order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	for _, a := range node.Attrs {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Key, escapeAttr(a.Value)); err != nil {
			return err
		}
	}
	if !r.config.MarkListeners {
		return nil
	}
	for _, eventType := range node.ListenerTypes() {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, escapeAttr(eventType)); err != nil {
			return err
		}
	}
	return nil
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

func onlyText(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c.Kind != vdom.KindText {
			return false
		}
	}
	return true
}
