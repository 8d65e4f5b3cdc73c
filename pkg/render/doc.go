// Package render serializes pkg/vdom trees to HTML.
//
// Attributes are written in insertion order, text and attribute values are
// escaped, and void elements (input, br, img, ...) get no closing tag.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// To stream HTML to a writer:
//
//	err := renderer.RenderToWriter(w, node)
//
// Pretty enables indented output for development. MarkListeners annotates
// elements with data-on-<event> attributes so a client script can find the
// elements that expect events.
package render
