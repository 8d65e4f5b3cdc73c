// Package vdom provides an in-memory UI tree that implements the pkg/dom
// capability set.
//
// The tree is mutable: elements are created through a Document, configured
// through the dom.Element methods and linked with AppendChild. It is the
// default host for elmen builders and the input of pkg/render.
//
// # Core Types
//
// VNode is the node type for both elements and text. Attributes are kept in
// insertion order; the class set and the inline style are live views over
// the class and style attributes.
//
//	doc := vdom.NewDocument()
//	div, _ := doc.NewElement("div")
//	div.ClassList().Add("card")
//	div.Style().SetProperty("color", "red", "important")
//	div.AppendChild(doc.NewText("hello"))
//
// # Events
//
// AddEventListener records subscriptions with their options bag. Dispatch
// walks the ancestor path, running capture listeners top-down and bubble
// listeners bottom-up, and drops once listeners after their first call.
package vdom
