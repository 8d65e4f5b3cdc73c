// Package htmlhost adapts golang.org/x/net/html nodes to the pkg/dom
// capability set, so builders can produce trees that html.Render can
// serialize or that were obtained from html.Parse.
//
//	doc := htmlhost.NewDocument()
//	el, _ := doc.CreateElement("p")
//	el.AppendChild(doc.CreateTextNode("hi"))
//	out, _ := htmlhost.RenderToString(el) // <p>hi</p>
//
// Listeners cannot be represented by html.Node, so the Document records
// them and exposes them through Listeners.
package htmlhost
