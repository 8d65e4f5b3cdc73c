// Package dom defines the capability set a UI tree host must provide to be
// driven by an elmen builder.
//
// The interfaces mirror the subset of the browser DOM the builder touches:
// element creation, attributes, the class set, inline styles, child
// appends and event subscription. Hosts live in pkg/vdom (in-memory) and
// pkg/htmlhost (golang.org/x/net/html).
//
// # CSS Declarations
//
// Hosts keep class and style state on the class and style attributes.
// ParseCSSText and Declarations give them a shared parser and serializer:
//
//	decls := dom.ParseCSSText("color: red !important; width: 10px")
//	decls.GetPropertyPriority("color") // "important"
//	decls.CSSText()                    // "color: red !important; width: 10px;"
//
// Declarations also implements StyleDeclaration on its own, so a detached
// declaration can be copied onto an element.
package dom
