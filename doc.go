// Package elmen provides a fluent builder around a single host element.
//
// A Builder is created from a tag name, an existing element or another
// builder, configured with chained calls and released with Done:
//
//	doc := vdom.NewDocument()
//	el, err := elmen.New(doc, "button").
//		WithAttributes(map[string]any{"type": "submit"}).
//		WithClasses("btn", "btn-primary").
//		WithCSS(elmen.Flat("color", "white", "padding", "4px")).
//		WithChildren(elmen.Text("Save")).
//		WithListeners(elmen.On("click", save, nil)).
//		Done()
//
// Builders work against the capability set in pkg/dom. pkg/vdom and
// pkg/htmlhost are two hosts implementing it.
//
// # Errors
//
// The first failing call records an *Error and the rest of the chain is
// skipped. Use errors.Is with the Err* sentinels to test the Kind.
//
// # Verbosity
//
// WithVerbosity(NoChecks) skips argument validation. Input the builder
// cannot process then fails as a HostFailure instead of TypeKind,
// MissingField or MalformedArguments. High adds debug logging through the
// builder's slog.Logger.
package elmen
