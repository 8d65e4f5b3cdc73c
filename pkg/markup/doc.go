// Package markup builds elements from a JSON description.
//
// A description mirrors the builder calls:
//
//	{
//	  "tag": "div",
//	  "attributes": {"id": "x"},
//	  "classes": ["a"],
//	  "css": [["color", "red !important"]],
//	  "children": ["hi", 5, null, {"tag": "span"}],
//	  "listeners": [{"type": "click", "listener": "log", "once": true}],
//	  "actions": ["focus"]
//	}
//
// css may be a cssText string, a flat array of property/value pairs, an
// array of [property, value] or [property, value, priority] rows, or an
// object of property values. Children may be strings, numbers, booleans,
// null (skipped), nested descriptions or arrays, which are flattened one
// level.
//
// Listener and action names resolve through a Registry. Errors carry the
// path of the failing value, e.g. "children[3].css[0]".
package markup
