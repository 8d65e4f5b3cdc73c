package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrInvalid is wrapped by every PathError reporting a malformed
// description.
var ErrInvalid = errors.New("markup: invalid description")

// PathError reports the value that failed and where it sits in the
// description.
type PathError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PathError) Unwrap() error {
	return e.Err
}

func invalid(path, format string, args ...any) error {
	return &PathError{Path: path, Err: fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))}
}

// Element is a decoded element description.
type Element struct {
	Tag        string
	Attributes map[string]any
	Classes    []string
	CSS        *Style
	Children   []Node
	Listeners  []Listener
	Actions    []string
}

// Style is the css field. Exactly one field is set.
type Style struct {
	Text  string
	Flat  []string
	Rows  [][]string
	Props map[string]string
}

// Node is one child: nil, a string, a json.Number, a bool, an *Element or
// a []Node group.
type Node any

// Listener is one listeners entry. Handler names a registered listener.
type Listener struct {
	Type    string
	Handler string
	Options map[string]any
}

// Known element keys.
const (
	keyTag        = "tag"
	keyAttributes = "attributes"
	keyClasses    = "classes"
	keyCSS        = "css"
	keyChildren   = "children"
	keyListeners  = "listeners"
	keyActions    = "actions"
)

// Decode reads one element description. Numbers are kept as json.Number.
func Decode(r io.Reader) (*Element, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, invalid("", "trailing data after the element")
	}
	return parseElement(raw, "")
}

// DecodeString is Decode on a string.
func DecodeString(s string) (*Element, error) {
	return Decode(strings.NewReader(s))
}

// Parse converts a generic JSON value, as produced by encoding/json with
// UseNumber, into an Element.
func Parse(v any) (*Element, error) {
	return parseElement(v, "")
}

func parseElement(v any, path string) (*Element, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "element must be an object, got %s", jsonType(v))
	}

	el := &Element{}
	for _, key := range sortedKeys(obj) {
		val := obj[key]
		p := join(path, key)
		var err error
		switch key {
		case keyTag:
			el.Tag, err = parseString(val, p)
		case keyAttributes:
			el.Attributes, err = parseAttributes(val, p)
		case keyClasses:
			el.Classes, err = parseStrings(val, p)
		case keyCSS:
			el.CSS, err = parseStyle(val, p)
		case keyChildren:
			el.Children, err = parseChildren(val, p)
		case keyListeners:
			el.Listeners, err = parseListeners(val, p)
		case keyActions:
			el.Actions, err = parseStrings(val, p)
		default:
			err = invalid(p, "unknown field")
		}
		if err != nil {
			return nil, err
		}
	}
	if el.Tag == "" {
		return nil, invalid(join(path, keyTag), "missing tag")
	}
	return el, nil
}

func parseString(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid(path, "want string, got %s", jsonType(v))
	}
	return s, nil
}

func parseStrings(v any, path string) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "want array of strings, got %s", jsonType(v))
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, err := parseString(item, index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func parseAttributes(v any, path string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, invalid(path, "want object, got %s", jsonType(v))
	}
	for _, key := range sortedKeys(obj) {
		switch obj[key].(type) {
		case nil, string, json.Number, bool:
		default:
			return nil, invalid(join(path, key), "attribute values must be scalars, got %s", jsonType(obj[key]))
		}
	}
	return obj, nil
}

func parseStyle(v any, path string) (*Style, error) {
	switch x := v.(type) {
	case string:
		return &Style{Text: x}, nil

	case map[string]any:
		props := make(map[string]string, len(x))
		for _, key := range sortedKeys(x) {
			s, err := parseString(x[key], join(path, key))
			if err != nil {
				return nil, err
			}
			props[key] = s
		}
		return &Style{Props: props}, nil

	case []any:
		if len(x) == 0 {
			return &Style{Flat: []string{}}, nil
		}
		if _, rows := x[0].([]any); rows {
			out := make([][]string, len(x))
			for i, row := range x {
				r, err := parseStrings(row, index(path, i))
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return &Style{Rows: out}, nil
		}
		flat, err := parseStrings(x, path)
		if err != nil {
			return nil, err
		}
		return &Style{Flat: flat}, nil

	default:
		return nil, invalid(path, "css must be a string, an object or an array, got %s", jsonType(v))
	}
}

func parseChildren(v any, path string) ([]Node, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "want array, got %s", jsonType(v))
	}
	out := make([]Node, len(list))
	for i, item := range list {
		n, err := parseNode(item, index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func parseNode(v any, path string) (Node, error) {
	switch x := v.(type) {
	case nil, string, json.Number, bool:
		return x, nil
	case map[string]any:
		return parseElement(x, path)
	case []any:
		return parseChildren(x, path)
	default:
		return nil, invalid(path, "unsupported child %s", jsonType(v))
	}
}

func parseListeners(v any, path string) ([]Listener, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalid(path, "want array, got %s", jsonType(v))
	}
	out := make([]Listener, len(list))
	for i, item := range list {
		p := index(path, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, invalid(p, "listener must be an object, got %s", jsonType(item))
		}
		l := Listener{}
		for _, key := range sortedKeys(obj) {
			switch key {
			case "type":
				s, err := parseString(obj[key], join(p, key))
				if err != nil {
					return nil, err
				}
				l.Type = s
			case "listener":
				s, err := parseString(obj[key], join(p, key))
				if err != nil {
					return nil, err
				}
				l.Handler = s
			default:
				if l.Options == nil {
					l.Options = make(map[string]any)
				}
				l.Options[key] = obj[key]
			}
		}
		out[i] = l
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
