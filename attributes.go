package elmen

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/elmen/pkg/dom"
)

// WithAttributes sets every entry of attrs as an attribute, in key order.
// Values are stringified; nil becomes the empty string. Attributes are never
// removed.
func (b *Builder) WithAttributes(attrs map[string]any) *Builder {
	return b.apply(OpAttributes, func(el dom.Element) error {
		names := make([]string, 0, len(attrs))
		for name := range attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value, ok := scalarString(attrs[name])
			if !ok {
				if b.opts.verbosity.validates() {
					return newError(TypeKind, OpAttributes, "attribute %q: unsupported value type %s", name, typeName(attrs[name]))
				}
				value = fmt.Sprint(attrs[name])
			}
			if err := el.SetAttribute(name, value); err != nil {
				return hostError(OpAttributes, err)
			}
		}
		return nil
	})
}

// scalarString stringifies nil, strings, fmt.Stringers, booleans and
// numbers. ok is false for any other kind.
func scalarString(v any) (s string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case *big.Int:
		if x == nil {
			return "", true
		}
		return x.String(), true
	case fmt.Stringer:
		if isNil(x) {
			return "", true
		}
		return x.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return formatFloat(rv.Float(), 32), true
	case reflect.Float64:
		return formatFloat(rv.Float(), 64), true
	default:
		return "", false
	}
}

// isPrimitive reports whether v is a boolean, a number or a big integer.
func isPrimitive(v any) bool {
	switch v.(type) {
	case json.Number, *big.Int:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// formatFloat prints numbers the way JavaScript's Number#toString does:
// plain decimals between 1e-6 and 1e21, otherwise an exponent without
// zero padding (1e-7, 1e+21).
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return trimExponent(strconv.FormatFloat(f, 'g', -1, bits))
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// trimExponent drops the leading zeros strconv pads exponents with.
func trimExponent(s string) string {
	mant, exp, ok := strings.Cut(s, "e")
	if !ok || len(exp) < 2 {
		return s
	}
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + exp[:1] + digits
}

// isNil reports whether v is nil or a nil pointer, map, slice, func or
// interface held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
