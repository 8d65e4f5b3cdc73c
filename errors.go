package elmen

import (
	"fmt"
	"reflect"
)

// Kind classifies builder failures.
type Kind uint8

const (
	// TypeKind means an argument's runtime type is wrong or unsupported.
	TypeKind Kind = iota + 1

	// MissingField means a required key is absent from a configuration map.
	MissingField

	// MalformedArguments means a variadic argument list violates an arity rule.
	MalformedArguments

	// Finalized means the builder, or a child builder, was already finalized.
	Finalized

	// HostFailure means the host rejected an operation or had nothing to
	// operate on.
	HostFailure
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type kind"
	case MissingField:
		return "missing field"
	case MalformedArguments:
		return "malformed arguments"
	case Finalized:
		return "already finalized"
	case HostFailure:
		return "host failure"
	default:
		return "unknown"
	}
}

// Error is the error recorded by a failing builder call.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op is the builder method that detected it (e.g. "withCSS").
	Op string

	// Msg describes the offending input.
	Msg string

	// Err is the underlying host error, if any.
	Err error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrTypeKind           = &Error{Kind: TypeKind}
	ErrMissingField       = &Error{Kind: MissingField}
	ErrMalformedArguments = &Error{Kind: MalformedArguments}
	ErrFinalized          = &Error{Kind: Finalized}
	ErrHostFailure        = &Error{Kind: HostFailure}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "elmen"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	msg += ": " + e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped host error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func hostError(op string, err error) *Error {
	return &Error{Kind: HostFailure, Op: op, Err: err}
}

// typeName describes v for TypeKind messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
