package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/vango-dev/elmen"
	"github.com/vango-dev/elmen/pkg/markup"
)

// kindCodes maps builder error kinds to their codes.
var kindCodes = map[elmen.Kind]string{
	elmen.TypeKind:           CodeTypeKind,
	elmen.MissingField:       CodeMissingField,
	elmen.MalformedArguments: CodeMalformedArguments,
	elmen.Finalized:          CodeFinalized,
	elmen.HostFailure:        CodeHostFailure,
}

// FromBuild converts an error from markup.Decode or markup.Build into an
// ElmenError. Builder errors get the code of their kind, malformed
// descriptions E101 and JSON syntax errors E100. Anything else uses
// fallback.
func FromBuild(err error, fallback string) *ElmenError {
	if err == nil {
		return nil
	}
	var ee *ElmenError
	if stderrors.As(err, &ee) {
		return ee
	}

	code := fallback
	var (
		be *elmen.Error
		se *json.SyntaxError
	)
	switch {
	case stderrors.As(err, &be):
		if c, ok := kindCodes[be.Kind]; ok {
			code = c
		}
	case stderrors.As(err, &se):
		code = CodeMarkupSyntax
	case stderrors.Is(err, markup.ErrInvalid):
		code = CodeMarkupInvalid
	}

	out := New(code).Wrap(err)
	var pe *markup.PathError
	if stderrors.As(err, &pe) {
		out.Path = pe.Path
	}
	return out
}

// Offset returns the 1-based line and column of a byte offset in data, as
// reported by json.SyntaxError.
func Offset(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	column = len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, column
}

// SyntaxOffset returns the offset of a JSON syntax error wrapped in err.
func SyntaxOffset(err error) (int64, bool) {
	var se *json.SyntaxError
	if stderrors.As(err, &se) {
		return se.Offset, true
	}
	return 0, false
}
