package observe

import (
	"errors"

	"github.com/vango-dev/elmen"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

func status(err error) string {
	if err != nil {
		return statusError
	}
	return statusOK
}

// kindLabel maps an error to a low cardinality label value.
func kindLabel(err error) string {
	var e *elmen.Error
	if !errors.As(err, &e) {
		return "other"
	}
	switch e.Kind {
	case elmen.TypeKind:
		return "type_kind"
	case elmen.MissingField:
		return "missing_field"
	case elmen.MalformedArguments:
		return "malformed_arguments"
	case elmen.Finalized:
		return "finalized"
	case elmen.HostFailure:
		return "host_failure"
	default:
		return "unknown"
	}
}
