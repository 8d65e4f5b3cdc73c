package elmen

import (
	"fmt"
	"strings"
)

// Verbosity controls argument validation and diagnostic output. It never
// changes the outcome of valid calls.
type Verbosity int

const (
	// NoChecks skips argument validation. Input the builder cannot process
	// surfaces as a HostFailure instead of a TypeKind or MissingField error.
	NoChecks Verbosity = iota

	// Default validates arguments.
	Default

	// High validates arguments and logs every operation at debug level.
	High
)

// String returns the string representation of the Verbosity.
func (v Verbosity) String() string {
	switch v {
	case NoChecks:
		return "none"
	case Default:
		return "default"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Verbosity(%d)", int(v))
	}
}

// ParseVerbosity parses "none", "default" or "high" (case insensitive).
// "nochecks" and "no_checks" are accepted for "none".
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "nochecks", "no_checks":
		return NoChecks, nil
	case "", "default":
		return Default, nil
	case "high":
		return High, nil
	default:
		return Default, fmt.Errorf("unknown verbosity %q (want none, default or high)", s)
	}
}

// validates reports whether arguments are checked.
func (v Verbosity) validates() bool { return v > NoChecks }
