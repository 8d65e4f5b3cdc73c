package dom

import (
	"errors"
	"fmt"
	"strings"
)

// Host level failures, named after their DOM exception counterparts.
var (
	ErrSyntax           = errors.New("dom: syntax error")
	ErrInvalidCharacter = errors.New("dom: invalid character")
	ErrHierarchyRequest = errors.New("dom: hierarchy request error")
	ErrWrongDocument    = errors.New("dom: wrong document")
	ErrNotSupported     = errors.New("dom: not supported")
)

// SplitTokens splits a class attribute value into its ordered, unique tokens.
func SplitTokens(value string) []string {
	fields := strings.Fields(value)
	out := fields[:0]
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// AddTokens returns the class attribute value after adding tokens to it.
// No token is added if any of them is invalid.
func AddTokens(value string, tokens ...string) (string, error) {
	for _, tok := range tokens {
		if err := ValidateToken(tok); err != nil {
			return value, err
		}
	}
	current := SplitTokens(value)
	seen := make(map[string]bool, len(current)+len(tokens))
	for _, tok := range current {
		seen[tok] = true
	}
	for _, tok := range tokens {
		if !seen[tok] {
			seen[tok] = true
			current = append(current, tok)
		}
	}
	return strings.Join(current, " "), nil
}

// ValidateToken rejects empty tokens and tokens containing whitespace.
func ValidateToken(tok string) error {
	if tok == "" {
		return fmt.Errorf("%w: empty class token", ErrSyntax)
	}
	if strings.ContainsAny(tok, " \t\n\r\f") {
		return fmt.Errorf("%w: class token %q contains whitespace", ErrInvalidCharacter, tok)
	}
	return nil
}

// ValidateName rejects names that cannot be element tags or attribute names.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCharacter)
	}
	if strings.ContainsAny(name, " \t\n\r\f\"'<>/=") {
		return fmt.Errorf("%w: %q is not a valid name", ErrInvalidCharacter, name)
	}
	return nil
}
