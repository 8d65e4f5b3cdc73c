// Package errors provides coded, actionable error messages for the elmen CLI.
//
// Every error has a unique code (e.g., "E003") that maps to:
//   - A short message describing the error
//   - A detailed explanation
//   - A documentation URL
//
// # Error Categories
//
// Errors are organized into categories:
//   - builder: Errors recorded by a builder call (E001-E005, one per elmen.Kind)
//   - markup: Malformed JSON element descriptions (E100-E119)
//   - config: Invalid elmen.json files (E120-E139)
//   - cli: Command line failures (E140-E159)
//
// # Usage
//
//	el, err := markup.Build(doc, desc, reg)
//	if err != nil {
//	    errors.PrintError(os.Stderr, errors.FromBuild(err, errors.CodeRenderFailed))
//	}
//
// Format prints the error for a terminal:
//
//	ERROR E003: Malformed CSS arguments
//
//	  at children[1]
//
//	  Flat CSS lists must hold property/value pairs, and rows must have two
//	  or three elements.
//
//	  Hint: Use [["color", "red", "important"]] rows to give a priority.
//
//	  Cause: children[1]: elmen: withCSS: malformed arguments: got 1 tokens; ...
//
//	  Learn more: https://elmen.dev/docs/errors/E003
package errors
