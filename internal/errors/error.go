package errors

import (
	"bufio"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryBuilder Category = "builder"
	CategoryMarkup  Category = "markup"
	CategoryConfig  Category = "config"
	CategoryCLI     Category = "cli"
)

// Location represents a position in an input file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// ElmenError is a coded error with an optional input location, a path into
// the element description and a suggestion.
type ElmenError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (builder, markup, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Path locates the failing value in an element description
	// (e.g., "children[2].css").
	Path string

	// Location is the input position where the error occurred.
	Location *Location

	// Context contains surrounding input lines, starting at line
	// ContextStart.
	Context      []string
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ElmenError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ElmenError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds an input location and reads the surrounding lines.
func (e *ElmenError) WithLocation(file string, line, column int) *ElmenError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithPath sets the description path.
func (e *ElmenError) WithPath(path string) *ElmenError {
	e.Path = path
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ElmenError) WithSuggestion(s string) *ElmenError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ElmenError) WithDetail(d string) *ElmenError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *ElmenError) Wrap(err error) *ElmenError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file
// and returns them with the number of the first one.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	startLine := max(targetLine-contextSize/2, 1)
	endLine := targetLine + contextSize/2

	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	return lines, startLine
}

// New creates an ElmenError from a registered error code.
func New(code string) *ElmenError {
	template, ok := registry[code]
	if !ok {
		return &ElmenError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ElmenError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		DocURL:     template.DocURL,
	}
}

// Newf creates a new ElmenError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ElmenError {
	return &ElmenError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an ElmenError.
func FromError(err error, code string) *ElmenError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*ElmenError); ok {
		return ee
	}
	return New(code).Wrap(err)
}
