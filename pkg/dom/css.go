package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// PriorityImportant is the only priority CSS recognizes.
const PriorityImportant = "important"

// Declaration is one property of a style declaration.
type Declaration struct {
	Property string
	Value    string
	Priority string
}

// Declarations is an ordered, detached StyleDeclaration.
type Declarations struct {
	list []Declaration
}

// ParseCSSText parses style attribute syntax ("color: red; width: 10px").
// Malformed entries are dropped, as a browser would.
func ParseCSSText(text string) *Declarations {
	d := &Declarations{}
	for _, decl := range splitDeclarations(lex(text)) {
		colon := slices.IndexFunc(decl, func(t css.Token) bool { return t.TokenType == css.ColonToken })
		if colon < 0 {
			continue
		}
		nameToks := trimWhitespace(decl[:colon])
		if len(nameToks) != 1 {
			continue
		}
		var name string
		switch nameToks[0].TokenType {
		case css.IdentToken:
			name = normalizeProperty(string(nameToks[0].Data))
		case css.CustomPropertyNameToken:
			name = string(nameToks[0].Data)
		default:
			continue
		}
		value, priority := splitPriority(decl[colon+1:])
		if value == "" {
			continue
		}
		d.set(name, value, priority)
	}
	return d
}

// SplitImportant strips a trailing "!important" from value and reports the
// resulting priority.
func SplitImportant(value string) (string, string) {
	return splitPriority(lex(value))
}

// lex tokenizes text with the tdewolff CSS lexer, dropping comments.
func lex(text string) []css.Token {
	l := css.NewLexer(parse.NewInputString(text))
	var toks []css.Token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return toks
		case css.CommentToken:
			continue
		}
		toks = append(toks, css.Token{TokenType: tt, Data: slices.Clone(data)})
	}
}

// splitDeclarations splits tokens on semicolons outside blocks and
// functions. Strings and url() bodies are single tokens already.
func splitDeclarations(toks []css.Token) [][]css.Token {
	var out [][]css.Token
	start, depth := 0, 0
	for i, t := range toks {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				out = append(out, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(out, toks[start:])
}

// splitPriority joins value tokens, collapsing whitespace, and strips a
// trailing "!" "important" pair.
func splitPriority(toks []css.Token) (string, string) {
	toks = trimWhitespace(toks)
	priority := ""
	if n := len(toks); n > 0 && toks[n-1].TokenType == css.IdentToken && strings.EqualFold(string(toks[n-1].Data), PriorityImportant) {
		rest := trimWhitespace(toks[:n-1])
		if m := len(rest); m > 0 && rest[m-1].TokenType == css.DelimToken && string(rest[m-1].Data) == "!" {
			toks = trimWhitespace(rest[:m-1])
			priority = PriorityImportant
		}
	}

	var b strings.Builder
	space := false
	for _, t := range toks {
		if t.TokenType == css.WhitespaceToken {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(t.Data)
	}
	return b.String(), priority
}

func trimWhitespace(toks []css.Token) []css.Token {
	for len(toks) > 0 && toks[0].TokenType == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].TokenType == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// Len implements StyleDeclaration.
func (d *Declarations) Len() int { return len(d.list) }

// Item implements StyleDeclaration. Out of range indexes return "".
func (d *Declarations) Item(index int) string {
	if index < 0 || index >= len(d.list) {
		return ""
	}
	return d.list[index].Property
}

// GetPropertyValue implements StyleDeclaration.
func (d *Declarations) GetPropertyValue(name string) string {
	if i := d.index(normalizeProperty(name)); i >= 0 {
		return d.list[i].Value
	}
	return ""
}

// GetPropertyPriority implements StyleDeclaration.
func (d *Declarations) GetPropertyPriority(name string) string {
	if i := d.index(normalizeProperty(name)); i >= 0 {
		return d.list[i].Priority
	}
	return ""
}

// SetProperty implements StyleDeclaration. Priorities other than "" and
// "important" leave the declaration untouched, as do values carrying their
// own "!important".
func (d *Declarations) SetProperty(name, value, priority string) error {
	name = normalizeProperty(name)
	if name == "" {
		return fmt.Errorf("%w: empty CSS property name", ErrSyntax)
	}
	switch {
	case priority == "":
	case strings.EqualFold(priority, PriorityImportant):
		priority = PriorityImportant
	default:
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		d.remove(name)
		return nil
	}
	if _, p := SplitImportant(value); p != "" {
		return nil
	}
	d.set(name, value, priority)
	return nil
}

// CSSText implements StyleDeclaration.
func (d *Declarations) CSSText() string {
	var b strings.Builder
	for i, decl := range d.list {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(decl.Property)
		b.WriteString(": ")
		b.WriteString(decl.Value)
		if decl.Priority != "" {
			b.WriteString(" !")
			b.WriteString(decl.Priority)
		}
		b.WriteByte(';')
	}
	return b.String()
}

// All returns a copy of the declarations in order.
func (d *Declarations) All() []Declaration {
	out := make([]Declaration, len(d.list))
	copy(out, d.list)
	return out
}

func (d *Declarations) index(name string) int {
	for i, decl := range d.list {
		if decl.Property == name {
			return i
		}
	}
	return -1
}

func (d *Declarations) set(name, value, priority string) {
	if i := d.index(name); i >= 0 {
		d.list[i].Value = value
		d.list[i].Priority = priority
		return
	}
	d.list = append(d.list, Declaration{Property: name, Value: value, Priority: priority})
}

func (d *Declarations) remove(name string) {
	if i := d.index(name); i >= 0 {
		d.list = append(d.list[:i], d.list[i+1:]...)
	}
}

// normalizeProperty lowercases standard properties. Custom properties
// (--name) are case sensitive.
func normalizeProperty(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "--") {
		return name
	}
	return strings.ToLower(name)
}
