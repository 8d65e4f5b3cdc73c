package dom

// AttributeStore is the attribute access a host exposes to the class and
// style views.
type AttributeStore interface {
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string) error
}

// AttributeClassList returns a ClassList backed by the class attribute of s.
func AttributeClassList(s AttributeStore) ClassList {
	return classList{store: s}
}

// AttributeStyle returns a StyleDeclaration backed by the style attribute
// of s. Every call reparses the attribute, so SetAttribute("style", ...) and
// the view never disagree.
func AttributeStyle(s AttributeStore) StyleDeclaration {
	return style{store: s}
}

type classList struct {
	store AttributeStore
}

func (c classList) tokens() []string {
	value, _ := c.store.GetAttribute("class")
	return SplitTokens(value)
}

func (c classList) Add(tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	value, _ := c.store.GetAttribute("class")
	updated, err := AddTokens(value, tokens...)
	if err != nil {
		return err
	}
	return c.store.SetAttribute("class", updated)
}

func (c classList) Contains(token string) bool {
	for _, t := range c.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

func (c classList) Len() int { return len(c.tokens()) }

func (c classList) Item(index int) string {
	toks := c.tokens()
	if index < 0 || index >= len(toks) {
		return ""
	}
	return toks[index]
}

type style struct {
	store AttributeStore
}

func (s style) decls() *Declarations {
	text, _ := s.store.GetAttribute("style")
	return ParseCSSText(text)
}

func (s style) Len() int                               { return s.decls().Len() }
func (s style) Item(index int) string                  { return s.decls().Item(index) }
func (s style) GetPropertyValue(name string) string    { return s.decls().GetPropertyValue(name) }
func (s style) GetPropertyPriority(name string) string { return s.decls().GetPropertyPriority(name) }
func (s style) CSSText() string                        { return s.decls().CSSText() }

func (s style) SetProperty(name, value, priority string) error {
	_, had := s.store.GetAttribute("style")
	d := s.decls()
	if err := d.SetProperty(name, value, priority); err != nil {
		return err
	}
	if !had && d.Len() == 0 {
		return nil
	}
	return s.store.SetAttribute("style", d.CSSText())
}
