package entities

import "fmt"

// Selector identifies an element on the page.
//
// Exactly one matching strategy is used: Text matches an element by its
// visible text, CSS matches by attribute/structure, and CSS with HasText
// matches elements of CSS that contain the given text. XPath is an optional
// override for drivers that cannot express text pseudo-classes.
type Selector struct {
	Text    string `json:"text,omitempty"`
	CSS     string `json:"css,omitempty"`
	HasText string `json:"has_text,omitempty"`
	XPath   string `json:"xpath,omitempty"`
}

// ByText - selector matching visible text
func ByText(text string) Selector {
	return Selector{Text: text}
}

// ByCSS - selector matching a CSS expression
func ByCSS(css string) Selector {
	return Selector{CSS: css}
}

// ButtonWithText - selector matching a button that contains text
func ButtonWithText(text string) Selector {
	return Selector{CSS: "button", HasText: text}
}

// ByAriaLabel - selector matching an element of tag by its aria-label
func ByAriaLabel(tag, label string) Selector {
	return Selector{CSS: fmt.Sprintf("%s[aria-label='%s']", tag, label)}
}

// ByPlaceholder - selector matching an input by placeholder
func ByPlaceholder(placeholder string) Selector {
	return Selector{CSS: fmt.Sprintf("[placeholder=%q]", placeholder)}
}

// WithXPath returns a copy of s carrying an explicit XPath override
func (s Selector) WithXPath(xpath string) Selector {
	s.XPath = xpath
	return s
}

// IsZero reports whether no strategy is set
func (s Selector) IsZero() bool {
	return s.Text == "" && s.CSS == "" && s.XPath == ""
}

func (s Selector) String() string {
	switch {
	case s.Text != "":
		return fmt.Sprintf("text %q", s.Text)
	case s.HasText != "":
		return fmt.Sprintf("%s containing %q", s.CSS, s.HasText)
	case s.CSS != "":
		return s.CSS
	default:
		return s.XPath
	}
}
