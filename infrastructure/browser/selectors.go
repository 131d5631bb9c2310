package browser

import (
	"fmt"
	"regexp"
	"strings"

	"pos_snapshots/domain/entities"

	"github.com/tebeka/selenium"
)

var bareTag = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// PlaywrightSelector - renders s in playwright's selector engine syntax
func PlaywrightSelector(s entities.Selector) (string, error) {
	switch {
	case s.Text != "":
		return "text=" + s.Text, nil
	case s.CSS != "" && s.HasText != "":
		return fmt.Sprintf("%s:has-text(%s)", s.CSS, cssString(s.HasText)), nil
	case s.CSS != "":
		return s.CSS, nil
	case s.XPath != "":
		return "xpath=" + s.XPath, nil
	default:
		return "", fmt.Errorf("empty selector")
	}
}

const (
	byXPath = selenium.ByXPATH
	byCSS   = selenium.ByCSSSelector
)

// SeleniumLocator - picks a WebDriver strategy and value for s.
// Text matches are translated to XPath since WebDriver CSS has no text pseudo-classes.
func SeleniumLocator(s entities.Selector) (by, value string, err error) {
	switch {
	case s.XPath != "":
		return byXPath, s.XPath, nil
	case s.Text != "":
		return byXPath, fmt.Sprintf("//*[text()[contains(normalize-space(.), %s)]]", xpathLiteral(s.Text)), nil
	case s.CSS != "" && s.HasText != "":
		if !bareTag.MatchString(s.CSS) {
			return "", "", fmt.Errorf("selector %s needs an XPath override for selenium", s)
		}
		return byXPath, fmt.Sprintf("//%s[contains(normalize-space(.), %s)]", s.CSS, xpathLiteral(s.HasText)), nil
	case s.CSS != "":
		if strings.Contains(s.CSS, ":has") {
			return "", "", fmt.Errorf("selector %s needs an XPath override for selenium", s)
		}
		return byCSS, s.CSS, nil
	default:
		return "", "", fmt.Errorf("empty selector")
	}
}

// relativeXPath - anchors an absolute XPath to the element it is evaluated from
func relativeXPath(xpath string) string {
	if strings.HasPrefix(xpath, "/") {
		return "." + xpath
	}
	return xpath
}

// xpathLiteral - quotes s as an XPath 1.0 string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = "'" + part + "'"
	}
	return "concat(" + strings.Join(quoted, `, "'", `) + ")"
}

// cssString - quotes s as a CSS string
func cssString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
