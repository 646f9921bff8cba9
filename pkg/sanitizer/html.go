package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// Layout primitives used by the inquiry card. No links, images or forms.
		emailPolicy = bluemonday.NewPolicy()
		emailPolicy.AllowElements(
			"div", "p", "br", "span", "strong", "b", "em",
			"h1", "h2", "h3",
			"table", "tbody", "tr", "td", "th",
		)
		emailPolicy.AllowStyles(
			"color", "background", "background-color",
			"font-family", "font-size", "font-weight", "line-height",
			"margin", "padding", "border", "border-radius", "border-bottom",
			"text-align", "vertical-align", "white-space", "width", "max-width",
		).Globally()
		emailPolicy.AllowAttrs("width", "cellpadding", "cellspacing", "role").OnElements("table")
	})
}

// EscapeHTML entity-encodes &, <, >, " and ' so s renders as literal text.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// MultilineHTML escapes s and turns each line break (\r\n, \r or \n) into
// a <br> element.
func MultilineHTML(s string) string {
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\r", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// SanitizeEmailHTML passes a rendered email fragment through the email
// policy. Scripts, event handlers, links and embedded objects are removed;
// text content keeps its entity encoding.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}
