// Package htmlsanitize strips unsafe markup from user-authored
// content before it is stored or rendered. Feedback text, chat
// messages and rubric descriptions all pass through here.
package htmlsanitize

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td", "p", "span", "div")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Sanitize returns the input with disallowed tags and attributes
// removed. Plain text passes through unchanged.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

// ToHTML sanitizes and marks the result safe for template output.
func ToHTML(s string) template.HTML {
	return template.HTML(policy.Sanitize(s))
}

// StripTags removes all markup, leaving text only. Used where the
// destination is a plain-text field such as a chat line.
func StripTags(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
