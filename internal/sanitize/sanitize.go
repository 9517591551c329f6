// Package sanitize cleans member-authored text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy = bluemonday.StrictPolicy()
	htmlPolicy = bluemonday.UGCPolicy()
)

// Text strips all markup and surrounding whitespace. Entities are decoded so
// the stored value is plain text; templates escape it again on output.
func Text(s string) string {
	if s == "" {
		return ""
	}

	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// OptionalText is Text for nullable fields; a value that cleans to empty becomes nil.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}

	cleaned := Text(*s)

	if cleaned == "" {
		return nil
	}

	return &cleaned
}

// HTML keeps user-generated-content markup such as paragraphs, emphasis, lists
// and links, and removes scripts, event handlers and unsafe URLs.
func HTML(s string) string {
	if s == "" {
		return ""
	}

	return strings.TrimSpace(htmlPolicy.Sanitize(s))
}
