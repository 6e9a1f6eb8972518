// Package sanitize escapes untrusted text before it is interpolated into
// markup.
package sanitize

import "strings"

var replacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&#39;",
	`"`, "&quot;",
)

// Escape replaces the HTML-significant characters & < > ' " with entities.
// All other characters pass through unchanged.
func Escape(s string) string {
	if s == "" {
		return ""
	}
	return replacer.Replace(s)
}
