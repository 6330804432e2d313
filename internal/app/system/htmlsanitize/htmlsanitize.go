// Package htmlsanitize cleans user-supplied free text before it is stored.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup (paragraphs, lists, links with
// safe schemes) and drops scripts, event handlers and embedded frames.
// Used for vacancy and document descriptions, which the frontend renders
// as rich text.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}

// PlainText strips every tag and returns unescaped text. Used for remarks
// and notes.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
