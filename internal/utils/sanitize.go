package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from free text typed by a user before it is
// sent to the backend (reviews, product descriptions).
func SanitizeText(input string) string {
	cleaned := strictPolicy.Sanitize(input)

	// bluemonday escapes entities; the backend stores plain text.
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
