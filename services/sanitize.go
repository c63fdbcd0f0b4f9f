package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips all markup; free-text case fields are plain text.
var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips HTML from free-text input and trims surrounding
// whitespace. Entities introduced by the sanitizer are unescaped so plain
// text like "Smith & Jones" survives unchanged.
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
