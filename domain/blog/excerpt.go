package blog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

const ellipsis = "..."

// Excerpt derives a plain-text excerpt from HTML content. Markup is
// stripped, whitespace collapsed, and the text truncated at the last whole
// word within length characters, with an ellipsis marking the cut.
func Excerpt(content string, length int) string {
	text := html.UnescapeString(stripPolicy.Sanitize(content))
	text = strings.Join(strings.Fields(text), " ")

	if length <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= length {
		return text
	}

	cut := string(runes[:length])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + ellipsis
}
