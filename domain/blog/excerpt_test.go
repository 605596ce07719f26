package blog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerptStripsMarkupAndTruncatesAtWordBoundary(t *testing.T) {
	content := "<p>" + strings.Repeat("word ", 100) + "</p>"

	got := Excerpt(content, 50)

	assert.LessOrEqual(t, len(got), 53)
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.True(t, strings.HasSuffix(got, "..."))
	// The cut lands exactly on a word boundary, never mid-word.
	body := strings.TrimSuffix(got, "...")
	assert.True(t, strings.HasSuffix(body, "word"))
}

func TestExcerptShortContentUntouched(t *testing.T) {
	assert.Equal(t, "hello world", Excerpt("<b>hello</b> world", 50))
}

func TestExcerptUnescapesEntities(t *testing.T) {
	assert.Equal(t, "fish & chips", Excerpt("<p>fish &amp; chips</p>", 50))
}

func TestExcerptCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", Excerpt("<div>a\n\n  b\tc</div>", 50))
}

func TestExcerptZeroLength(t *testing.T) {
	assert.Equal(t, "", Excerpt("<p>anything</p>", 0))
}
