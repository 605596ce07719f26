package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserAgent(t *testing.T) {
	browser, os := parseUserAgent(
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, "Chrome 120", browser)
	assert.Contains(t, os, "Windows")
}

func TestParseUserAgentEmpty(t *testing.T) {
	browser, os := parseUserAgent("")
	assert.Equal(t, "Unknown", browser)
	assert.Equal(t, "Unknown", os)
}

func TestParseUserAgentBot(t *testing.T) {
	browser, os := parseUserAgent(
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.Equal(t, "Googlebot 2", browser)
	assert.Equal(t, "Unknown", os)
}

func TestParseUserAgentGarbage(t *testing.T) {
	browser, os := parseUserAgent("not a real user agent")
	assert.Equal(t, "Unknown", browser)
	assert.Equal(t, "Unknown", os)
}

func TestBuildFilter(t *testing.T) {
	where, args := buildFilter(ListFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildFilter(ListFilter{Search: "blog"})
	assert.Contains(t, where, "page_url ILIKE $1")
	assert.Equal(t, []interface{}{"%blog%"}, args)

	where, args = buildFilter(ListFilter{Search: "blog", Country: "Germany"})
	assert.Contains(t, where, "country = $2")
	assert.Len(t, args, 2)
}
