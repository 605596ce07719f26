package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRobots(t *testing.T) {
	got := BuildRobots("https://example.com/")

	assert.True(t, strings.HasPrefix(got, "User-agent: *\n"))
	assert.Contains(t, got, "Disallow: /admin\n")
	assert.Contains(t, got, "Allow: /\n")
	assert.Contains(t, got, "Sitemap: https://example.com/sitemap.xml\n")
}

func TestBuildRobotsWithoutSiteURL(t *testing.T) {
	got := BuildRobots("")
	assert.NotContains(t, got, "Sitemap:")
}

func TestSitemapBuilder(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	b := NewSitemapBuilder("https://example.com/")
	b.AddHomepage()
	b.AddPage(Entry{Slug: "about", UpdatedAt: updated})
	b.AddPost(Entry{Slug: "hello-world", UpdatedAt: updated})

	body, err := b.Build()
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<loc>https://example.com/</loc>")
	assert.Contains(t, out, "<loc>https://example.com/about</loc>")
	assert.Contains(t, out, "<loc>https://example.com/blog/hello-world</loc>")
	assert.Contains(t, out, "<lastmod>2026-03-01T12:00:00Z</lastmod>")
	assert.Contains(t, out, XMLNamespace)
}

func TestSitemapBuilderEmpty(t *testing.T) {
	body, err := NewSitemapBuilder("https://example.com").Build()
	require.NoError(t, err)
	assert.Contains(t, string(body), "urlset")
}
