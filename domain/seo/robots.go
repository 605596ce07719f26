// Package seo generates robots.txt and sitemap.xml from site settings and
// published content.
package seo

import "strings"

// adminPaths are never exposed to crawlers.
var adminPaths = []string{
	"/login",
	"/me",
	"/admin",
	"/upload",
	"/analytics",
}

// BuildRobots renders robots.txt. The sitemap reference is included only
// when the site URL is configured.
func BuildRobots(siteURL string) string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")
	for _, path := range adminPaths {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if siteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(siteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}

	return sb.String()
}
