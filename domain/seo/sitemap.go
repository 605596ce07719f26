package seo

import (
	"encoding/xml"
	"time"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is a single url entry.
type SitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap is the complete urlset document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// Entry is one piece of published content to list in the sitemap.
type Entry struct {
	Slug      string
	UpdatedAt time.Time
}

// SitemapBuilder accumulates entries and renders the XML document.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: trimSlash(siteURL)}
}

// AddHomepage lists the site root with top priority.
func (b *SitemapBuilder) AddHomepage() {
	b.urls = append(b.urls, SitemapURL{
		Loc:        b.siteURL + "/",
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
}

// AddPage lists a static page.
func (b *SitemapBuilder) AddPage(e Entry) {
	url := SitemapURL{
		Loc:        b.siteURL + "/" + e.Slug,
		ChangeFreq: "weekly",
		Priority:   "0.8",
	}
	if !e.UpdatedAt.IsZero() {
		url.LastMod = e.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// AddPost lists a published blog post.
func (b *SitemapBuilder) AddPost(e Entry) {
	url := SitemapURL{
		Loc:        b.siteURL + "/blog/" + e.Slug,
		ChangeFreq: "monthly",
		Priority:   "0.6",
	}
	if !e.UpdatedAt.IsZero() {
		url.LastMod = e.UpdatedAt.Format(time.RFC3339)
	}
	b.urls = append(b.urls, url)
}

// Build renders the sitemap with the XML declaration prepended.
func (b *SitemapBuilder) Build() ([]byte, error) {
	doc := Sitemap{XMLNS: XMLNamespace, URLs: b.urls}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
