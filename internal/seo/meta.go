// Copyright (c) 2026 Smart Finance 360 contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ramendramauryahfh-web/smart-finance360/internal/model"
)

// DescriptionLength is the maximum length of a generated meta description.
const DescriptionLength = 160

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string // Page title (for <title> tag)
	Description   string // Meta description
	Keywords      string // Meta keywords
	Author        string // Meta author
	Canonical     string // Canonical URL
	OGTitle       string // Open Graph title
	OGDescription string // Open Graph description
	OGImage       string // Open Graph image URL (absolute)
	OGImageAlt    string // Open Graph image alt text
	OGType        string // Open Graph type (website, article)
	OGSiteName    string // Open Graph site name
	OGURL         string // Open Graph URL
	Robots        string // Robots directive
	TwitterCard   string // Twitter card type
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultOGImage  string
}

// BuildMeta builds the meta tags of an article page.
// Description falls back from MetaDescription to Excerpt to the body text.
func BuildMeta(a *model.Article, site *SiteConfig) *Meta {
	meta := &Meta{
		Title:       a.Title + " | " + site.SiteName,
		OGTitle:     a.Title,
		Keywords:    a.Keywords,
		Author:      a.Author,
		Canonical:   a.CanonicalURL,
		OGURL:       a.CanonicalURL,
		OGType:      "article",
		OGSiteName:  site.SiteName,
		OGImageAlt:  a.Title,
		Robots:      "index,follow",
		TwitterCard: "summary_large_image",
	}

	switch {
	case a.MetaDescription != "":
		meta.Description = a.MetaDescription
	case a.Excerpt != "":
		meta.Description = a.Excerpt
	default:
		meta.Description = truncateText(PlainText(string(a.Body)), DescriptionLength)
	}
	meta.OGDescription = meta.Description

	if a.ImageURL != "" {
		meta.OGImage = makeAbsoluteURL(a.ImageURL, site.SiteURL)
	} else if site.DefaultOGImage != "" {
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, site.SiteURL)
	}

	return meta
}

// SiteMeta builds the meta tags of a listing page that has no single article.
func SiteMeta(title, canonical string, site *SiteConfig) *Meta {
	if title == "" {
		title = site.SiteName
	}
	if canonical == "" {
		canonical = site.SiteURL
	}
	meta := &Meta{
		Title:         title,
		OGTitle:       title,
		Description:   site.SiteDescription,
		OGDescription: site.SiteDescription,
		Canonical:     canonical,
		OGURL:         canonical,
		OGType:        "website",
		OGSiteName:    site.SiteName,
		Robots:        "index,follow",
		TwitterCard:   "summary_large_image",
	}
	if site.DefaultOGImage != "" {
		meta.OGImage = makeAbsoluteURL(site.DefaultOGImage, site.SiteURL)
	}
	return meta
}

// PageInfo is the hand-written meta of a generated page that is not an
// article.
type PageInfo struct {
	Title         string `yaml:"title"`
	Heading       string `yaml:"heading"`
	Description   string `yaml:"description"`
	Keywords      string `yaml:"keywords"`
	Author        string `yaml:"author"`
	OGTitle       string `yaml:"og_title"`
	OGDescription string `yaml:"og_description"`
	OGImage       string `yaml:"og_image"`
	OGImageAlt    string `yaml:"og_image_alt"`
	ShareTitle    string `yaml:"share_title"`
	BasePath      string `yaml:"base_path"`
}

// BuildPageMeta builds the meta tags of a page described by p. The
// canonical URL is the site URL joined with p.BasePath. Empty OG fields
// fall back to their plain counterparts.
func BuildPageMeta(p *PageInfo, site *SiteConfig) *Meta {
	canonical := makeAbsoluteURL(p.BasePath, site.SiteURL)
	meta := SiteMeta(p.Title, canonical, site)
	meta.Keywords = p.Keywords
	meta.Author = p.Author
	if p.Description != "" {
		meta.Description = p.Description
		meta.OGDescription = p.Description
	}
	if p.OGTitle != "" {
		meta.OGTitle = p.OGTitle
	}
	if p.OGDescription != "" {
		meta.OGDescription = p.OGDescription
	}
	if p.OGImage != "" {
		meta.OGImage = makeAbsoluteURL(p.OGImage, site.SiteURL)
	}
	meta.OGImageAlt = p.OGImageAlt
	return meta
}

// ArticleSchema represents JSON-LD Article structured data.
type ArticleSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	Image            string        `json:"image,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	Keywords         string        `json:"keywords,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildArticleSchema creates JSON-LD Article structured data.
func BuildArticleSchema(a *model.Article, site *SiteConfig) template.JS {
	if a == nil {
		return ""
	}

	schema := ArticleSchema{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         a.Title,
		Description:      a.MetaDescription,
		Image:            makeAbsoluteURL(a.ImageURL, site.SiteURL),
		Keywords:         a.Keywords,
		MainEntityOfPage: a.CanonicalURL,
		Author:           &PersonSchema{Type: "Person", Name: a.Author},
		Publisher:        &OrgSchema{Type: "Organization", Name: site.SiteName},
	}
	if t, ok := model.ParseDateTime(a.DateTime); ok {
		schema.DatePublished = t.Format(time.RFC3339)
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

// PlainText extracts the visible text of an HTML fragment with runs of
// whitespace collapsed. Script and style contents are dropped.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is all there is.
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
			sb.WriteByte(' ')
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	s := string(name)
	return s == "script" || s == "style"
}

// truncateText truncates text to maxLen characters at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending the site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	url = strings.TrimPrefix(url, "../")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
