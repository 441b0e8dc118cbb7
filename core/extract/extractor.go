// Package extract implements the Extractor interface.
// It isolates the main content from a full HTML page by:
//  1. Finding the best content container (<main>, <article>, or <body>)
//  2. Removing noise elements (nav, footer, scripts, forms, etc.)
//  3. Resolving relative links and image sources against the page URL
package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before extraction.
// Images stay: every dialect has an image tag.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// linkAttrs lists the URL-bearing attributes rewritten to absolute form.
var linkAttrs = map[string]string{
	"a[href]":  "href",
	"img[src]": "src",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns a cleaned HTML fragment containing
// only the main content.
func (e *HTMLExtractor) Extract(html string, baseURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	// Remove noise elements first (operates on the whole document).
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	if baseURL != "" {
		base, err := url.Parse(baseURL)
		if err != nil {
			return "", fmt.Errorf("parsing base URL: %w", err)
		}
		absolutize(doc, base)
	}

	// Find the best content container in priority order.
	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	return result, nil
}

// Title returns the document <title>, or "" if there is none.
func (e *HTMLExtractor) Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func absolutize(doc *goquery.Document, base *url.URL) {
	for sel, attr := range linkAttrs {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			v, _ := s.Attr(attr)
			if v == "" || strings.HasPrefix(v, "#") {
				return
			}
			ref, err := url.Parse(v)
			if err != nil {
				return
			}
			s.SetAttr(attr, base.ResolveReference(ref).String())
		})
	}
}
