// Package crawl collects the documents processed in --all mode.
// Local arguments are expanded by walking directories for Markdown files;
// remote arguments are expanded into a site's pages via sitemap.xml with a
// link-crawling fallback.
package crawl

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"github.com/gaurav-prasanna/bbpipe/core"
)

// maxPages bounds link crawling to avoid runaway crawls.
const maxPages = 100

// sitemapLocs selects every <url><loc> regardless of the sitemap namespace.
const sitemapLocs = "//*[local-name()='url']/*[local-name()='loc']"

// Target is one document to convert.
type Target struct {
	// Source is a file path or an absolute URL.
	Source string
	// Rel is the slash-separated output path without extension.
	Rel    string
	Remote bool
}

// Discover expands args into targets in argument order. Directories are
// walked for Markdown files, URLs are crawled within their host, and plain
// files are taken as given. A source seen twice is kept once. Two different
// sources that map to the same output path are an error.
func Discover(ctx context.Context, args []string, fetcher core.Fetcher) ([]Target, error) {
	queue := NewQueue(func(t Target) string { return t.Source })

	for _, arg := range args {
		var (
			found []Target
			err   error
		)
		if IsRemote(arg) {
			found, err = DiscoverSite(ctx, arg, fetcher)
		} else {
			found, err = discoverLocal(arg)
		}
		if err != nil {
			return nil, err
		}
		for _, t := range found {
			if !queue.Add(t) {
				slog.Debug("skipping duplicate input", "source", t.Source)
			}
		}
	}

	targets := queue.All()
	if err := checkCollisions(targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// checkCollisions fails when two targets share an output path, e.g. a/x.md
// and b/x.md given as files, or x.md and x.markdown in one directory.
func checkCollisions(targets []Target) error {
	owner := make(map[string]string, len(targets))
	for _, t := range targets {
		if prev, ok := owner[t.Rel]; ok {
			return fmt.Errorf("output path %q is shared by %s and %s", t.Rel, prev, t.Source)
		}
		owner[t.Rel] = t.Source
	}
	return nil
}

// discoverLocal returns arg itself when it is a file, or every Markdown file
// below it when it is a directory.
func discoverLocal(arg string) ([]Target, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if !info.IsDir() {
		name := filepath.Base(arg)
		return []Target{{
			Source: filepath.Clean(arg),
			Rel:    strings.TrimSuffix(name, filepath.Ext(name)),
		}}, nil
	}

	var targets []Target
	err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != arg && IsHiddenDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdownFile(d.Name()) {
			return nil
		}
		rel, err := RelPathFromFile(arg, path)
		if err != nil {
			return err
		}
		targets = append(targets, Target{Source: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", arg, err)
	}
	return targets, nil
}

// DiscoverSite finds all internal pages starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
func DiscoverSite(ctx context.Context, baseURL string, fetcher core.Fetcher) ([]Target, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := discoverFromSitemap(ctx, sitemapURL, domain, fetcher)
	if err != nil || len(urls) == 0 {
		slog.Debug("no usable sitemap, crawling links", "url", sitemapURL, "err", err)
		urls = discoverFromLinks(ctx, baseURL, domain, fetcher)
	}

	targets := make([]Target, 0, len(urls))
	for _, u := range urls {
		targets = append(targets, Target{Source: u, Rel: RelPathFromURL(u), Remote: true})
	}
	return targets, nil
}

// discoverFromSitemap fetches and parses sitemap.xml for internal URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL string, domain string, fetcher core.Fetcher) ([]string, error) {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	doc, err := xmlquery.Parse(bytes.NewReader(result.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	nodes, err := xmlquery.QueryAll(doc, sitemapLocs)
	if err != nil {
		return nil, err
	}

	queue := NewQueue(func(s string) string { return s })
	for _, n := range nodes {
		loc := strings.TrimSpace(n.InnerText())
		if IsSameDomain(loc, domain) && !IsStaticAsset(loc) {
			queue.Add(NormalizeURL(loc))
		}
	}
	return queue.All(), nil
}

// discoverFromLinks performs BFS crawling to find internal links. Only HTML
// pages are searched for further links.
func discoverFromLinks(ctx context.Context, startURL string, domain string, fetcher core.Fetcher) []string {
	queue := NewQueue(func(s string) string { return s })
	queue.Add(NormalizeURL(startURL))

	for queue.HasNext() && queue.Seen() < maxPages {
		if ctx.Err() != nil {
			break
		}
		currentURL := queue.Next()

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			slog.Debug("skipping page", "url", currentURL, "err", err)
			continue
		}
		if !isHTML(result.ContentType) {
			continue
		}

		links, err := extractLinks(string(result.Body), currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All()
}

func isHTML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved := resolveURL(href, base)
		if resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	// Skip mailto, javascript, etc.
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
