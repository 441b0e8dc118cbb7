// Package crawl — input filtering rules.
// Helpers to classify, filter and normalize files and URLs found while
// collecting documents for --all mode.
package crawl

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// markdownExtensions are the file extensions collected from directories.
var markdownExtensions = map[string]bool{
	".md": true, ".markdown": true, ".mdown": true, ".mkd": true,
}

var htmlExtensions = map[string]bool{
	".html": true, ".htm": true, ".xhtml": true,
}

// staticExtensions are remote resources that are never documents.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".json": true, ".xml": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// IsMarkdownFile reports whether name has a Markdown extension.
func IsMarkdownFile(name string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsHTMLFile reports whether name has an HTML extension.
func IsHTMLFile(name string) bool {
	return htmlExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsHiddenDir reports whether a directory name is hidden (".git", ".cache").
func IsHiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}

// IsRemote reports whether arg is an http(s) URL rather than a path.
func IsRemote(arg string) bool {
	parsed, err := url.Parse(arg)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Remove fragment.
	parsed.Fragment = ""

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}

// RelPathFromURL maps a page URL to an output path without extension.
// Example: https://site.com/docs/intro.md → site_com/docs/intro
func RelPathFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	p := strings.Trim(parsed.Path, "/")
	if p == "" {
		p = "index"
	}
	p = strings.TrimSuffix(p, path.Ext(p))
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		parts = append(parts, sanitize(seg))
	}
	return strings.Join(parts, "/")
}

// RelPathFromFile maps a file below root to a slash-separated output path
// without extension.
func RelPathFromFile(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel), nil
}

// sanitize replaces characters that are unsafe in file names with
// underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '_':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
