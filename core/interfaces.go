// Package core defines the pipeline interfaces for bbpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"

	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
)

// Format is the markup language of an input document.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// FetchResult holds the raw body and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// DocumentMetadata describes where a document came from and how it was
// converted.
type DocumentMetadata struct {
	Source      string          `json:"source"`
	Title       string          `json:"title,omitempty"` // HTML input only
	Format      Format          `json:"format"`
	Dialect     dialect.Dialect `json:"dialect"`
	ConvertedAt string          `json:"converted_at"` // ISO8601
}

// Heading represents a single heading found in the content.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the content.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentStructure holds structural metadata collected from the event
// stream.
type DocumentStructure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// Report is the complete JSON output for a single document.
type Report struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	BBCode    string            `json:"bbcode"`
	Warnings  []diag.Warning    `json:"warnings"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves a document from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
// Relative links are resolved against baseURL when it is not empty.
type Extractor interface {
	Extract(html string, baseURL string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
// Translation warnings are reported to sink.
type Renderer interface {
	Render(markdown string, meta DocumentMetadata, sink diag.Sink) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".bbcode", ".json").
	Extension() string
}
