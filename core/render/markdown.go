// Package render — Markdown renderer.
// Emits the Markdown the pipeline would translate, without translating it.
// For HTML input this previews the extract and normalize stages.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/bbpipe/core"
	"github.com/gaurav-prasanna/bbpipe/core/diag"
)

// MarkdownRenderer writes the pipeline's Markdown as-is.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns markdown trimmed of surrounding white space. A page title
// is added as a level 1 heading when the content does not open with one,
// since extraction drops the page header.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocumentMetadata, sink diag.Sink) ([]byte, error) {
	out := strings.TrimSpace(markdown)
	if meta.Title != "" && !strings.HasPrefix(out, "# ") {
		out = "# " + meta.Title + "\n\n" + out
	}
	return []byte(out), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
