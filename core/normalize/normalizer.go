// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into Markdown, which serves as the
// canonical input format of the BBCode translator.
package normalize

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Options selects the Markdown extensions the normalizer may emit. They
// should match the extensions enabled on the parser, otherwise the emitted
// syntax is read back as plain text.
type Options struct {
	Tables        bool
	Strikethrough bool
}

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct {
	conv *converter.Converter
}

// New creates a MarkdownNormalizer.
func New(opts Options) *MarkdownNormalizer {
	plugins := []converter.Plugin{
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	}
	if opts.Tables {
		plugins = append(plugins, table.NewTablePlugin())
	}
	if opts.Strikethrough {
		plugins = append(plugins, strikethrough.NewStrikethroughPlugin())
	}
	return &MarkdownNormalizer{
		conv: converter.NewConverter(converter.WithPlugins(plugins...)),
	}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := n.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
