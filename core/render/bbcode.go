// Package render provides output renderers for the bbpipe pipeline.
// This file implements the BBCode renderer: Markdown is parsed into events
// and translated for one dialect.
package render

import (
	"iter"
	"strings"

	"github.com/gaurav-prasanna/bbpipe/core"
	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/gaurav-prasanna/bbpipe/core/event"
	"github.com/gaurav-prasanna/bbpipe/core/parse"
	"github.com/gaurav-prasanna/bbpipe/core/translate"
)

// Options configures a BBCodeRenderer.
type Options struct {
	Dialect          dialect.Dialect
	Markdown         parse.Options
	EncodingWarnings bool
}

// BBCodeRenderer translates Markdown into forum markup. It holds no
// per-document state and may be shared between goroutines.
type BBCodeRenderer struct {
	opts   Options
	parser *parse.MarkdownParser
}

// NewBBCodeRenderer creates a BBCodeRenderer.
func NewBBCodeRenderer(opts Options) *BBCodeRenderer {
	return &BBCodeRenderer{
		opts:   opts,
		parser: parse.New(opts.Markdown),
	}
}

// Dialect returns the target dialect.
func (r *BBCodeRenderer) Dialect() dialect.Dialect {
	return r.opts.Dialect
}

// Events returns the event stream for markdown.
func (r *BBCodeRenderer) Events(markdown string) iter.Seq[event.Event] {
	return r.parser.Parse([]byte(markdown))
}

// Translate converts markdown and trims the surrounding white space.
func (r *BBCodeRenderer) Translate(markdown string, sink diag.Sink) (string, error) {
	return r.translateEvents(r.Events(markdown), len(markdown), sink)
}

func (r *BBCodeRenderer) translateEvents(events iter.Seq[event.Event], sizeHint int, sink diag.Sink) (string, error) {
	out, err := translate.Translate(events, translate.Options{
		Dialect:          r.opts.Dialect,
		ValidateEncoding: r.opts.EncodingWarnings,
		Sink:             sink,
		SizeHint:         sizeHint,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Render returns the BBCode for markdown.
func (r *BBCodeRenderer) Render(markdown string, meta core.DocumentMetadata, sink diag.Sink) ([]byte, error) {
	out, err := r.Translate(markdown, sink)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Extension returns the file extension for BBCode output.
func (r *BBCodeRenderer) Extension() string {
	return ".bbcode"
}
