// Package render — JSON renderer.
// Builds the structured JSON report from Markdown and document metadata.
// The structural counts (headings, links, code blocks, tables, lists) are
// taken from the same event stream that is translated, so they always agree
// with the BBCode in the report.
package render

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/gaurav-prasanna/bbpipe/core"
	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/event"
)

// JSONRenderer wraps a BBCodeRenderer and produces a report around its
// output.
type JSONRenderer struct {
	bbcode *BBCodeRenderer
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(bbcode *BBCodeRenderer) *JSONRenderer {
	return &JSONRenderer{bbcode: bbcode}
}

// Render translates markdown and returns the indented JSON report. Warnings
// go both into the report and to sink.
func (r *JSONRenderer) Render(markdown string, meta core.DocumentMetadata, sink diag.Sink) ([]byte, error) {
	var collected diag.Collector
	s := newStructureCollector()

	out, err := r.bbcode.translateEvents(
		s.observe(r.bbcode.Events(markdown)),
		len(markdown),
		diag.Tee{&collected, sink},
	)
	if err != nil {
		return nil, err
	}

	warnings := collected.Warnings()
	if warnings == nil {
		warnings = []diag.Warning{}
	}
	meta.Dialect = r.bbcode.Dialect()

	report := core.Report{
		Metadata:  meta,
		BBCode:    out,
		Warnings:  warnings,
		Structure: s.result,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Event stream helpers ---

type structureCollector struct {
	result core.DocumentStructure

	// Text is captured while inside a heading or link. Headings cannot
	// nest, links cannot nest, but a link may sit inside a heading.
	heading    *strings.Builder
	link       *strings.Builder
	headingLvl int
}

func newStructureCollector() *structureCollector {
	return &structureCollector{
		result: core.DocumentStructure{
			Headings: []core.Heading{},
			Links:    []core.Link{},
		},
	}
}

// observe passes events through unchanged while recording structure.
func (s *structureCollector) observe(events iter.Seq[event.Event]) iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		for ev := range events {
			s.record(ev)
			if !yield(ev) {
				return
			}
		}
	}
}

func (s *structureCollector) record(ev event.Event) {
	switch ev.Kind {
	case event.KindStart:
		switch ev.Tag.Kind {
		case event.TagHeading:
			s.heading = &strings.Builder{}
			s.headingLvl = ev.Tag.Level
		case event.TagLink:
			s.link = &strings.Builder{}
		case event.TagCodeBlock:
			s.result.CodeBlocks++
		case event.TagTable:
			s.result.Tables++
		case event.TagList:
			s.result.Lists++
		}
	case event.KindEnd:
		switch ev.Tag.Kind {
		case event.TagHeading:
			if s.heading != nil {
				s.result.Headings = append(s.result.Headings, core.Heading{
					Level: s.headingLvl,
					Text:  strings.TrimSpace(s.heading.String()),
				})
			}
			s.heading = nil
		case event.TagLink:
			if s.link != nil {
				s.result.Links = append(s.result.Links, core.Link{
					Text: strings.TrimSpace(s.link.String()),
					Href: ev.Tag.URL,
				})
			}
			s.link = nil
		}
	case event.KindText, event.KindInlineCode:
		s.text(ev.Text)
	case event.KindSoftBreak, event.KindHardBreak:
		s.text(" ")
	}
}

func (s *structureCollector) text(t string) {
	if s.heading != nil {
		s.heading.WriteString(t)
	}
	if s.link != nil {
		s.link.WriteString(t)
	}
}
