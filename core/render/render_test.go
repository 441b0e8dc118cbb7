package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/gaurav-prasanna/bbpipe/core"
	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/gaurav-prasanna/bbpipe/core/parse"
	"github.com/gaurav-prasanna/bbpipe/core/translate"
)

func TestBBCodeEndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		dialect dialect.Dialect
		input   string
		want    string
	}{
		{
			name:    "heading",
			dialect: dialect.XenForo,
			input:   "# Hello",
			want:    `[size="7"][b][u]Hello[/u][/b][/size]`,
		},
		{
			name:    "single item list",
			dialect: dialect.XenForo,
			input:   "- item",
			want:    "[list]\n[*]item\n[/list]",
		},
		{
			name:    "ordered list start is discarded",
			dialect: dialect.XenForo,
			input:   "3. a\n4. b\n",
			want:    "[list=1]\n[*]a\n[*]b\n[/list]",
		},
		{
			name:    "loose list",
			dialect: dialect.XenForo,
			input:   "- a\n\n- b\n",
			want:    "[list]\n[*]a\n[*]b\n[/list]",
		},
		{
			name:    "proboards list",
			dialect: dialect.ProBoards,
			input:   "- a\n- b\n",
			want:    "[ul]\n[li]a[/li]\n[li]b[/li]\n[/ul]",
		},
		{
			name:    "inline formatting",
			dialect: dialect.XenForo,
			input:   "*a* **b** [c](https://c.io) `d`",
			want:    "[i]a[/i] [b]b[/b] [url=https://c.io]c[/url] [font=Courier New]d[/font]",
		},
		{
			name:    "spoiler block",
			dialect: dialect.XenForo,
			input:   "<details>\n<summary>More</summary>\n\nHidden\n\n</details>\n",
			want:    "[spoiler=More]\nHidden\n[/spoiler]",
		},
		{
			name:    "inline html comment",
			dialect: dialect.XenForo,
			input:   "a <!-- b --> c",
			want:    "a  c",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewBBCodeRenderer(Options{Dialect: tc.dialect})
			var sink diag.Collector
			got, err := r.Render(tc.input, core.DocumentMetadata{}, &sink)
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("output mismatch\n got: %q\nwant: %q", got, tc.want)
			}
			if sink.Len() != 0 {
				t.Fatalf("unexpected warnings: %v", sink.Warnings())
			}
		})
	}
}

func TestBBCodeMalformedSummary(t *testing.T) {
	r := NewBBCodeRenderer(Options{Dialect: dialect.XenForo})
	out, err := r.Render("Click <summary>a *b*</summary>", core.DocumentMetadata{}, nil)
	if err == nil {
		t.Fatalf("expected error, got %q", out)
	}
	if !translate.IsErrorCode(err, translate.ErrorCodeMalformedInlineMarkup) {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestBBCodeEncodingWarnings(t *testing.T) {
	r := NewBBCodeRenderer(Options{Dialect: dialect.XenForo, EncodingWarnings: true})
	var sink diag.Collector
	if _, err := r.Render("smile 😀", core.DocumentMetadata{}, &sink); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if sink.Len() != 1 || sink.Warnings()[0].Code != diag.EncodingRangeViolation {
		t.Fatalf("warnings = %v", sink.Warnings())
	}
}

func TestJSONReport(t *testing.T) {
	bb := NewBBCodeRenderer(Options{
		Dialect:  dialect.ProBoards,
		Markdown: parse.Options{Tables: true},
	})
	r := NewJSONRenderer(bb)
	input := "# Title\n\nSee [the docs](https://x.io) <span>x</span>.\n\n" +
		"- a\n- b\n\n```\ncode\n```\n\n| h |\n|---|\n| d |\n"

	var sink diag.Collector
	data, err := r.Render(input, core.DocumentMetadata{Source: "doc.md", Format: core.FormatMarkdown}, &sink)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var report core.Report
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if report.Metadata.Source != "doc.md" || report.Metadata.Dialect != dialect.ProBoards {
		t.Fatalf("unexpected metadata: %+v", report.Metadata)
	}
	if !bytes.Contains(data, []byte(`"dialect": "proboards"`)) {
		t.Fatalf("dialect not rendered by name:\n%s", data)
	}
	if report.BBCode == "" || report.BBCode[0] == '\n' {
		t.Fatalf("bbcode should be trimmed and non-empty: %q", report.BBCode)
	}

	s := report.Structure
	if len(s.Headings) != 1 || s.Headings[0] != (core.Heading{Level: 1, Text: "Title"}) {
		t.Fatalf("headings = %+v", s.Headings)
	}
	if len(s.Links) != 1 || s.Links[0] != (core.Link{Text: "the docs", Href: "https://x.io"}) {
		t.Fatalf("links = %+v", s.Links)
	}
	if s.Lists != 1 || s.CodeBlocks != 1 || s.Tables != 1 {
		t.Fatalf("counts = %+v", s)
	}

	if len(report.Warnings) != 2 || report.Warnings[0].Code != diag.UnrecognizedConstruct {
		t.Fatalf("report warnings = %+v", report.Warnings)
	}
	if sink.Len() != 2 {
		t.Fatalf("sink should see the same warnings, got %v", sink.Warnings())
	}
}

func TestJSONReportEmptyLists(t *testing.T) {
	r := NewJSONRenderer(NewBBCodeRenderer(Options{Dialect: dialect.XenForo}))
	data, err := r.Render("plain", core.DocumentMetadata{}, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{`"warnings": []`, `"headings": []`, `"links": []`} {
		if !bytes.Contains(data, []byte(want)) {
			t.Fatalf("expected %s in\n%s", want, data)
		}
	}
	if r.Extension() != ".json" {
		t.Fatalf("extension = %q", r.Extension())
	}
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()
	tests := []struct {
		name  string
		input string
		title string
		want  string
	}{
		{"passthrough", "\n# Hi\n\ntext\n", "Page", "# Hi\n\ntext"},
		{"title added", "text", "Page", "# Page\n\ntext"},
		{"no title", "## Sub", "", "## Sub"},
	}
	for _, tc := range tests {
		got, err := r.Render(tc.input, core.DocumentMetadata{Title: tc.title}, diag.Nop{})
		if err != nil {
			t.Fatalf("%s: render failed: %v", tc.name, err)
		}
		if string(got) != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
	if r.Extension() != ".md" {
		t.Fatalf("unexpected extension %q", r.Extension())
	}
}
