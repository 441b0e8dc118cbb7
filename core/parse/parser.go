// Package parse produces the Markdown event stream consumed by the
// translator. It wraps goldmark and flattens its AST into Start/End pairs
// with leaf events in between.
package parse

import (
	"iter"
	"strings"

	"github.com/gaurav-prasanna/bbpipe/core/event"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options toggles the Markdown extensions beyond CommonMark.
type Options struct {
	Tables           bool
	Footnotes        bool
	Strikethrough    bool
	TaskLists        bool
	SmartPunctuation bool
}

// MarkdownParser turns Markdown source into events.
type MarkdownParser struct {
	md goldmark.Markdown
}

var smartPunctuation = map[extension.TypographicPunctuation]string{
	extension.LeftSingleQuote:  "‘",
	extension.RightSingleQuote: "’",
	extension.LeftDoubleQuote:  "“",
	extension.RightDoubleQuote: "”",
	extension.EnDash:           "–",
	extension.EmDash:           "—",
	extension.Ellipsis:         "…",
	extension.LeftAngleQuote:   "«",
	extension.RightAngleQuote:  "»",
	extension.Apostrophe:       "’",
}

// New returns a parser with the extensions selected in opts.
func New(opts Options) *MarkdownParser {
	var exts []goldmark.Extender
	if opts.Tables {
		exts = append(exts, extension.Table)
	}
	if opts.Footnotes {
		exts = append(exts, extension.Footnote)
	}
	if opts.Strikethrough {
		exts = append(exts, extension.Strikethrough)
	}
	if opts.TaskLists {
		exts = append(exts, extension.TaskList)
	}
	if opts.SmartPunctuation {
		exts = append(exts, extension.NewTypographer(
			extension.WithTypographicSubstitutions(smartPunctuation),
		))
	}
	return &MarkdownParser{md: goldmark.New(goldmark.WithExtensions(exts...))}
}

// Parse returns a single-use lazy event stream for src. The document is
// parsed when iteration starts.
func (p *MarkdownParser) Parse(src []byte) iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		doc := p.md.Parser().Parse(text.NewReader(src))
		w := &walker{
			src:       src,
			yield:     yield,
			footnotes: footnoteRefs(doc),
		}
		_ = ast.Walk(doc, w.visit)
	}
}

type walker struct {
	src       []byte
	yield     func(event.Event) bool
	footnotes map[int]string
	stopped   bool
}

func (w *walker) emit(evs ...event.Event) bool {
	for _, ev := range evs {
		if !w.yield(ev) {
			w.stopped = true
			return false
		}
	}
	return true
}

// wrap emits Start on enter and End on leave.
func (w *walker) wrap(tag event.Tag, entering bool) {
	if entering {
		w.emit(event.Start(tag))
	} else {
		w.emit(event.End(tag))
	}
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	status := w.node(n, entering)
	if w.stopped {
		return ast.WalkStop, nil
	}
	return status, nil
}

func (w *walker) node(n ast.Node, entering bool) ast.WalkStatus {
	switch n := n.(type) {
	case *ast.Document, *ast.TextBlock, *east.FootnoteList:
		// Containers with no event of their own. Tight list items hold
		// TextBlocks, which carry no paragraph.

	case *ast.Paragraph:
		w.wrap(event.Paragraph(), entering)
	case *ast.Heading:
		w.wrap(event.Heading(n.Level), entering)
	case *ast.Blockquote:
		w.wrap(event.BlockQuote(), entering)
	case *ast.ThematicBreak:
		if entering {
			w.emit(event.ThematicBreak())
		}
	case *ast.List:
		w.wrap(event.List(n.IsOrdered(), n.Start), entering)
	case *ast.ListItem:
		w.wrap(event.ListItem(), entering)

	case *ast.FencedCodeBlock:
		w.codeBlock(n, string(n.Language(w.src)), entering)
	case *ast.CodeBlock:
		w.codeBlock(n, "", entering)

	case *ast.HTMLBlock:
		if entering {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if !w.emit(event.RawInline(string(seg.Value(w.src)))) {
					break
				}
			}
		} else if n.HasClosure() {
			w.emit(event.RawInline(string(n.ClosureLine.Value(w.src))))
		}

	case *ast.Text:
		if !entering {
			break
		}
		if v := n.Value(w.src); len(v) > 0 {
			if !w.emit(event.Text(unescape(v))) {
				break
			}
		}
		switch {
		case n.HardLineBreak():
			w.emit(event.HardBreak())
		case n.SoftLineBreak():
			w.emit(event.SoftBreak())
		}
	case *ast.String:
		if entering {
			if n.IsCode() || n.IsRaw() {
				w.emit(event.Text(string(n.Value)))
			} else {
				w.emit(event.Text(unescape(n.Value)))
			}
		}

	case *ast.CodeSpan:
		if entering {
			w.emit(event.InlineCode(w.codeSpan(n)))
		}
		return ast.WalkSkipChildren
	case *ast.RawHTML:
		if entering {
			w.emit(event.RawInline(string(n.Segments.Value(w.src))))
		}
	case *ast.Emphasis:
		if n.Level >= 2 {
			w.wrap(event.Strong(), entering)
		} else {
			w.wrap(event.Emphasis(), entering)
		}
	case *ast.Link:
		w.wrap(event.Link(unescape(n.Destination), unescape(n.Title)), entering)
	case *ast.AutoLink:
		if entering {
			url := string(n.URL(w.src))
			if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			tag := event.Link(url, "")
			w.emit(event.Start(tag), event.Text(string(n.Label(w.src))), event.End(tag))
		}
	case *ast.Image:
		if entering {
			tag := event.Image(unescape(n.Destination), unescape(n.Title), plainText(n, w.src))
			w.emit(event.Start(tag), event.End(tag))
		}
		return ast.WalkSkipChildren

	case *east.Strikethrough:
		w.wrap(event.Strikethrough(), entering)
	case *east.TaskCheckBox:
		if entering {
			w.emit(event.TaskListMarker(n.IsChecked))
		}
	case *east.Table:
		w.wrap(event.Table(alignments(n.Alignments)...), entering)
	case *east.TableHeader:
		w.wrap(event.TableHead(), entering)
	case *east.TableRow:
		w.wrap(event.TableRow(), entering)
	case *east.TableCell:
		w.wrap(event.TableCell(), entering)
	case *east.Footnote:
		w.wrap(event.FootnoteDefinition(string(n.Ref)), entering)
	case *east.FootnoteLink:
		if entering {
			w.emit(event.FootnoteReference(w.footnotes[n.Index]))
		}
	case *east.FootnoteBacklink:
		return ast.WalkSkipChildren
	}
	return ast.WalkContinue
}

func (w *walker) codeBlock(n ast.Node, lang string, entering bool) {
	if !entering {
		w.emit(event.End(event.CodeBlock(lang)))
		return
	}
	if !w.emit(event.Start(event.CodeBlock(lang))) {
		return
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if !w.emit(event.Text(string(seg.Value(w.src)))) {
			return
		}
	}
}

// codeSpan joins the raw text of a code span. Line endings inside the span
// become spaces.
func (w *walker) codeSpan(n *ast.CodeSpan) string {
	var buf []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			v := c.Segment.Value(w.src)
			if len(v) > 0 && v[len(v)-1] == '\n' {
				buf = append(buf, v[:len(v)-1]...)
				buf = append(buf, ' ')
			} else {
				buf = append(buf, v...)
			}
		case *ast.String:
			buf = append(buf, c.Value...)
		}
	}
	return string(buf)
}

// footnoteRefs maps footnote indexes to their labels. References carry only
// the index assigned by the footnote transformer.
func footnoteRefs(doc ast.Node) map[int]string {
	refs := map[int]string{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			refs[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// plainText flattens the inline content of n, as used for image alt text.
func plainText(n ast.Node, src []byte) string {
	var buf []byte
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf = append(buf, unescape(c.Value(src))...)
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf = append(buf, ' ')
			}
		case *ast.String:
			buf = append(buf, c.Value...)
		case *ast.CodeSpan:
			for t := c.FirstChild(); t != nil; t = t.NextSibling() {
				if s, ok := t.(*ast.Text); ok {
					buf = append(buf, s.Segment.Value(src)...)
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return string(buf)
}

func unescape(v []byte) string {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	v = util.ResolveEntityNames(v)
	return string(v)
}

func alignments(as []east.Alignment) []event.Alignment {
	out := make([]event.Alignment, len(as))
	for i, a := range as {
		switch a {
		case east.AlignLeft:
			out[i] = event.AlignLeft
		case east.AlignCenter:
			out[i] = event.AlignCenter
		case east.AlignRight:
			out[i] = event.AlignRight
		default:
			out[i] = event.AlignNone
		}
	}
	return out
}
