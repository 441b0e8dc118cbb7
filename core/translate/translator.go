// Package translate turns a Markdown event stream into BBCode.
//
// Translation is a single forward pass over the events. The only state kept
// between events is whether a list item or footnote definition has just
// been opened, which suppresses the blank line a paragraph would otherwise
// start with.
package translate

import (
	"bytes"
	"iter"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/bbpipe/core/diag"
	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"github.com/gaurav-prasanna/bbpipe/core/encoding"
	"github.com/gaurav-prasanna/bbpipe/core/event"
	"github.com/gaurav-prasanna/bbpipe/core/rawmarkup"
)

// Options configures one translation.
type Options struct {
	Dialect dialect.Dialect
	// ValidateEncoding runs the encoding check over the finished output
	// and reports violations to Sink.
	ValidateEncoding bool
	// Sink receives warnings. Nil discards them.
	Sink diag.Sink
	// SizeHint preallocates the output buffer, typically the source length.
	SizeHint int
}

type translator struct {
	dialect dialect.Dialect
	sink    diag.Sink
	out     bytes.Buffer

	pendingItemOpen     bool
	pendingFootnoteOpen bool
}

// Translate consumes events once, in order, and returns the BBCode text.
// On error the returned string is empty.
func Translate(events iter.Seq[event.Event], opts Options) (string, error) {
	t := &translator{dialect: opts.Dialect, sink: opts.Sink}
	if t.sink == nil {
		t.sink = diag.Nop{}
	}
	if opts.SizeHint > 0 {
		t.out.Grow(opts.SizeHint)
	}

	for ev := range events {
		if err := t.handle(ev); err != nil {
			return "", err
		}
	}

	output := t.out.String()
	if opts.ValidateEncoding {
		for _, w := range encoding.Validate(output, t.dialect) {
			t.sink.Warn(w)
		}
	}
	return output, nil
}

func (t *translator) handle(ev event.Event) error {
	switch ev.Kind {
	case event.KindStart:
		t.start(ev.Tag)
	case event.KindEnd:
		t.end(ev.Tag)
	case event.KindText:
		t.out.WriteString(ev.Text)
	case event.KindInlineCode:
		t.open(dialect.InlineCode, dialect.Attrs{})
		t.out.WriteString(ev.Text)
		t.close(dialect.InlineCode, dialect.Attrs{})
	case event.KindRawInline:
		return t.raw(ev.Text)
	case event.KindFootnoteReference:
		t.open(dialect.FootnoteReference, dialect.Attrs{ID: ev.Text})
	case event.KindSoftBreak:
		t.open(dialect.SoftBreak, dialect.Attrs{})
	case event.KindHardBreak:
		t.open(dialect.HardBreak, dialect.Attrs{})
	case event.KindThematicBreak:
		t.open(dialect.ThematicBreak, dialect.Attrs{})
	case event.KindTaskListMarker:
		if ev.Checked {
			t.open(dialect.TaskChecked, dialect.Attrs{})
		} else {
			t.open(dialect.TaskUnchecked, dialect.Attrs{})
		}
	default:
		t.sink.Warn(diag.Warnf(diag.UnrecognizedConstruct, "unrecognised event: %s", ev.Kind))
	}
	return nil
}

func (t *translator) start(tag event.Tag) {
	switch tag.Kind {
	case event.TagParagraph:
		if t.pendingItemOpen || t.pendingFootnoteOpen {
			t.pendingItemOpen = false
			t.pendingFootnoteOpen = false
			return
		}
		t.open(dialect.Paragraph, dialect.Attrs{})
	case event.TagListItem:
		t.pendingItemOpen, t.pendingFootnoteOpen = true, false
		t.open(dialect.ListItem, dialect.Attrs{})
	case event.TagFootnoteDefinition:
		t.pendingItemOpen, t.pendingFootnoteOpen = false, true
		t.open(dialect.FootnoteDefinition, dialect.Attrs{ID: tag.ID})
	default:
		c, ok := t.construct(tag)
		if !ok {
			return
		}
		t.open(c, attrsFor(tag))
	}
}

func (t *translator) end(tag event.Tag) {
	switch tag.Kind {
	case event.TagListItem:
		// Trailing newlines from the item's paragraphs would otherwise
		// separate the item from the next marker or the list close.
		t.out.Truncate(len(bytes.TrimRightFunc(t.out.Bytes(), unicode.IsSpace)))
		t.close(dialect.ListItem, dialect.Attrs{})
	case event.TagImage:
		// The opening snippet renders the whole image.
	default:
		c, ok := t.construct(tag)
		if !ok {
			return
		}
		t.close(c, attrsFor(tag))
	}
}

// construct maps a tag to its dialect table row.
func (t *translator) construct(tag event.Tag) (dialect.Construct, bool) {
	switch tag.Kind {
	case event.TagParagraph:
		return dialect.Paragraph, true
	case event.TagHeading:
		return dialect.Heading, true
	case event.TagBlockQuote:
		return dialect.BlockQuote, true
	case event.TagCodeBlock:
		return dialect.CodeBlock, true
	case event.TagList:
		if tag.Ordered {
			return dialect.OrderedList, true
		}
		return dialect.UnorderedList, true
	case event.TagListItem:
		return dialect.ListItem, true
	case event.TagFootnoteDefinition:
		return dialect.FootnoteDefinition, true
	case event.TagTable:
		return dialect.Table, true
	case event.TagTableHead:
		return dialect.TableHead, true
	case event.TagTableRow:
		return dialect.TableRow, true
	case event.TagTableCell:
		return dialect.TableCell, true
	case event.TagEmphasis:
		return dialect.Emphasis, true
	case event.TagStrong:
		return dialect.Strong, true
	case event.TagStrikethrough:
		return dialect.Strikethrough, true
	case event.TagLink:
		return dialect.Link, true
	case event.TagImage:
		return dialect.Image, true
	}
	t.sink.Warn(diag.Warnf(diag.UnrecognizedConstruct, "unrecognised tag: %s", tag.Kind))
	return 0, false
}

// attrsFor extracts placeholder values from a tag. Link titles, list start
// numbers, code languages and table alignments have no BBCode form and are
// dropped here.
func attrsFor(tag event.Tag) dialect.Attrs {
	switch tag.Kind {
	case event.TagHeading:
		return dialect.Attrs{Size: dialect.HeadingSize(tag.Level)}
	case event.TagLink:
		return dialect.Attrs{URL: tag.URL}
	case event.TagImage:
		return dialect.Attrs{URL: tag.URL, Alt: tag.Alt}
	case event.TagFootnoteDefinition:
		return dialect.Attrs{ID: tag.ID}
	}
	return dialect.Attrs{}
}

func (t *translator) raw(fragment string) error {
	res, err := rawmarkup.Translate(fragment, t.dialect)
	if err != nil {
		return &Error{
			Code:    ErrorCodeMalformedInlineMarkup,
			Message: "cannot translate inline HTML",
			Err:     err,
		}
	}
	switch res.Outcome {
	case rawmarkup.Translated:
		t.out.WriteString(res.Text)
	case rawmarkup.Passthrough:
		t.sink.Warn(diag.Warnf(diag.UnrecognizedConstruct, "unrecognised HTML tag: %s", strings.TrimSpace(fragment)))
		t.out.WriteString(res.Text)
	case rawmarkup.Unsupported:
		t.sink.Warn(diag.Warnf(diag.UnsupportedConstruct, "%s doesn't support `<%s>`", t.dialect, res.Construct))
	case rawmarkup.Suppressed:
	}
	return nil
}

func (t *translator) open(c dialect.Construct, a dialect.Attrs) {
	t.out.WriteString(dialect.Open(c, t.dialect, a))
}

func (t *translator) close(c dialect.Construct, a dialect.Attrs) {
	t.out.WriteString(dialect.Close(c, t.dialect, a))
}
