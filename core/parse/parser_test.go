package parse

import (
	"iter"
	"reflect"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/bbpipe/core/event"
)

var allExtensions = Options{
	Tables:           true,
	Footnotes:        true,
	Strikethrough:    true,
	TaskLists:        true,
	SmartPunctuation: true,
}

func collect(seq iter.Seq[event.Event]) []event.Event {
	var evs []event.Event
	for ev := range seq {
		evs = append(evs, ev)
	}
	return evs
}

func textOf(evs []event.Event) string {
	var b strings.Builder
	for _, ev := range evs {
		if ev.Kind == event.KindText {
			b.WriteString(ev.Text)
		}
	}
	return b.String()
}

func find(evs []event.Event, match func(event.Event) bool) (event.Event, bool) {
	for _, ev := range evs {
		if match(ev) {
			return ev, true
		}
	}
	return event.Event{}, false
}

func TestParseHeading(t *testing.T) {
	got := collect(New(Options{}).Parse([]byte("# Hello")))
	want := []event.Event{
		event.Start(event.Heading(1)),
		event.Text("Hello"),
		event.End(event.Heading(1)),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestParseTightListHasNoParagraphs(t *testing.T) {
	got := collect(New(Options{}).Parse([]byte("- a\n- b\n")))
	want := []event.Event{
		event.Start(event.List(false, 0)),
		event.Start(event.ListItem()),
		event.Text("a"),
		event.End(event.ListItem()),
		event.Start(event.ListItem()),
		event.Text("b"),
		event.End(event.ListItem()),
		event.End(event.List(false, 0)),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("events mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestParseOrderedListKeepsStart(t *testing.T) {
	got := collect(New(Options{}).Parse([]byte("3. a\n")))
	if len(got) == 0 || got[0].Kind != event.KindStart {
		t.Fatalf("expected a start event, got %v", got)
	}
	tag := got[0].Tag
	if tag.Kind != event.TagList || !tag.Ordered || tag.Start != 3 {
		t.Fatalf("unexpected list tag: %+v", tag)
	}
}

func TestParseInlineHTMLIsRaw(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte("a <del>b</del>")))
	var raw []string
	for _, ev := range evs {
		if ev.Kind == event.KindRawInline {
			raw = append(raw, ev.Text)
		}
	}
	if want := []string{"<del>", "</del>"}; !reflect.DeepEqual(raw, want) {
		t.Fatalf("raw fragments = %q, want %q", raw, want)
	}
	if got := textOf(evs); got != "a b" {
		t.Fatalf("text = %q, want %q", got, "a b")
	}
}

func TestParseUnescapesText(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte(`\*not emphasis\* &amp; &#65;`)))
	if got, want := textOf(evs), "*not emphasis* & A"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
	if _, ok := find(evs, func(ev event.Event) bool { return ev.Tag.Kind == event.TagEmphasis }); ok {
		t.Fatalf("escaped asterisks produced emphasis: %v", evs)
	}
}

func TestParseSoftAndHardBreaks(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte("a\nb  \nc")))
	var kinds []event.Kind
	for _, ev := range evs {
		if ev.Kind == event.KindSoftBreak || ev.Kind == event.KindHardBreak {
			kinds = append(kinds, ev.Kind)
		}
	}
	if want := []event.Kind{event.KindSoftBreak, event.KindHardBreak}; !reflect.DeepEqual(kinds, want) {
		t.Fatalf("breaks = %v, want %v", kinds, want)
	}
}

func TestParseImageCarriesAltText(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte("![an *alt* text](pic.png)")))
	ev, ok := find(evs, func(ev event.Event) bool { return ev.Kind == event.KindStart && ev.Tag.Kind == event.TagImage })
	if !ok {
		t.Fatalf("no image event in %v", evs)
	}
	if ev.Tag.URL != "pic.png" || ev.Tag.Alt != "an alt text" {
		t.Fatalf("unexpected image tag: %+v", ev.Tag)
	}
	if textOf(evs) != "" {
		t.Fatalf("image children leaked as text: %v", evs)
	}
}

func TestParseCodeSpanAndBlock(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte("use `x *y*`\n\n```go\nfmt.Println()\n```\n")))
	ev, ok := find(evs, func(ev event.Event) bool { return ev.Kind == event.KindInlineCode })
	if !ok || ev.Text != "x *y*" {
		t.Fatalf("inline code = %+v (found %v)", ev, ok)
	}
	ev, ok = find(evs, func(ev event.Event) bool { return ev.Kind == event.KindStart && ev.Tag.Kind == event.TagCodeBlock })
	if !ok || ev.Tag.Lang != "go" {
		t.Fatalf("code block = %+v (found %v)", ev, ok)
	}
	if !strings.Contains(textOf(evs), "fmt.Println()\n") {
		t.Fatalf("code block body missing: %v", evs)
	}
}

func TestParseAutoLinkEmail(t *testing.T) {
	evs := collect(New(Options{}).Parse([]byte("<someone@example.com>")))
	ev, ok := find(evs, func(ev event.Event) bool { return ev.Kind == event.KindStart && ev.Tag.Kind == event.TagLink })
	if !ok || ev.Tag.URL != "mailto:someone@example.com" {
		t.Fatalf("autolink = %+v (found %v)", ev, ok)
	}
	if got := textOf(evs); got != "someone@example.com" {
		t.Fatalf("label = %q", got)
	}
}

func TestParseExtensionsAreOptIn(t *testing.T) {
	src := []byte("~~gone~~\n\n- [x] done\n")

	plain := collect(New(Options{}).Parse(src))
	if _, ok := find(plain, func(ev event.Event) bool { return ev.Tag.Kind == event.TagStrikethrough }); ok {
		t.Fatalf("strikethrough parsed without the extension")
	}
	if _, ok := find(plain, func(ev event.Event) bool { return ev.Kind == event.KindTaskListMarker }); ok {
		t.Fatalf("task marker parsed without the extension")
	}

	ext := collect(New(allExtensions).Parse(src))
	if _, ok := find(ext, func(ev event.Event) bool { return ev.Tag.Kind == event.TagStrikethrough }); !ok {
		t.Fatalf("strikethrough missing: %v", ext)
	}
	ev, ok := find(ext, func(ev event.Event) bool { return ev.Kind == event.KindTaskListMarker })
	if !ok || !ev.Checked {
		t.Fatalf("task marker = %+v (found %v)", ev, ok)
	}
}

func TestParseFootnotes(t *testing.T) {
	evs := collect(New(allExtensions).Parse([]byte("see[^note]\n\n[^note]: the note\n")))
	ref, ok := find(evs, func(ev event.Event) bool { return ev.Kind == event.KindFootnoteReference })
	if !ok || ref.Text != "note" {
		t.Fatalf("reference = %+v (found %v)", ref, ok)
	}
	def, ok := find(evs, func(ev event.Event) bool {
		return ev.Kind == event.KindStart && ev.Tag.Kind == event.TagFootnoteDefinition
	})
	if !ok || def.Tag.ID != "note" {
		t.Fatalf("definition = %+v (found %v)", def, ok)
	}
	if strings.Contains(textOf(evs), "↩") {
		t.Fatalf("backlink leaked into text: %q", textOf(evs))
	}
}

func TestParseTable(t *testing.T) {
	evs := collect(New(allExtensions).Parse([]byte("| a | b |\n|:--|--:|\n| 1 | 2 |\n")))
	var kinds []event.TagKind
	for _, ev := range evs {
		if ev.Kind == event.KindStart {
			kinds = append(kinds, ev.Tag.Kind)
		}
	}
	want := []event.TagKind{
		event.TagTable,
		event.TagTableHead, event.TagTableCell, event.TagTableCell,
		event.TagTableRow, event.TagTableCell, event.TagTableCell,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("start tags = %v, want %v", kinds, want)
	}
	if al := evs[0].Tag.Alignments; !reflect.DeepEqual(al, []event.Alignment{event.AlignLeft, event.AlignRight}) {
		t.Fatalf("alignments = %v", al)
	}
}

func TestParseSmartPunctuation(t *testing.T) {
	evs := collect(New(allExtensions).Parse([]byte(`"quoted" -- wait...`)))
	if got, want := textOf(evs), "“quoted” – wait…"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestParseStopsEarly(t *testing.T) {
	n := 0
	for range New(Options{}).Parse([]byte("# a\n\nb\n\nc\n")) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("consumed %d events, want 2", n)
	}
}
