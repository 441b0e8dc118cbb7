// Package event defines the structural events a Markdown parser produces
// and the translator consumes. An event stream is a flat, ordered walk of
// the document: every Start is matched by an End carrying the same Tag.
package event

// Kind identifies which variant of Event is populated.
type Kind uint8

const (
	KindStart Kind = iota
	KindEnd
	KindText
	KindInlineCode
	KindRawInline
	KindFootnoteReference
	KindSoftBreak
	KindHardBreak
	KindThematicBreak
	KindTaskListMarker
)

var kindNames = [...]string{
	KindStart:             "Start",
	KindEnd:               "End",
	KindText:              "Text",
	KindInlineCode:        "InlineCode",
	KindRawInline:         "RawInline",
	KindFootnoteReference: "FootnoteReference",
	KindSoftBreak:         "SoftBreak",
	KindHardBreak:         "HardBreak",
	KindThematicBreak:     "ThematicBreak",
	KindTaskListMarker:    "TaskListMarker",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Event is one unit of the document stream.
//
// Tag is set for Start and End. Text holds the payload of Text, InlineCode
// and RawInline events and the identifier of a FootnoteReference. Checked is
// only meaningful for TaskListMarker.
type Event struct {
	Kind    Kind
	Tag     Tag
	Text    string
	Checked bool
}

func Start(t Tag) Event { return Event{Kind: KindStart, Tag: t} }
func End(t Tag) Event   { return Event{Kind: KindEnd, Tag: t} }

func Text(s string) Event       { return Event{Kind: KindText, Text: s} }
func InlineCode(s string) Event { return Event{Kind: KindInlineCode, Text: s} }
func RawInline(s string) Event  { return Event{Kind: KindRawInline, Text: s} }

func FootnoteReference(id string) Event {
	return Event{Kind: KindFootnoteReference, Text: id}
}

func SoftBreak() Event     { return Event{Kind: KindSoftBreak} }
func HardBreak() Event     { return Event{Kind: KindHardBreak} }
func ThematicBreak() Event { return Event{Kind: KindThematicBreak} }

func TaskListMarker(checked bool) Event {
	return Event{Kind: KindTaskListMarker, Checked: checked}
}
