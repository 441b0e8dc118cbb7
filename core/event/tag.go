package event

// TagKind identifies a block or inline container.
type TagKind uint8

const (
	TagParagraph TagKind = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagList
	TagListItem
	TagFootnoteDefinition
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
)

var tagNames = [...]string{
	TagParagraph:          "Paragraph",
	TagHeading:            "Heading",
	TagBlockQuote:         "BlockQuote",
	TagCodeBlock:          "CodeBlock",
	TagList:               "List",
	TagListItem:           "ListItem",
	TagFootnoteDefinition: "FootnoteDefinition",
	TagTable:              "Table",
	TagTableHead:          "TableHead",
	TagTableRow:           "TableRow",
	TagTableCell:          "TableCell",
	TagEmphasis:           "Emphasis",
	TagStrong:             "Strong",
	TagStrikethrough:      "Strikethrough",
	TagLink:               "Link",
	TagImage:              "Image",
}

func (k TagKind) String() string {
	if int(k) < len(tagNames) {
		return tagNames[k]
	}
	return "Unknown"
}

// Alignment is a table column alignment hint.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Tag describes the container opened by a Start event and closed by the
// matching End event. Only the fields relevant to Kind are set.
type Tag struct {
	Kind TagKind

	Level   int    // Heading, 1..6
	Ordered bool   // List
	Start   int    // List starting number hint
	ID      string // FootnoteDefinition
	URL     string // Link, Image
	Title   string // Link, Image
	Alt     string // Image
	Lang    string // CodeBlock info string

	Alignments []Alignment // Table
}

func Paragraph() Tag            { return Tag{Kind: TagParagraph} }
func Heading(level int) Tag     { return Tag{Kind: TagHeading, Level: level} }
func BlockQuote() Tag           { return Tag{Kind: TagBlockQuote} }
func CodeBlock(lang string) Tag { return Tag{Kind: TagCodeBlock, Lang: lang} }

func List(ordered bool, start int) Tag {
	return Tag{Kind: TagList, Ordered: ordered, Start: start}
}

func ListItem() Tag                    { return Tag{Kind: TagListItem} }
func FootnoteDefinition(id string) Tag { return Tag{Kind: TagFootnoteDefinition, ID: id} }

func Table(alignments ...Alignment) Tag {
	return Tag{Kind: TagTable, Alignments: alignments}
}

func TableHead() Tag     { return Tag{Kind: TagTableHead} }
func TableRow() Tag      { return Tag{Kind: TagTableRow} }
func TableCell() Tag     { return Tag{Kind: TagTableCell} }
func Emphasis() Tag      { return Tag{Kind: TagEmphasis} }
func Strong() Tag        { return Tag{Kind: TagStrong} }
func Strikethrough() Tag { return Tag{Kind: TagStrikethrough} }

func Link(url, title string) Tag {
	return Tag{Kind: TagLink, URL: url, Title: title}
}

func Image(url, title, alt string) Tag {
	return Tag{Kind: TagImage, URL: url, Title: title, Alt: alt}
}
