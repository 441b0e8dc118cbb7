package dialect

import (
	"strconv"
	"strings"
)

// Construct is a dialect-independent structural element.
type Construct uint8

const (
	Paragraph Construct = iota
	Heading
	BlockQuote
	CodeBlock
	OrderedList
	UnorderedList
	ListItem
	FootnoteDefinition
	Table
	TableHead
	TableRow
	TableCell
	Emphasis
	Strong
	Strikethrough
	Superscript
	Subscript
	Link
	Image
	InlineCode
	FootnoteReference
	SoftBreak
	HardBreak
	ThematicBreak
	TaskChecked
	TaskUnchecked
	Disclosure
	DisclosureLabel

	constructCount
)

var constructNames = [constructCount]string{
	Paragraph:          "paragraph",
	Heading:            "heading",
	BlockQuote:         "block quote",
	CodeBlock:          "code block",
	OrderedList:        "ordered list",
	UnorderedList:      "unordered list",
	ListItem:           "list item",
	FootnoteDefinition: "footnote definition",
	Table:              "table",
	TableHead:          "table head",
	TableRow:           "table row",
	TableCell:          "table cell",
	Emphasis:           "emphasis",
	Strong:             "strong",
	Strikethrough:      "strikethrough",
	Superscript:        "superscript",
	Subscript:          "subscript",
	Link:               "link",
	Image:              "image",
	InlineCode:         "inline code",
	FootnoteReference:  "footnote reference",
	SoftBreak:          "soft break",
	HardBreak:          "hard break",
	ThematicBreak:      "thematic break",
	TaskChecked:        "checked task marker",
	TaskUnchecked:      "unchecked task marker",
	Disclosure:         "details",
	DisclosureLabel:    "summary",
}

func (c Construct) String() string {
	if c < constructCount {
		return constructNames[c]
	}
	return "unknown"
}

// Attrs are the values substituted into snippet placeholders.
type Attrs struct {
	URL   string // {url}
	Alt   string // {alt}
	ID    string // {id}
	Label string // {label}
	Size  int    // {size}
}

// Footnote labels are wrapped in U+231C/U+231D so they cannot be mistaken
// for BBCode or ordinary bracketed text.
const (
	footnoteOpen  = "⌜"
	footnoteClose = "⌝"
)

var xenforoRule = "\n" + strings.Repeat("━", 32) + "\n"

// openings holds the markup emitted when a construct starts. Leaf
// constructs (breaks, markers, references, images) are rendered entirely by
// their opening snippet.
var openings = [constructCount][dialectCount]string{
	Paragraph:          {"\n", "\n"},
	Heading:            {"\n[size=\"{size}\"][b][u]", "\n\n[font size=\"{size}\"][b][u]"},
	BlockQuote:         {"[quote]", "[blockquote]"},
	CodeBlock:          {"[code]", "\n[pre]"},
	OrderedList:        {"[list=1]", "\n[ol]"},
	UnorderedList:      {"[list]", "\n[ul]"},
	ListItem:           {"\n[*]", "\n[li]"},
	FootnoteDefinition: {"\n" + footnoteOpen + "{id}" + footnoteClose + ": ", "\n" + footnoteOpen + "{id}" + footnoteClose + ": "},
	Table:              {"[table]", "[table]"},
	TableHead:          {"[tr]", "\n  [thead][tr]"},
	TableRow:           {"[tr]", "[tr]"},
	TableCell:          {"[td]", "[td]"},
	Emphasis:           {"[i]", "[i]"},
	Strong:             {"[b]", "[b]"},
	Strikethrough:      {"[s]", "[s]"},
	Superscript:        {"[sup]", "[sup]"},
	Subscript:          {"[sub]", "[sub]"},
	Link:               {"[url={url}]", "[a href=\"{url}\"]"},
	Image:              {"[img]{url}[/img]", "[img src=\"{url}\" alt=\"{alt}\"]"},
	InlineCode:         {"[font=Courier New]", "[tt]"},
	FootnoteReference:  {footnoteOpen + "{id}" + footnoteClose, "[sup]" + footnoteOpen + "{id}" + footnoteClose + "[/sup]"},
	SoftBreak:          {" ", " "},
	HardBreak:          {"\n", "\n"},
	ThematicBreak:      {xenforoRule, "\n[hr]\n"},
	TaskChecked:        {"☑\u00a0", "☑\u00a0"},
	TaskUnchecked:      {"☐\u00a0", "☐\u00a0"},
	Disclosure:         {"\n[spoiler=", ""},
	DisclosureLabel:    {"{label}]", ""},
}

var closings = [constructCount][dialectCount]string{
	Paragraph:          {"\n", "\n"},
	Heading:            {"[/u][/b][/size]\n", "[/u][/b][/font]\n\n"},
	BlockQuote:         {"[/quote]", "[/blockquote]"},
	CodeBlock:          {"[/code]\n", "[/pre]\n"},
	OrderedList:        {"\n[/list]", "\n[/ol]"},
	UnorderedList:      {"\n[/list]", "\n[/ul]"},
	ListItem:           {"", "[/li]"},
	FootnoteDefinition: {"\n", "\n"},
	Table:              {"[/table]", "\n  [/tbody]\n[/table]"},
	TableHead:          {"[/tr]", "[/tr][/thead]\n  [tbody]"},
	TableRow:           {"[/tr]", "[/tr]"},
	TableCell:          {"[/td]", "[/td]"},
	Emphasis:           {"[/i]", "[/i]"},
	Strong:             {"[/b]", "[/b]"},
	Strikethrough:      {"[/s]", "[/s]"},
	Superscript:        {"[/sup]", "[/sup]"},
	Subscript:          {"[/sub]", "[/sub]"},
	Link:               {"[/url]", "[/a]"},
	InlineCode:         {"[/font]", "[/tt]"},
	Disclosure:         {"[/spoiler]\n", ""},
}

// ProBoards has no spoiler/details tag.
var supported = [constructCount][dialectCount]bool{}

func init() {
	for c := range supported {
		for d := range supported[c] {
			supported[c][d] = true
		}
	}
	supported[Disclosure][ProBoards] = false
	supported[DisclosureLabel][ProBoards] = false
}

// headingSizes maps heading levels 1..6 to font sizes. No surveyed forum
// distinguishes more than four heading sizes, so 4..6 share the smallest.
var headingSizes = [7]int{1: 7, 2: 6, 3: 5, 4: 4, 5: 4, 6: 4}

// codeUnitLimits is the first rune a dialect's storage cannot represent, or
// zero when the forum stores arbitrary Unicode. XenForo runs on a UCS-2
// column where U+FFFE and above are unusable.
var codeUnitLimits = [dialectCount]rune{
	XenForo:   0xfffe,
	ProBoards: 0,
}

// Open returns the markup that starts c in d with placeholders expanded.
func Open(c Construct, d Dialect, a Attrs) string {
	return expand(lookup(&openings, c, d), a)
}

// Close returns the markup that ends c in d.
func Close(c Construct, d Dialect, a Attrs) string {
	return expand(lookup(&closings, c, d), a)
}

// Supports reports whether d has an equivalent for c.
func Supports(c Construct, d Dialect) bool {
	if c >= constructCount || !d.Valid() {
		return false
	}
	return supported[c][d]
}

// HeadingSize returns the font size token for a heading level. Levels
// outside 1..6 are clamped.
func HeadingSize(level int) int {
	level = max(1, min(level, 6))
	return headingSizes[level]
}

// CodeUnitLimit returns the first unrepresentable rune for d, or zero if d
// has no limit.
func CodeUnitLimit(d Dialect) rune {
	if !d.Valid() {
		return 0
	}
	return codeUnitLimits[d]
}

func lookup(table *[constructCount][dialectCount]string, c Construct, d Dialect) string {
	if c >= constructCount || !d.Valid() {
		return ""
	}
	return table[c][d]
}

func expand(tmpl string, a Attrs) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	return strings.NewReplacer(
		"{url}", a.URL,
		"{alt}", a.Alt,
		"{id}", a.ID,
		"{label}", a.Label,
		"{size}", strconv.Itoa(a.Size),
	).Replace(tmpl)
}
