package dialect

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "xenforo", want: XenForo},
		{in: " ProBoards ", want: ProBoards},
		{in: "phpbb", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.in)
			}
			if !strings.Contains(err.Error(), "xenforo, proboards") {
				t.Fatalf("Parse(%q): error should list dialects: %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("Parse(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, d := range All() {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatalf("marshal %v: %v", d, err)
		}
		var back Dialect
		if err := back.UnmarshalText(b); err != nil || back != d {
			t.Fatalf("round trip %v: got %v, %v", d, back, err)
		}
	}
}

func TestTablesAreTotal(t *testing.T) {
	for c := Construct(0); c < constructCount; c++ {
		if constructNames[c] == "" {
			t.Fatalf("construct %d has no name", c)
		}
		for _, d := range All() {
			if Supports(c, d) {
				continue
			}
			if Open(c, d, Attrs{}) != "" || Close(c, d, Attrs{}) != "" {
				t.Fatalf("%s is unsupported in %s but has markup", c, d)
			}
		}
	}
}

func bracketsBalanced(markup string) bool {
	markup = strings.ReplaceAll(markup, "[*]", "")
	return strings.Count(markup, "[") == 2*strings.Count(markup, "[/")
}

// Every opening bracket tag must be balanced by the matching close so the
// translator can never leave a tag open.
func TestOpenCloseBalanced(t *testing.T) {
	skip := map[Construct]bool{
		Image: true, FootnoteReference: true, SoftBreak: true, HardBreak: true,
		ThematicBreak: true, TaskChecked: true, TaskUnchecked: true,
		DisclosureLabel: true, Disclosure: true,
		// The table body is opened by the head and closed by the table.
		Table: true, TableHead: true,
	}
	for c := Construct(0); c < constructCount; c++ {
		if skip[c] {
			continue
		}
		for _, d := range All() {
			markup := Open(c, d, Attrs{URL: "u", Size: 4}) + Close(c, d, Attrs{})
			if !bracketsBalanced(markup) {
				t.Fatalf("%s/%s is unbalanced: %q", c, d, markup)
			}
		}
	}
	for _, d := range All() {
		markup := Open(Table, d, Attrs{}) + Open(TableHead, d, Attrs{}) +
			Close(TableHead, d, Attrs{}) + Close(Table, d, Attrs{})
		if !bracketsBalanced(markup) {
			t.Fatalf("table/%s is unbalanced: %q", d, markup)
		}
	}
	spoiler := Open(Disclosure, XenForo, Attrs{}) + Open(DisclosureLabel, XenForo, Attrs{Label: "x"}) +
		Close(Disclosure, XenForo, Attrs{})
	if !bracketsBalanced(spoiler) {
		t.Fatalf("spoiler is unbalanced: %q", spoiler)
	}
}

func TestOpenExpandsPlaceholders(t *testing.T) {
	tests := []struct {
		c    Construct
		d    Dialect
		a    Attrs
		want string
	}{
		{Link, XenForo, Attrs{URL: "https://a.b"}, "[url=https://a.b]"},
		{Link, ProBoards, Attrs{URL: "https://a.b"}, `[a href="https://a.b"]`},
		{Image, ProBoards, Attrs{URL: "i.png", Alt: "pic"}, `[img src="i.png" alt="pic"]`},
		{FootnoteDefinition, XenForo, Attrs{ID: "n"}, "\n⌜n⌝: "},
		{DisclosureLabel, XenForo, Attrs{Label: "more"}, "more]"},
		{Heading, XenForo, Attrs{Size: HeadingSize(2)}, "\n[size=\"6\"][b][u]"},
	}
	for _, tc := range tests {
		if got := Open(tc.c, tc.d, tc.a); got != tc.want {
			t.Fatalf("Open(%s, %s) = %q, want %q", tc.c, tc.d, got, tc.want)
		}
	}
}

func TestHeadingSize(t *testing.T) {
	want := map[int]int{0: 7, 1: 7, 2: 6, 3: 5, 4: 4, 5: 4, 6: 4, 9: 4}
	for level, size := range want {
		if got := HeadingSize(level); got != size {
			t.Fatalf("HeadingSize(%d) = %d, want %d", level, got, size)
		}
	}
}

func TestDisclosureSupport(t *testing.T) {
	if !Supports(Disclosure, XenForo) || !Supports(DisclosureLabel, XenForo) {
		t.Fatalf("xenforo should support spoilers")
	}
	if Supports(Disclosure, ProBoards) || Supports(DisclosureLabel, ProBoards) {
		t.Fatalf("proboards has no spoiler tag")
	}
	if Supports(Paragraph, dialectCount) {
		t.Fatalf("out of range dialect reported as supported")
	}
}

func TestCodeUnitLimit(t *testing.T) {
	if CodeUnitLimit(XenForo) != 0xfffe {
		t.Fatalf("xenforo limit = %#x", CodeUnitLimit(XenForo))
	}
	if CodeUnitLimit(ProBoards) != 0 {
		t.Fatalf("proboards should have no limit")
	}
}

func TestOutOfRangeDialect(t *testing.T) {
	for _, d := range All() {
		if !d.Valid() {
			t.Fatalf("%v should be valid", d)
		}
	}
	bad := dialectCount
	if bad.Valid() {
		t.Fatalf("dialect %d reported valid", bad)
	}
	if Open(Strong, bad, Attrs{}) != "" || Close(Strong, bad, Attrs{}) != "" {
		t.Fatalf("out of range dialect produced markup")
	}
	if CodeUnitLimit(bad) != 0 {
		t.Fatalf("out of range dialect has a code unit limit")
	}
}
