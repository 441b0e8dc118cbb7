// Package rawmarkup translates inline HTML fragments that Markdown passes
// through verbatim.
//
// Only a small whitelist of simple tags has a BBCode equivalent. Everything
// else is either dropped (comments) or handed back for literal output, with
// one exception: a <summary> element split across fragments cannot be
// rendered as a spoiler title and aborts the translation.
package rawmarkup

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/bbpipe/core/dialect"
	"golang.org/x/net/html"
)

// Outcome says what the caller should do with a fragment.
type Outcome uint8

const (
	// Translated: emit Result.Text (possibly empty).
	Translated Outcome = iota
	// Passthrough: the fragment is not markup we know; emit it verbatim
	// and warn.
	Passthrough
	// Suppressed: an HTML comment or declaration; emit nothing.
	Suppressed
	// Unsupported: recognized, but the dialect has no equivalent; emit
	// nothing and warn.
	Unsupported
)

// Result is the classification of one fragment.
type Result struct {
	Outcome   Outcome
	Text      string
	Construct dialect.Construct
}

// ErrMalformedSummary is matched by every *MalformedError.
var ErrMalformedSummary = errors.New("a `<summary>` element (including its contents) must be all on a single line")

// MalformedError reports a <summary> element whose label or closing tag did
// not arrive in the same fragment as its opening tag.
type MalformedError struct {
	Fragment string
}

func (e *MalformedError) Error() string {
	return ErrMalformedSummary.Error() + ": " + e.Fragment
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedSummary
}

type whitelistEntry struct {
	construct dialect.Construct
	closing   bool
}

var whitelist = map[string]whitelistEntry{
	"<del>":         {dialect.Strikethrough, false},
	"</del>":        {dialect.Strikethrough, true},
	"<sup>":         {dialect.Superscript, false},
	"</sup>":        {dialect.Superscript, true},
	"<sub>":         {dialect.Subscript, false},
	"</sub>":        {dialect.Subscript, true},
	"<b>":           {dialect.Strong, false},
	"</b>":          {dialect.Strong, true},
	"<i>":           {dialect.Emphasis, false},
	"</i>":          {dialect.Emphasis, true},
	"<blockquote>":  {dialect.BlockQuote, false},
	"</blockquote>": {dialect.BlockQuote, true},
	"<details>":     {dialect.Disclosure, false},
	"</details>":    {dialect.Disclosure, true},
}

const (
	summaryOpen  = "<summary"
	summaryClose = "</summary>"
	lineBreak    = "<br"
)

// Translate classifies fragment for dialect d. Matching is case-sensitive
// and ignores surrounding white space. The only error is a *MalformedError.
func Translate(fragment string, d dialect.Dialect) (Result, error) {
	trimmed := strings.TrimSpace(fragment)

	if entry, ok := whitelist[trimmed]; ok {
		return translateTag(entry, d), nil
	}

	switch {
	case strings.HasPrefix(trimmed, lineBreak):
		if isLineBreak(trimmed) {
			return Result{
				Outcome:   Translated,
				Text:      dialect.Open(dialect.HardBreak, d, dialect.Attrs{}),
				Construct: dialect.HardBreak,
			}, nil
		}
	case strings.HasPrefix(trimmed, summaryOpen):
		return translateSummary(trimmed, d)
	}

	if strings.HasPrefix(fragment, "<!") {
		return Result{Outcome: Suppressed, Text: ""}, nil
	}
	return Result{Outcome: Passthrough, Text: fragment}, nil
}

func translateTag(entry whitelistEntry, d dialect.Dialect) Result {
	res := Result{Construct: entry.construct}
	if !dialect.Supports(entry.construct, d) {
		// Only the opening tag warns; its closing tag is silently dropped
		// so no half-open bracket pair is left behind.
		if entry.closing {
			res.Outcome = Translated
		} else {
			res.Outcome = Unsupported
		}
		return res
	}
	res.Outcome = Translated
	if entry.closing {
		res.Text = dialect.Close(entry.construct, d, dialect.Attrs{})
	} else {
		res.Text = dialect.Open(entry.construct, d, dialect.Attrs{})
	}
	return res
}

// isLineBreak accepts <br>, <br/>, <br /> and <br class=...>, but not
// <brx> or a bare <br.
func isLineBreak(s string) bool {
	rest := []rune(s)
	if len(rest) < 4 {
		return false
	}
	c := rest[3]
	return unicode.IsSpace(c) || c == '/' || c == '>'
}

func translateSummary(s string, d dialect.Dialect) (Result, error) {
	if !strings.HasSuffix(s, summaryClose) {
		return Result{}, &MalformedError{Fragment: s}
	}
	// "<summary attr>label</summary>" splits into
	// ["", "summary attr", "label", "/summary", ""].
	label, ok := splitField(s, 2)
	if !ok {
		return Result{}, &MalformedError{Fragment: s}
	}
	res := Result{Outcome: Translated, Construct: dialect.DisclosureLabel}
	if dialect.Supports(dialect.DisclosureLabel, d) {
		res.Text = dialect.Open(dialect.DisclosureLabel, d, dialect.Attrs{Label: html.UnescapeString(label)})
	}
	return res, nil
}

// splitField returns the n-th field of s split on every '<' and '>',
// keeping empty fields.
func splitField(s string, n int) (string, bool) {
	for i := 0; ; i++ {
		j := strings.IndexAny(s, "<>")
		if i == n {
			if j < 0 {
				return s, true
			}
			return s[:j], true
		}
		if j < 0 {
			return "", false
		}
		s = s[j+1:]
	}
}
