package extract

import (
	"strings"
	"testing"
)

const page = `<!doctype html>
<html lang="en"><head><title> Release notes </title><script>var x;</script></head>
<body>
<nav><a href="/home">Home</a></nav>
<main>
<h1>Notes</h1>
<p>See <a href="guide/setup">setup</a> and <a href="#top">top</a>.</p>
<img src="/img/shot.png" alt="shot">
<form><input name="q"></form>
</main>
<footer>footer text</footer>
</body></html>`

func TestExtractMainContent(t *testing.T) {
	got, err := New().Extract(page, "")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.HasPrefix(got, "<main>") {
		t.Fatalf("expected <main> container, got %q", got)
	}
	for _, gone := range []string{"Home", "footer text", "<form", "var x"} {
		if strings.Contains(got, gone) {
			t.Fatalf("noise %q not removed: %q", gone, got)
		}
	}
	if !strings.Contains(got, `<img src="/img/shot.png"`) {
		t.Fatalf("image should survive extraction: %q", got)
	}
}

func TestExtractResolvesLinks(t *testing.T) {
	got, err := New().Extract(page, "https://example.com/docs/notes")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	for _, want := range []string{
		`href="https://example.com/docs/guide/setup"`,
		`src="https://example.com/img/shot.png"`,
		`href="#top"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %q", want, got)
		}
	}
}

func TestExtractFallsBackToBody(t *testing.T) {
	got, err := New().Extract("<p>only a paragraph</p>", "")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.HasPrefix(got, "<body>") || !strings.Contains(got, "only a paragraph") {
		t.Fatalf("unexpected fragment: %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := New().Title(page); got != "Release notes" {
		t.Fatalf("title = %q", got)
	}
	if got := New().Title("<p>x</p>"); got != "" {
		t.Fatalf("title = %q, want empty", got)
	}
}
