package handler

import (
	"strings"
	"testing"
)

func TestMarkdownHeaderLeadsDocument(t *testing.T) {
	h := NewMarkdown(testHeader)

	got := applyTwice(t, h, "# Title\n\nSome prose.\n")
	want := "<!-- Copyright Example Ltd, UK 2025 -->\n\n# Title\n\nSome prose.\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMarkdownFrontMatterStaysFirst(t *testing.T) {
	h := NewMarkdown(testHeader)

	content := "---\ntitle: Page\nlayout: post\n---\n\n# Title\n"
	got := applyTwice(t, h, content)
	want := "---\ntitle: Page\nlayout: post\n---\n\n<!-- Copyright Example Ltd, UK 2025 -->\n\n# Title\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMarkdownReplacesOutdatedHeader(t *testing.T) {
	h := NewMarkdown(testHeader)

	content := "<!-- Copyright Old Corp 2015 -->\n\n# Title\n"
	got := applyTwice(t, h, content)
	want := "<!-- Copyright Example Ltd, UK 2025 -->\n\n# Title\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMarkdownMultiLineCommentHeader(t *testing.T) {
	h := NewMarkdown(testHeader)

	content := "<!--\nCopyright Old Corp 2015\nAll rights reserved.\n-->\n\nBody.\n"
	got := applyTwice(t, h, content)

	if strings.Contains(got, "Old Corp") {
		t.Errorf("multi-line comment header should be replaced:\n%s", got)
	}
	if !strings.Contains(got, "Body.") {
		t.Errorf("body lost:\n%s", got)
	}
}

func TestMarkdownUnclosedFrontMatterTreatedAsMarker(t *testing.T) {
	h := NewMarkdown(testHeader)

	content := "---\nkey: value\n"
	got := applyTwice(t, h, content)

	if !strings.HasPrefix(got, "---\n") {
		t.Errorf("lone fence should stay first:\n%s", got)
	}
	if !strings.Contains(got, "key: value") {
		t.Errorf("body lost:\n%s", got)
	}
}
