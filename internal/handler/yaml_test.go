package handler

import (
	"strings"
	"testing"
)

func TestYAMLDocumentMarkerStaysFirst(t *testing.T) {
	h := NewYAML(testHeader)

	got := applyTwice(t, h, "---\nkey: value\n")
	want := "---\n\n# Copyright Example Ltd, UK 2025\n\nkey: value\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestYAMLReprocessingReportsNoChange(t *testing.T) {
	h := NewYAML(testHeader)
	rendered := FormatHeader(h.Syntax(), testHeader)

	sections, err := h.Parse("---\nkey: value\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	first := h.Assemble(sections, rendered)

	sections, err = h.Parse(first)
	if err != nil {
		t.Fatalf("Parse of own output failed: %v", err)
	}
	second := h.Assemble(sections, rendered)

	if second != first {
		t.Errorf("second run must report no change:\nfirst  %q\nsecond %q", first, second)
	}
}

func TestYAMLNoMarker(t *testing.T) {
	h := NewYAML(testHeader)

	got := applyTwice(t, h, "key: value\nother: 2\n")
	want := "# Copyright Example Ltd, UK 2025\n\nkey: value\nother: 2\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestYAMLVersionDirectiveBeforeMarker(t *testing.T) {
	h := NewYAML(testHeader)

	content := "%YAML 1.2\n---\nkey: value\n"
	got := applyTwice(t, h, content)
	want := "%YAML 1.2\n---\n\n# Copyright Example Ltd, UK 2025\n\nkey: value\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestYAMLCommentAttachedToKey(t *testing.T) {
	h := NewYAML(testHeader)

	content := "---\n# how many workers to run\nworkers: 4\n"
	got := applyTwice(t, h, content)

	if !strings.Contains(got, "# how many workers to run\nworkers: 4") {
		t.Errorf("comment annotating a key must stay attached:\n%s", got)
	}
}

func TestYAMLMultiDocumentBodyUntouched(t *testing.T) {
	h := NewYAML(testHeader)

	content := "---\nfirst: 1\n---\nsecond: 2\n"
	got := applyTwice(t, h, content)

	if !strings.Contains(got, "first: 1\n---\nsecond: 2") {
		t.Errorf("mid-file document markers belong to the body:\n%s", got)
	}
}

func TestYAMLReplacesOutdatedHeader(t *testing.T) {
	h := NewYAML(testHeader)

	got := applyTwice(t, h, "# Copyright Old Corp 2017\n\nkey: value\n")
	want := "# Copyright Example Ltd, UK 2025\n\nkey: value\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
