package handler

import (
	"strings"
	"testing"
)

const testHeader = "Copyright Example Ltd, UK 2025"

// applyTwice runs the parse/assemble pipeline twice and fails the test if
// the second pass changes anything.
func applyTwice(t *testing.T, h Handler, content string) string {
	t.Helper()
	rendered := FormatHeader(h.Syntax(), testHeader)

	sections, err := h.Parse(content)
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
		t.Errorf("pipeline is not idempotent:\nfirst:  %q\nsecond: %q", first, second)
	}
	return first
}

func TestPythonShebangStaysFirst(t *testing.T) {
	h := NewPython(testHeader)

	got := applyTwice(t, h, "#!/usr/bin/env python3\nprint(1)\n")
	want := "#!/usr/bin/env python3\n\n# Copyright Example Ltd, UK 2025\n\nprint(1)\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonPlainFile(t *testing.T) {
	h := NewPython(testHeader)

	got := applyTwice(t, h, "import os\n\nprint(os.getcwd())\n")
	want := "# Copyright Example Ltd, UK 2025\n\nimport os\n\nprint(os.getcwd())\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonDocstringAfterHeader(t *testing.T) {
	h := NewPython(testHeader)

	got := applyTwice(t, h, "\"\"\"A simple Python module.\"\"\"\n\nimport os\n")
	want := "# Copyright Example Ltd, UK 2025\n\n\"\"\"A simple Python module.\"\"\"\n\nimport os\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonMultiLineDocstring(t *testing.T) {
	h := NewPython(testHeader)

	content := "\"\"\"Module docs.\n\nMore detail.\n\"\"\"\n\nx = 1\n"
	got := applyTwice(t, h, content)

	if !strings.Contains(got, "\"\"\"Module docs.\n\nMore detail.\n\"\"\"") {
		t.Errorf("multi-line docstring not preserved intact:\n%s", got)
	}
	if !strings.HasPrefix(got, "# Copyright Example Ltd, UK 2025\n") {
		t.Errorf("header should lead the file:\n%s", got)
	}
}

func TestPythonSpecialLineOrdering(t *testing.T) {
	h := NewPython(testHeader)

	content := "#!/usr/bin/env python3\n# -*- coding: utf-8 -*-\nfrom __future__ import annotations\n\nimport os\n"
	got := applyTwice(t, h, content)
	want := "#!/usr/bin/env python3\n# -*- coding: utf-8 -*-\nfrom __future__ import annotations\n\n# Copyright Example Ltd, UK 2025\n\nimport os\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonReplacesOutdatedHeader(t *testing.T) {
	h := NewPython(testHeader)

	got := applyTwice(t, h, "# Copyright Old Corp 2020\n\nimport os\n")
	want := "# Copyright Example Ltd, UK 2025\n\nimport os\n"
	if got != want {
		t.Errorf("outdated header should be replaced, got %q", got)
	}
	if strings.Contains(got, "Old Corp") {
		t.Errorf("old header must not be duplicated: %q", got)
	}
}

func TestPythonYearOnlyDifferenceUnchanged(t *testing.T) {
	h := NewPython(testHeader)
	rendered := FormatHeader(h.Syntax(), testHeader)

	content := "# Copyright Example Ltd, UK 2019\n\nimport os\n"
	sections, err := h.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	got := h.Assemble(sections, rendered)
	if got != content {
		t.Errorf("header differing only in year must be left unmodified:\ngot  %q\nwant %q", got, content)
	}
}

func TestPythonAttachedCommentStaysWithCode(t *testing.T) {
	h := NewPython(testHeader)

	content := "# helper for the frobnicator\ndef frob():\n    pass\n"
	got := applyTwice(t, h, content)
	want := "# Copyright Example Ltd, UK 2025\n\n# helper for the frobnicator\ndef frob():\n    pass\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonBodySpacingPreserved(t *testing.T) {
	h := NewPython(testHeader)

	content := "import os\n\n\ndef main():\n    pass\n\n\nif __name__ == \"__main__\":\n    main()\n"
	got := applyTwice(t, h, content)
	if !strings.Contains(got, "def main():\n    pass\n\n\nif __name__") {
		t.Errorf("interior blank lines of the body must survive:\n%s", got)
	}
}

func TestPythonEmptyFile(t *testing.T) {
	h := NewPython(testHeader)

	got := applyTwice(t, h, "")
	want := "# Copyright Example Ltd, UK 2025\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPythonUnterminatedDocstring(t *testing.T) {
	h := NewPython(testHeader)

	// EOF implicitly terminates the block; must not panic.
	got := applyTwice(t, h, "\"\"\"never closed\nstill going\n")
	if !strings.Contains(got, "never closed") {
		t.Errorf("unterminated docstring content lost:\n%s", got)
	}
}

func TestPythonLosslessSegmentation(t *testing.T) {
	h := NewPython(testHeader).(*pythonHandler)

	content := "#!/usr/bin/env python3\n\n\"\"\"Docs.\"\"\"\n\nimport os\n\nprint(os.name)\n"
	sections, err := h.Parse(content)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	texts := make([]string, len(sections))
	for i, s := range sections {
		texts[i] = s.Content
	}
	rebuilt := strings.Join(texts, "\n\n") + "\n"
	if rebuilt != content {
		t.Errorf("segmentation lost text:\ngot  %q\nwant %q", rebuilt, content)
	}
}
