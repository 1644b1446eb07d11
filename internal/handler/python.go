package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// pythonHandler segments Python sources. Recognized leading constructs:
// shebang, PEP 263 encoding markers, __future__ imports, and module
// docstrings. Canonical output order is shebang/encoding/future imports,
// header, docstrings, body.
type pythonHandler struct {
	base
}

// NewPython builds the Python handler. It also owns .pyi type stubs, which
// follow the same header conventions.
func NewPython(header string) Handler {
	return &pythonHandler{base: newBase(
		"python",
		[]string{".py", ".pyi"},
		types.CommentSyntax{Start: "#"},
		header,
		[]string{
			`^#!`,                 // shebang
			`^# -\*-.*-\*-$`,      // encoding marker
			`^from __future__\b`,  // future imports
		},
	)}
}

func (h *pythonHandler) Parse(content string) ([]types.Section, error) {
	lines := splitLines(content)
	var sections []types.Section

	i := 0
scan:
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		stripped := strings.TrimSpace(line)

		switch {
		case stripped == "":
			i++

		case strings.HasPrefix(stripped, `"""`):
			if strings.HasSuffix(stripped, `"""`) && len(stripped) > 3 {
				// Single-line docstring.
				sections = append(sections, types.Directive(line))
				i++
			} else {
				block, next := captureDelimited(lines, i, `"""`)
				sections = append(sections, types.Directive(strings.Join(block, "\n")))
				i = next
			}

		case h.isSpecialLine(line):
			sections = append(sections, types.Directive(line))
			i++

		case strings.HasPrefix(stripped, "#"):
			block, next := captureLineComments(lines, i, "#")
			text := strings.Join(block, "\n")
			copyright := h.isCopyrightText(text)
			if !copyright && next < len(lines) && !isBlank(lines[next]) {
				// A comment glued to the following code documents that
				// code; it belongs to the body, not the file prologue.
				break scan
			}
			sections = append(sections, types.Comment(text, copyright))
			i = next

		default:
			break scan
		}
	}

	if i < len(lines) {
		sections = append(sections, types.NewContent(bodyFrom(lines, i)))
	}
	return sections, nil
}

func (h *pythonHandler) Assemble(sections []types.Section, header string) string {
	var top, docs, body []string
	headerText := header

	for _, s := range sections {
		switch s.Kind {
		case types.SectionDirective:
			if strings.HasPrefix(strings.TrimSpace(s.Content), `"""`) {
				docs = append(docs, s.Content)
			} else {
				top = append(top, s.Content)
			}
		case types.SectionComment:
			if s.Copyright {
				if h.headerUpToDate(s.Content) {
					headerText = s.Content
				}
				continue
			}
			body = append(body, s.Content)
		case types.SectionContent:
			body = append(body, s.Content)
		}
	}

	var parts []string
	parts = appendGroup(parts, top)
	parts = appendGroup(parts, []string{headerText})
	parts = appendGroup(parts, docs)
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}
