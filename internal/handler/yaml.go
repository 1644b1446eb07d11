package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// yamlHandler segments YAML documents. %YAML/%TAG directives and the
// document-start marker ("---") in the prologue keep their position ahead
// of the header.
type yamlHandler struct {
	base
}

// NewYAML builds the YAML handler.
func NewYAML(header string) Handler {
	return &yamlHandler{base: newBase(
		"yaml",
		[]string{".yml", ".yaml"},
		types.CommentSyntax{Start: "#"},
		header,
		[]string{
			`^---\s*$`, // document-start marker
			`^%YAML`,   // version directive
			`^%TAG`,    // tag directive
		},
	)}
}

func (h *yamlHandler) Parse(content string) ([]types.Section, error) {
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

		case h.isSpecialLine(line):
			sections = append(sections, types.Directive(line))
			i++

		case strings.HasPrefix(stripped, "#"):
			block, next := captureLineComments(lines, i, "#")
			text := strings.Join(block, "\n")
			copyright := h.isCopyrightText(text)
			if !copyright && next < len(lines) && !isBlank(lines[next]) {
				// Comments glued to the first key annotate that key.
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

func (h *yamlHandler) Assemble(sections []types.Section, header string) string {
	var docStart, body []string
	headerText := header

	for _, s := range sections {
		switch s.Kind {
		case types.SectionDirective:
			// %YAML/%TAG directives and the --- marker stay in input
			// order; YAML requires directives to precede the marker.
			docStart = append(docStart, s.Content)
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
	parts = appendGroup(parts, docStart)
	parts = appendGroup(parts, []string{headerText})
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}
