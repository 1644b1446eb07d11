package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// terraformHandler segments Terraform files. HCL has no "must stay first"
// constructs, so the canonical order is simply header then body. The
// handler is built in two flavors: .tf uses /* */ block comments for the
// header, .tfvars uses # line comments. Existing comments in either form
// are recognized in both flavors so an old-style header is still replaced.
type terraformHandler struct {
	base
}

// NewTerraform builds the handler for .tf files (block comment header).
func NewTerraform(header string) Handler {
	return &terraformHandler{base: newBase(
		"terraform",
		[]string{".tf"},
		types.CommentSyntax{Start: "/*", End: "*/"},
		header,
		nil,
	)}
}

// NewTfvars builds the handler for .tfvars files (line comment header).
func NewTfvars(header string) Handler {
	return &terraformHandler{base: newBase(
		"tfvars",
		[]string{".tfvars"},
		types.CommentSyntax{Start: "#"},
		header,
		nil,
	)}
}

func (h *terraformHandler) Parse(content string) ([]types.Section, error) {
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

		case strings.HasPrefix(stripped, "/*"):
			var block []string
			var next int
			if strings.Contains(stripped[2:], "*/") {
				block, next = []string{line}, i+1
			} else {
				block, next = captureDelimited(lines, i, "*/")
			}
			text := strings.Join(block, "\n")
			sections = append(sections, types.Comment(text, h.isCopyrightText(text)))
			i = next

		case strings.HasPrefix(stripped, "#"), strings.HasPrefix(stripped, "//"):
			prefix := "#"
			if strings.HasPrefix(stripped, "//") {
				prefix = "//"
			}
			block, next := captureLineComments(lines, i, prefix)
			text := strings.Join(block, "\n")
			copyright := h.isCopyrightText(text)
			if !copyright && next < len(lines) && !isBlank(lines[next]) {
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

func (h *terraformHandler) Assemble(sections []types.Section, header string) string {
	var body []string
	headerText := header

	for _, s := range sections {
		if s.Kind == types.SectionComment && s.Copyright {
			if h.headerUpToDate(s.Content) {
				headerText = s.Content
			}
			continue
		}
		body = append(body, s.Content)
	}

	parts := []string{headerText}
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}
