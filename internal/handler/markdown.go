package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// markdownHandler segments Markdown documents. A YAML front-matter fence
// opening on the very first line keeps its position ahead of the header;
// otherwise the order is header then body. Headers use HTML comments.
type markdownHandler struct {
	base
}

// NewMarkdown builds the Markdown handler.
func NewMarkdown(header string) Handler {
	return &markdownHandler{base: newBase(
		"markdown",
		[]string{".md", ".markdown"},
		types.CommentSyntax{Start: "<!--", End: "-->"},
		header,
		nil,
	)}
}

func (h *markdownHandler) Parse(content string) ([]types.Section, error) {
	lines := splitLines(content)
	var sections []types.Section

	i := 0
	// Front matter is only front matter when the fence opens the file.
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		block, next := captureFrontMatter(lines)
		sections = append(sections, types.Directive(strings.Join(block, "\n")))
		i = next
	}

scan:
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		stripped := strings.TrimSpace(line)

		switch {
		case stripped == "":
			i++

		case strings.HasPrefix(stripped, "<!--"):
			var block []string
			var next int
			if strings.Contains(stripped[4:], "-->") {
				block, next = []string{line}, i+1
			} else {
				block, next = captureDelimited(lines, i, "-->")
			}
			text := strings.Join(block, "\n")
			sections = append(sections, types.Comment(text, h.isCopyrightText(text)))
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

// captureFrontMatter captures a leading YAML front-matter block: the
// opening "---" through the closing "---" or "..." fence, inclusive. An
// unclosed fence is treated as a lone document marker instead of
// swallowing the whole file.
func captureFrontMatter(lines []string) ([]string, int) {
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "---" || trimmed == "..." {
			block := make([]string, 0, i+1)
			for _, l := range lines[:i+1] {
				block = append(block, strings.TrimRight(l, " \t"))
			}
			return block, i + 1
		}
	}
	return []string{strings.TrimRight(lines[0], " \t")}, 1
}

func (h *markdownHandler) Assemble(sections []types.Section, header string) string {
	var front, body []string
	headerText := header

	for _, s := range sections {
		switch s.Kind {
		case types.SectionDirective:
			front = append(front, s.Content)
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
	parts = appendGroup(parts, front)
	parts = appendGroup(parts, []string{headerText})
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}
