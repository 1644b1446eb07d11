package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// bashHandler segments shell scripts. The shebang stays first; shell option
// and environment statements (set/export/readonly/IFS) in the file prologue
// keep their position directly after the header.
type bashHandler struct {
	base
}

// NewBash builds the shell script handler.
func NewBash(header string) Handler {
	return &bashHandler{base: newBase(
		"bash",
		[]string{".sh", ".bash"},
		types.CommentSyntax{Start: "#"},
		header,
		[]string{
			`^#!`,
			`^set\s`,
			`^export\s`,
			`^readonly\s`,
			`^IFS=`,
		},
	)}
}

func (h *bashHandler) Parse(content string) ([]types.Section, error) {
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

func (h *bashHandler) Assemble(sections []types.Section, header string) string {
	var shebang, settings, body []string
	headerText := header

	for _, s := range sections {
		switch s.Kind {
		case types.SectionDirective:
			if strings.HasPrefix(strings.TrimSpace(s.Content), "#!") {
				shebang = append(shebang, s.Content)
			} else {
				settings = append(settings, s.Content)
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
	parts = appendGroup(parts, shebang)
	parts = appendGroup(parts, []string{headerText})
	parts = appendGroup(parts, settings)
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}
