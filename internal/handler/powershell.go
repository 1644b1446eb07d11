package handler

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// powershellHandler segments PowerShell scripts. The canonical order is
// #requires, using statements, comment-based help (the header lives inside
// it under a .COPYRIGHT tag), attributes such as [CmdletBinding()], the
// param block, then the body. PowerShell is the one language where the
// header is merged into an existing structural comment instead of standing
// alone: when a help block exists its .COPYRIGHT tag is updated in place,
// or one is appended before the closing delimiter.
//
// Attribute lines preceding param are always captured as their own
// directive sections and re-emitted immediately before the param group,
// whether or not they were contiguous with it in the input.
type powershellHandler struct {
	base
}

// PowerShell keywords are case-insensitive.
var (
	psRequiresRx = regexp.MustCompile(`(?i)^#requires\b`)
	psUsingRx    = regexp.MustCompile(`(?i)^using\s+(namespace|module)\b`)
	psAttrRx     = regexp.MustCompile(`^\[[A-Za-z].*\]$`)
	psParamRx    = regexp.MustCompile(`(?i)^param\s*\(`)
	psHelpTagRx  = regexp.MustCompile(`(?m)^\s*\.[A-Za-z]+\s*$`)
)

// NewPowerShell builds the PowerShell handler. It also owns .psm1 modules.
func NewPowerShell(header string) Handler {
	return &powershellHandler{base: newBase(
		"powershell",
		[]string{".ps1", ".psm1"},
		types.CommentSyntax{Start: "<#", End: "#>"},
		header,
		[]string{
			`(?i)^#requires\b`,
			`(?i)^using\s+(namespace|module)\b`,
			`^\[[A-Za-z].*\]$`,
			`(?i)^param\s*\(`,
		},
	)}
}

func (h *powershellHandler) Parse(content string) ([]types.Section, error) {
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

		case psRequiresRx.MatchString(stripped), psUsingRx.MatchString(stripped), psAttrRx.MatchString(stripped):
			sections = append(sections, types.Directive(line))
			i++

		case psParamRx.MatchString(stripped):
			block, next := captureBalanced(lines, i)
			sections = append(sections, types.Directive(strings.Join(block, "\n")))
			i = next

		case strings.HasPrefix(stripped, "<#"):
			var block []string
			var next int
			if strings.Contains(stripped[2:], "#>") {
				block, next = []string{line}, i+1
			} else {
				block, next = captureDelimited(lines, i, "#>")
			}
			text := strings.Join(block, "\n")
			sections = append(sections, types.Comment(text, h.isCopyrightText(text)))
			i = next

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

func (h *powershellHandler) Assemble(sections []types.Section, header string) string {
	var requires, using, attrs, params, helps, body []string
	headerText := header

	for _, s := range sections {
		switch s.Kind {
		case types.SectionDirective:
			trimmed := strings.TrimSpace(s.Content)
			switch {
			case psRequiresRx.MatchString(trimmed):
				requires = append(requires, s.Content)
			case psUsingRx.MatchString(trimmed):
				using = append(using, s.Content)
			case strings.HasPrefix(trimmed, "["):
				attrs = append(attrs, s.Content)
			default:
				params = append(params, s.Content)
			}
		case types.SectionComment:
			switch {
			case isHelpBlock(s.Content):
				helps = append(helps, s.Content)
			case s.Copyright:
				if h.headerUpToDate(s.Content) {
					headerText = s.Content
				}
			default:
				body = append(body, s.Content)
			}
		case types.SectionContent:
			body = append(body, s.Content)
		}
	}

	// The header slot: merged into the first help block when one exists,
	// a standalone block comment otherwise.
	headerGroup := []string{headerText}
	if len(helps) > 0 {
		headerGroup = []string{h.mergeCopyrightTag(helps[0], h.header)}
		// Additional help blocks are unusual; keep them with the body.
		body = append(helps[1:], body...)
	}

	var parts []string
	parts = appendGroup(parts, requires)
	parts = appendGroup(parts, using)
	parts = appendGroup(parts, headerGroup)
	parts = appendGroup(parts, attrs)
	parts = appendGroup(parts, params)
	if len(body) > 0 {
		parts = appendGroup(parts, []string{strings.Join(body, "\n\n")})
	}
	return finish(parts)
}

// isHelpBlock reports whether a <# #> comment is comment-based help: it
// contains at least one dot-tag line (.SYNOPSIS, .DESCRIPTION, ...).
func isHelpBlock(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<#") && psHelpTagRx.MatchString(text)
}

// mergeCopyrightTag updates a help block's .COPYRIGHT tag in place with the
// raw header text, appending the tag before the closing delimiter when the
// block has none. Running the merge again over its own output is a no-op.
func (h *powershellHandler) mergeCopyrightTag(block, headerText string) string {
	lines := strings.Split(block, "\n")
	headerLines := strings.Split(strings.TrimRight(headerText, "\n"), "\n")

	tagIdx := -1
	for i, line := range lines {
		if strings.EqualFold(strings.TrimSpace(line), ".COPYRIGHT") {
			tagIdx = i
			break
		}
	}

	if tagIdx >= 0 {
		indent := leadingWhitespace(lines[tagIdx])
		end := tagIdx + 1
		for end < len(lines) {
			trimmed := strings.TrimSpace(lines[end])
			if strings.HasPrefix(trimmed, ".") || strings.Contains(lines[end], "#>") {
				break
			}
			end++
		}
		merged := make([]string, 0, len(lines)+len(headerLines))
		merged = append(merged, lines[:tagIdx+1]...)
		for _, hl := range headerLines {
			merged = append(merged, indent+hl)
		}
		merged = append(merged, lines[end:]...)
		return strings.Join(merged, "\n")
	}

	// No .COPYRIGHT tag: insert one before the closing delimiter, indented
	// like the block's other tags.
	indent := ""
	closeIdx := len(lines) - 1
	for i, line := range lines {
		if tag := psHelpTagRx.FindString(line); tag != "" && indent == "" {
			indent = leadingWhitespace(line)
		}
		if strings.Contains(line, "#>") {
			closeIdx = i
		}
	}
	merged := make([]string, 0, len(lines)+len(headerLines)+1)
	merged = append(merged, lines[:closeIdx]...)
	merged = append(merged, indent+".COPYRIGHT")
	for _, hl := range headerLines {
		merged = append(merged, indent+hl)
	}
	merged = append(merged, lines[closeIdx:]...)
	return strings.Join(merged, "\n")
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
