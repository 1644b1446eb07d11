package handler

import (
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// FormatHeader renders the configured header text with a language's comment
// markers. Single-line comment languages prefix every header line with the
// start token. Block comment languages render a one-line header as
// "start text end"; multi-line headers get the start token on its own line,
// each header line prefixed with " * ", and the end token on a closing line.
func FormatHeader(syntax types.CommentSyntax, headerText string) string {
	headerLines := strings.Split(strings.TrimRight(headerText, "\n"), "\n")

	if !syntax.Block() {
		formatted := make([]string, len(headerLines))
		for i, line := range headerLines {
			if line == "" {
				formatted[i] = syntax.Start
			} else {
				formatted[i] = syntax.Start + " " + line
			}
		}
		return strings.Join(formatted, "\n")
	}

	if len(headerLines) == 1 {
		return syntax.Start + " " + headerLines[0] + " " + syntax.End
	}

	formatted := make([]string, 0, len(headerLines)+2)
	formatted = append(formatted, syntax.Start)
	for _, line := range headerLines {
		formatted = append(formatted, " * "+line)
	}
	formatted = append(formatted, " "+syntax.End)
	return strings.Join(formatted, "\n")
}
