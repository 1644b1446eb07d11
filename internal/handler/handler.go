// Package handler implements the per-language segmentation and re-assembly
// logic that inserts, updates, and repositions copyright headers while
// preserving each language's "must stay first" constructs (shebangs,
// encoding markers, future imports, YAML document markers, PowerShell
// requires/using/param blocks).
//
// Each language is a Handler: a stateless-after-construction policy object
// bundling the extensions it owns, its comment syntax, its compiled
// special-directive patterns, and the segment/assemble algorithms. Handlers
// are built once by a Registry and shared read-only across files.
package handler

import (
	"regexp"
	"strings"

	"github.com/standardbeagle/autoheader/internal/types"
)

// Handler is the per-language capability bundle. Parse segments raw file
// text into an ordered sequence of sections; Assemble re-serializes the
// sections in the language's canonical order with the rendered header
// inserted at the syntactically correct position.
type Handler interface {
	// Name is the language name, used in diagnostics.
	Name() string
	// Extensions lists the file extensions this handler owns, with the
	// leading dot, lower-case.
	Extensions() []string
	// Syntax is the language's comment syntax.
	Syntax() types.CommentSyntax
	// Parse segments the full file text into sections. It must not fail
	// for merely unusual input: unterminated blocks are closed at EOF and
	// the remainder is treated as ordinary content.
	Parse(content string) ([]types.Section, error)
	// Assemble emits the sections plus the rendered header in canonical
	// order. The output always ends with exactly one newline.
	Assemble(sections []types.Section, header string) string
}

// base carries the state shared by all language handlers: the raw and
// rendered header, the comment syntax, and the compiled directive patterns.
type base struct {
	name      string
	exts      []string
	syntax    types.CommentSyntax
	header    string // raw configured header text
	formatted string // header rendered with this language's comment syntax
	patterns  []*regexp.Regexp
}

func newBase(name string, exts []string, syntax types.CommentSyntax, header string, patternExprs []string) base {
	return base{
		name:      name,
		exts:      exts,
		syntax:    syntax,
		header:    header,
		formatted: FormatHeader(syntax, header),
		patterns:  compilePatterns(patternExprs),
	}
}

func (b *base) Name() string                { return b.name }
func (b *base) Extensions() []string        { return b.exts }
func (b *base) Syntax() types.CommentSyntax { return b.syntax }

// isSpecialLine reports whether the whitespace-trimmed line matches any of
// the handler's special-directive patterns.
func (b *base) isSpecialLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, rx := range b.patterns {
		if rx.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// isCopyrightText classifies a comment block as an existing license notice:
// either it equals the configured header modulo whitespace and 4-digit
// years, or it mentions copyright/license anywhere.
func (b *base) isCopyrightText(text string) bool {
	normalized := normalize(text)
	if sameModuloYear(normalized, normalize(b.header)) {
		return true
	}
	for _, word := range copyrightWords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}

// headerUpToDate reports whether an existing comment block already renders
// the configured header, ignoring 4-digit year differences. Such a block is
// kept byte-for-byte instead of being re-rendered, so a file whose header
// differs only in year is left unmodified.
func (b *base) headerUpToDate(text string) bool {
	return sameModuloYear(normalize(text), normalize(b.formatted))
}

// splitLines splits file text into lines, dropping the final empty element
// produced by a trailing newline. The assembler re-adds exactly one
// trailing newline on output.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// captureLineComments merges consecutive lines starting with the comment
// prefix into one block. Returns the block lines and the index of the first
// line past the block.
func captureLineComments(lines []string, start int, prefix string) ([]string, int) {
	block := []string{strings.TrimRight(lines[start], " \t")}
	i := start + 1
	for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), prefix) {
		block = append(block, strings.TrimRight(lines[i], " \t"))
		i++
	}
	return block, i
}

// captureDelimited captures from the opening line through the first
// subsequent line containing the end token, inclusive. An unterminated
// block is closed implicitly at EOF.
func captureDelimited(lines []string, start int, end string) ([]string, int) {
	block := []string{strings.TrimRight(lines[start], " \t")}
	i := start + 1
	for i < len(lines) {
		block = append(block, strings.TrimRight(lines[i], " \t"))
		if strings.Contains(lines[i], end) {
			return block, i + 1
		}
		i++
	}
	return block, i
}

// captureBalanced captures lines starting at start while the running counts
// of unmatched parentheses and braces are non-zero. EOF terminates an
// unbalanced block.
func captureBalanced(lines []string, start int) ([]string, int) {
	depthParen := strings.Count(lines[start], "(") - strings.Count(lines[start], ")")
	depthBrace := strings.Count(lines[start], "{") - strings.Count(lines[start], "}")
	block := []string{strings.TrimRight(lines[start], " \t")}
	i := start + 1
	for i < len(lines) && (depthParen > 0 || depthBrace > 0) {
		depthParen += strings.Count(lines[i], "(") - strings.Count(lines[i], ")")
		depthBrace += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		block = append(block, strings.TrimRight(lines[i], " \t"))
		i++
	}
	return block, i
}

// bodyFrom captures everything from start to EOF verbatim, trimming
// trailing blank lines. The body is kept as a single section so interior
// spacing survives re-assembly untouched.
func bodyFrom(lines []string, start int) string {
	end := len(lines)
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// appendGroup appends a group of section texts to the output, separated
// from the previous group by exactly one blank line. Empty groups emit
// nothing. Elements within a group are emitted on consecutive lines.
func appendGroup(parts []string, group []string) []string {
	if len(group) == 0 {
		return parts
	}
	if len(parts) > 0 {
		parts = append(parts, "")
	}
	return append(parts, group...)
}

// finish joins the output parts and guarantees exactly one trailing newline.
func finish(parts []string) string {
	return strings.Join(parts, "\n") + "\n"
}
