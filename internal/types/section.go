package types

// SectionKind classifies a contiguous chunk of file text produced by
// segmentation.
type SectionKind uint8

const (
	// SectionContent is ordinary file content with no header significance.
	SectionContent SectionKind = iota
	// SectionDirective is a line or block that must keep a fixed position
	// regardless of header placement (shebang, encoding marker, shell
	// option, PowerShell requires/using/param, YAML document marker).
	SectionDirective
	// SectionComment is a contiguous comment block. It may carry an
	// existing copyright/license notice.
	SectionComment
)

func (k SectionKind) String() string {
	switch k {
	case SectionContent:
		return "content"
	case SectionDirective:
		return "directive"
	case SectionComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Section is one segment of a parsed file. Sections are created once during
// segmentation and consumed once by the matching assembler; they are never
// shared across files.
type Section struct {
	// Content is the exact text of the chunk without a trailing newline.
	// Multi-line sections join their lines with "\n".
	Content string
	// Kind classifies the section.
	Kind SectionKind
	// Copyright marks a comment section classified as carrying
	// copyright/license information. Only meaningful for SectionComment.
	Copyright bool
}

// Directive returns a special-directive section for the given text.
func Directive(content string) Section {
	return Section{Content: content, Kind: SectionDirective}
}

// Comment returns a comment-block section; copyright marks it as an
// existing license notice eligible for replacement.
func Comment(content string, copyright bool) Section {
	return Section{Content: content, Kind: SectionComment, Copyright: copyright}
}

// NewContent returns an ordinary-content section.
func NewContent(content string) Section {
	return Section{Content: content, Kind: SectionContent}
}

// CommentSyntax describes how a language spells comments. End is empty for
// single-line comment languages; non-empty Start/End pairs denote block
// comments (PowerShell <# #>, Terraform /* */, Markdown <!-- -->).
type CommentSyntax struct {
	Start string
	End   string
}

// Block reports whether the syntax uses block comment delimiters.
func (s CommentSyntax) Block() bool { return s.End != "" }
