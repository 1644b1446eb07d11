package handler

import (
	"sort"
	"strings"

	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
)

// Registry maps file extensions to their language handlers. It is built
// once at startup, validates the configured header text, and is shared
// read-only across all files (and safely across goroutines).
type Registry struct {
	header    string
	byExt     map[string]Handler
	formatted map[string]string // extension -> rendered header
}

// NewRegistry validates the header text and constructs every language
// handler. A header that fails validation is fatal; no per-file work
// happens with a bad header.
func NewRegistry(headerText string) (*Registry, error) {
	if err := ValidateHeader(headerText); err != nil {
		return nil, autoerrors.NewValidationError(headerText, err)
	}

	handlers := []Handler{
		NewPython(headerText),
		NewBash(headerText),
		NewPowerShell(headerText),
		NewTerraform(headerText),
		NewTfvars(headerText),
		NewYAML(headerText),
		NewMarkdown(headerText),
	}

	r := &Registry{
		header:    headerText,
		byExt:     make(map[string]Handler),
		formatted: make(map[string]string),
	}
	for _, h := range handlers {
		rendered := FormatHeader(h.Syntax(), headerText)
		for _, ext := range h.Extensions() {
			r.byExt[ext] = h
			r.formatted[ext] = rendered
		}
	}
	return r, nil
}

// Header returns the configured raw header text.
func (r *Registry) Header() string { return r.header }

// HandlerFor returns the handler owning the given extension. The extension
// is matched case-insensitively, with or without the leading dot.
func (r *Registry) HandlerFor(ext string) (Handler, bool) {
	h, ok := r.byExt[normalizeExt(ext)]
	return h, ok
}

// Extensions returns every recognized extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Process runs the full segment-classify-assemble pipeline on one file's
// text. It returns the replacement text and whether the file needs to
// change; unrecognized extensions pass through untouched. Processing its
// own output a second time reports no change.
func (r *Registry) Process(ext, content string) (string, bool, error) {
	key := normalizeExt(ext)
	h, ok := r.byExt[key]
	if !ok {
		return content, false, nil
	}

	sections, err := h.Parse(content)
	if err != nil {
		return "", false, autoerrors.NewParseError(h.Name(), err)
	}

	out := h.Assemble(sections, r.formatted[key])
	return out, out != content, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
