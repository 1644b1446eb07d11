package handler

import (
	"errors"
	"regexp"
	"strings"
)

var (
	yearRx  = regexp.MustCompile(`\d{4}`)
	spaceRx = regexp.MustCompile(`\s+`)
)

// yearPlaceholder substitutes for any 4-digit run during date-insensitive
// comparison, so headers differing only in copyright year compare equal.
const yearPlaceholder = "0000"

// normalize collapses whitespace runs to single spaces and lower-cases the
// text for fuzzy header comparison.
func normalize(text string) string {
	return strings.TrimSpace(spaceRx.ReplaceAllString(strings.ToLower(text), " "))
}

// sameModuloYear reports whether two already-normalized strings are equal
// after replacing every 4-digit run with a fixed placeholder.
func sameModuloYear(a, b string) bool {
	return yearRx.ReplaceAllString(a, yearPlaceholder) == yearRx.ReplaceAllString(b, yearPlaceholder)
}

// copyrightWords are matched as case-insensitive substrings when deciding
// whether a comment block carries an existing license notice.
var copyrightWords = []string{"copyright", "license", "licence"}

// codeLikePatterns reject header text that looks like executable source
// rather than prose. A header that would itself need commenting out is a
// configuration mistake, caught once at startup.
var codeLikePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^def\s`),
	regexp.MustCompile(`^class\s`),
	regexp.MustCompile(`^import\s`),
	regexp.MustCompile(`^from\s+\S+\s+import\b`),
	regexp.MustCompile(`^function\s`),
	regexp.MustCompile(`^#!`),
	regexp.MustCompile(`^(if|for|while)\s*\(`),
	regexp.MustCompile(`[{};]\s*$`),
}

// ValidateHeader checks the configured header text for basic sanity. It is
// called once when the registry is built; failures are fatal to
// initialization and never reported per-file.
func ValidateHeader(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("header text cannot be empty")
	}
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		for _, rx := range codeLikePatterns {
			if rx.MatchString(trimmed) {
				return errors.New("header text contains code-like syntax")
			}
		}
	}
	return nil
}

// compilePatterns compiles a handler's special-directive patterns once at
// construction. Patterns are matched against whitespace-trimmed lines and
// are anchored at line start by convention.
func compilePatterns(exprs []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}
