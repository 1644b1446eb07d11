package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreParser handles parsing and matching .gitignore files so that
// header processing skips whatever the repository itself ignores.
type GitignoreParser struct {
	patterns []GitignorePattern
}

type GitignorePattern struct {
	Pattern   string
	Negate    bool
	Directory bool
	Absolute  bool
}

// NewGitignoreParser creates a new gitignore parser
func NewGitignoreParser() *GitignoreParser {
	return &GitignoreParser{
		patterns: make([]GitignorePattern, 0),
	}
}

// LoadGitignore loads patterns from rootPath/.gitignore. A missing file is
// not an error.
func (gp *GitignoreParser) LoadGitignore(rootPath string) error {
	gitignorePath := filepath.Join(rootPath, ".gitignore")

	file, err := os.Open(gitignorePath)
	if err != nil {
		return nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gp.AddPattern(line)
	}

	return scanner.Err()
}

// AddPattern adds a single gitignore pattern line
func (gp *GitignoreParser) AddPattern(line string) {
	pattern := GitignorePattern{}

	if strings.HasPrefix(line, "!") {
		pattern.Negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		pattern.Directory = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		pattern.Absolute = true
		line = line[1:]
	}

	pattern.Pattern = line
	gp.patterns = append(gp.patterns, pattern)
}

// ShouldIgnore reports whether the root-relative path is ignored. Later
// patterns win, so negations re-include previously ignored paths.
func (gp *GitignoreParser) ShouldIgnore(path string, isDir bool) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for _, pattern := range gp.patterns {
		if gp.matchesPattern(pattern, path, isDir) {
			ignored = !pattern.Negate
		}
	}

	return ignored
}

func (gp *GitignoreParser) matchesPattern(pattern GitignorePattern, path string, isDir bool) bool {
	// Directory-only patterns match the directory itself and everything
	// beneath it.
	if pattern.Directory {
		if gp.matchGlob(pattern, path) && isDir {
			return true
		}
		return gp.matchesParent(pattern, path)
	}

	if gp.matchGlob(pattern, path) {
		return true
	}

	// Files inside an ignored directory are ignored too.
	return gp.matchesParent(pattern, path)
}

func (gp *GitignoreParser) matchesParent(pattern GitignorePattern, path string) bool {
	for parent := dirOf(path); parent != ""; parent = dirOf(parent) {
		if gp.matchGlob(pattern, parent) {
			return true
		}
	}
	return false
}

// matchGlob matches one pattern against a path. Absolute patterns anchor
// at the root; relative patterns match against any path suffix, mirroring
// how git resolves unanchored patterns in any directory.
func (gp *GitignoreParser) matchGlob(pattern GitignorePattern, path string) bool {
	if path == "" {
		return false
	}

	if pattern.Absolute || strings.Contains(pattern.Pattern, "/") {
		matched, err := doublestar.Match(pattern.Pattern, path)
		return err == nil && matched
	}

	parts := strings.Split(path, "/")
	for i := range parts {
		suffix := strings.Join(parts[i:], "/")
		if matched, err := doublestar.Match(pattern.Pattern, suffix); err == nil && matched {
			return true
		}
	}
	return false
}

func dirOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// ExclusionPatterns converts the ignore list to doublestar exclusion globs
// for the file scanner. Negation patterns are skipped; the scanner has no
// re-include mechanism.
func (gp *GitignoreParser) ExclusionPatterns() []string {
	var exclusions []string

	for _, pattern := range gp.patterns {
		if pattern.Negate {
			continue
		}

		p := pattern.Pattern
		switch {
		case pattern.Directory && pattern.Absolute:
			exclusions = append(exclusions, p+"/**")
		case pattern.Directory:
			exclusions = append(exclusions, "**/"+p+"/**")
		case pattern.Absolute:
			exclusions = append(exclusions, p)
		default:
			exclusions = append(exclusions, "**/"+p)
		}
	}

	return exclusions
}
