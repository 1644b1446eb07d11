// FileScanner discovers the files a run will touch: walks the project
// root, keeps files whose extension has a registered handler, and applies
// include/exclude globs, gitignore rules, and build artifact exclusions.
package processing

import (
	"context"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/autoheader/internal/config"
	"github.com/standardbeagle/autoheader/internal/debug"
	"github.com/standardbeagle/autoheader/internal/handler"
)

// FileScanner handles directory traversal and file discovery
type FileScanner struct {
	config          *config.Config
	registry        *handler.Registry
	gitignoreParser *config.GitignoreParser

	// Pre-compiled glob patterns for fast matching
	compiledExclusions []string // Pattern strings (doublestar compiles internally)
	compiledInclusions []string // Pattern strings (doublestar compiles internally)

	// Extensions with a registered handler, for O(1) candidate checks
	handledExts map[string]bool
}

// NewFileScanner creates a scanner for the configured project root.
func NewFileScanner(cfg *config.Config, registry *handler.Registry) (*FileScanner, error) {
	fsn := &FileScanner{
		config:      cfg,
		registry:    registry,
		handledExts: make(map[string]bool),
	}

	for _, ext := range registry.Extensions() {
		fsn.handledExts[ext] = true
	}

	if cfg.Files.RespectGitignore {
		gp := config.NewGitignoreParser()
		if err := gp.LoadGitignore(cfg.Project.Root); err != nil {
			return nil, err
		}
		fsn.gitignoreParser = gp
	}

	fsn.compilePatterns()
	return fsn, nil
}

// compilePatterns assembles the final exclusion and inclusion pattern lists
func (fs *FileScanner) compilePatterns() {
	fs.compiledExclusions = make([]string, 0, len(fs.config.Files.Exclude))
	fs.compiledExclusions = append(fs.compiledExclusions, fs.config.Files.Exclude...)

	if fs.config.Files.DetectBuildArtifacts {
		detector := config.NewBuildArtifactDetector(fs.config.Project.Root)
		artifacts := detector.DetectOutputDirectories()
		if len(artifacts) > 0 {
			debug.LogScan("excluding %d detected build artifact patterns\n", len(artifacts))
			fs.compiledExclusions = append(fs.compiledExclusions, artifacts...)
		}
	}

	fs.compiledExclusions = config.DeduplicatePatterns(fs.compiledExclusions)

	fs.compiledInclusions = make([]string, 0, len(fs.config.Files.Include))
	fs.compiledInclusions = append(fs.compiledInclusions, fs.config.Files.Include...)
}

// Scan walks the project root and returns the absolute paths of all files
// eligible for header processing, sorted for deterministic runs.
func (fs *FileScanner) Scan(ctx context.Context) ([]string, error) {
	root := fs.config.Project.Root
	var paths []string

	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries, continue walking
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel := fs.relPath(path)

		if d.IsDir() {
			if path != root && fs.shouldSkipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		if fs.shouldProcessFile(rel, info) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	debug.LogScan("discovered %d eligible files under %s\n", len(paths), root)
	return paths, nil
}

// shouldProcessFile determines if a file should receive header processing.
// rel is the root-relative slash path.
func (fs *FileScanner) shouldProcessFile(rel string, info os.FileInfo) bool {
	if info.IsDir() {
		return false
	}

	// Restrict to extensions with a registered handler (no I/O needed)
	ext := strings.ToLower(filepath.Ext(rel))
	if !fs.handledExts[ext] {
		return false
	}

	// Backup files produced by a previous run are never candidates
	if strings.HasSuffix(rel, ".bak") {
		return false
	}

	if fs.shouldExcludeFast(rel) {
		return false
	}
	if !fs.shouldIncludeFast(rel) {
		return false
	}

	if fs.gitignoreParser != nil && fs.gitignoreParser.ShouldIgnore(rel, false) {
		return false
	}

	// Size limit checked last to avoid stat costs on filtered files
	if fs.config.Files.MaxFileSize > 0 && info.Size() > fs.config.Files.MaxFileSize {
		debug.LogScan("skipping oversized file %s (%d bytes)\n", rel, info.Size())
		return false
	}

	return true
}

// shouldSkipDir prunes excluded directories during the walk so large
// ignored trees are never descended into.
func (fs *FileScanner) shouldSkipDir(rel string) bool {
	base := filepath.Base(rel)

	for _, pattern := range fs.compiledExclusions {
		// Patterns like "**/node_modules/**" name a directory to prune
		dirPattern := strings.TrimSuffix(strings.TrimPrefix(pattern, "**/"), "/**")
		if !strings.Contains(dirPattern, "/") {
			if matched, _ := filepath.Match(dirPattern, base); matched {
				return true
			}
		}

		if matched, _ := doublestar.Match(pattern, rel+"/"); matched {
			return true
		}
	}

	if fs.gitignoreParser != nil && fs.gitignoreParser.ShouldIgnore(rel, true) {
		return true
	}

	return false
}

// shouldExcludeFast checks if a path matches any exclusion pattern
func (fs *FileScanner) shouldExcludeFast(path string) bool {
	for _, pattern := range fs.compiledExclusions {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			// Bad pattern shouldn't break scanning
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// shouldIncludeFast checks if a path matches any inclusion pattern
func (fs *FileScanner) shouldIncludeFast(path string) bool {
	// If no inclusion patterns, include everything
	if len(fs.compiledInclusions) == 0 {
		return true
	}

	for _, pattern := range fs.compiledInclusions {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// relPath converts an absolute path to a root-relative slash path for
// pattern and gitignore matching.
func (fs *FileScanner) relPath(path string) string {
	rel, err := filepath.Rel(fs.config.Project.Root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
