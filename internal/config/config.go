package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config is the merged configuration for one autoheader run. It is built
// once at startup from .autoheader.kdl plus CLI flag overrides and never
// mutated afterwards.
type Config struct {
	Version int
	Project Project
	Header  Header
	Files   Files
	Run     Run
}

type Project struct {
	Root string
	Name string
}

// Header configures the copyright text to maintain. Exactly one of Text or
// File is required; File wins when both are set and names a file whose
// contents become the header text.
type Header struct {
	Text string
	File string
}

// Files controls which files the scanner considers.
type Files struct {
	Include              []string // doublestar globs; empty = everything
	Exclude              []string // doublestar globs
	RespectGitignore     bool     // honor .gitignore patterns under the root
	DetectBuildArtifacts bool     // auto-exclude detected build output dirs
	MaxFileSize          int64    // files larger than this are skipped
}

// Run controls processing behavior.
type Run struct {
	Backup          bool // write a .bak copy before modifying a file
	DryRun          bool // report changes without writing
	Workers         int  // parallel file workers; 0 = NumCPU
	Watch           bool // keep running and re-process changed files
	WatchDebounceMs int  // debounce for file change events
}

// Default returns the built-in configuration, rooted at the current
// working directory.
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Config{
		Version: 1,
		Project: Project{
			Root: cwd,
		},
		Files: Files{
			Include: []string{},
			Exclude: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/__pycache__/**",
				"**/.terraform/**",
				"**/venv/**",
				"**/.venv/**",
			},
			RespectGitignore:     true,
			DetectBuildArtifacts: true,
			MaxFileSize:          10 * 1024 * 1024,
		},
		Run: Run{
			Backup:          true,
			Workers:         runtime.NumCPU(),
			WatchDebounceMs: 300,
		},
	}
}

// Load reads configuration for the given project directory: the global
// ~/.autoheader.kdl first (when present), then the project's
// .autoheader.kdl layered over it. A missing config file is not an error;
// defaults apply.
func Load(searchDir string) (*Config, error) {
	if searchDir == "" {
		searchDir = "."
	}

	var base *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			base = globalCfg
		}
	}

	project, err := LoadKDL(searchDir)
	if err != nil {
		return nil, err
	}

	switch {
	case base != nil && project != nil:
		return merge(base, project), nil
	case project != nil:
		return project, nil
	case base != nil:
		absRoot, err := filepath.Abs(searchDir)
		if err == nil {
			base.Project.Root = absRoot
		} else {
			base.Project.Root = searchDir
		}
		return base, nil
	}

	cfg := Default()
	absRoot, err := filepath.Abs(searchDir)
	if err == nil {
		cfg.Project.Root = absRoot
	}
	return cfg, nil
}

// merge layers a project config over a global base. Scalar project values
// win; base exclusions are preserved so a global deny-list keeps working.
func merge(base, project *Config) *Config {
	merged := *project

	if merged.Header.Text == "" && merged.Header.File == "" {
		merged.Header = base.Header
	}
	if merged.Project.Name == "" {
		merged.Project.Name = base.Project.Name
	}

	seen := make(map[string]bool, len(merged.Files.Exclude))
	for _, p := range merged.Files.Exclude {
		seen[p] = true
	}
	for _, p := range base.Files.Exclude {
		if !seen[p] {
			merged.Files.Exclude = append(merged.Files.Exclude, p)
		}
	}

	return &merged
}

// ResolveHeaderText returns the header text, reading Header.File relative
// to the project root when configured.
func (c *Config) ResolveHeaderText() (string, error) {
	if c.Header.File != "" {
		path := c.Header.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Project.Root, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return c.Header.Text, nil
}
