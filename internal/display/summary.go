package display

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/standardbeagle/autoheader/internal/processing"
)

// SummaryFormatter collects per-file results during a run and renders the
// closing summary.
type SummaryFormatter struct {
	options FormatterOptions

	mu       sync.Mutex
	modified []string
	failed   []string
}

// FormatterOptions controls summary output
type FormatterOptions struct {
	Root    string // paths are shown relative to this directory
	Verbose bool   // list every modified file, not just counts
	DryRun  bool   // phrase output as "would modify"
}

// NewSummaryFormatter creates a new summary formatter
func NewSummaryFormatter(options FormatterOptions) *SummaryFormatter {
	return &SummaryFormatter{options: options}
}

// Record accumulates one file result. Safe for concurrent use; the
// processor invokes it from its workers.
func (sf *SummaryFormatter) Record(res processing.Result) {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	rel := sf.relPath(res.Path)
	switch {
	case res.Err != nil:
		sf.failed = append(sf.failed, fmt.Sprintf("%s: %v", rel, res.Err))
	case res.Changed:
		sf.modified = append(sf.modified, rel)
	}
}

// Format renders the run summary from the collected results and stats.
func (sf *SummaryFormatter) Format(stats *processing.Stats) string {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	var sb strings.Builder

	verb := "modified"
	if sf.options.DryRun {
		verb = "would modify"
	}

	if sf.options.Verbose || sf.options.DryRun {
		sorted := append([]string(nil), sf.modified...)
		sort.Strings(sorted)
		for _, path := range sorted {
			fmt.Fprintf(&sb, "  %s %s\n", verb, path)
		}
	}

	for _, failure := range sf.failed {
		fmt.Fprintf(&sb, "  error: %s\n", failure)
	}

	fmt.Fprintf(&sb, "%d files scanned, %d %s, %d unchanged", stats.Scanned, stats.Modified, verb, stats.Unchanged)
	if stats.Failed > 0 {
		fmt.Fprintf(&sb, ", %d failed", stats.Failed)
	}
	sb.WriteString("\n")

	return sb.String()
}

// FormatCheck renders the summary for check mode, listing files that are
// missing the current header.
func (sf *SummaryFormatter) FormatCheck(stats *processing.Stats) string {
	sf.mu.Lock()
	defer sf.mu.Unlock()

	var sb strings.Builder

	sorted := append([]string(nil), sf.modified...)
	sort.Strings(sorted)
	for _, path := range sorted {
		fmt.Fprintf(&sb, "  missing or outdated header: %s\n", path)
	}
	for _, failure := range sf.failed {
		fmt.Fprintf(&sb, "  error: %s\n", failure)
	}

	if len(sf.modified) == 0 && stats.Failed == 0 {
		fmt.Fprintf(&sb, "all %d files carry the current header\n", stats.Processed)
	} else {
		fmt.Fprintf(&sb, "%d of %d files need a header update\n", stats.Modified, stats.Scanned)
	}

	return sb.String()
}

// HasFindings reports whether any file needs modification or failed,
// used by check mode to pick the exit code.
func (sf *SummaryFormatter) HasFindings() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return len(sf.modified) > 0 || len(sf.failed) > 0
}

func (sf *SummaryFormatter) relPath(path string) string {
	if sf.options.Root == "" {
		return path
	}
	rel, err := filepath.Rel(sf.options.Root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
