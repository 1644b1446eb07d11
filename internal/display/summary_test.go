package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/standardbeagle/autoheader/internal/processing"
)

func TestFormat_Counts(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj"})
	sf.Record(processing.Result{Path: "/proj/app.py", Changed: true})
	sf.Record(processing.Result{Path: "/proj/run.sh", Changed: false})

	out := sf.Format(&processing.Stats{Scanned: 2, Processed: 2, Modified: 1, Unchanged: 1})

	if !strings.Contains(out, "2 files scanned, 1 modified, 1 unchanged") {
		t.Errorf("unexpected summary line: %q", out)
	}
	if strings.Contains(out, "app.py") {
		t.Errorf("non-verbose output should not list files: %q", out)
	}
}

func TestFormat_VerboseListsFiles(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj", Verbose: true})
	sf.Record(processing.Result{Path: "/proj/b.py", Changed: true})
	sf.Record(processing.Result{Path: "/proj/a.py", Changed: true})

	out := sf.Format(&processing.Stats{Scanned: 2, Processed: 2, Modified: 2})

	aIdx := strings.Index(out, "a.py")
	bIdx := strings.Index(out, "b.py")
	if aIdx < 0 || bIdx < 0 {
		t.Fatalf("verbose output should list modified files: %q", out)
	}
	if aIdx > bIdx {
		t.Errorf("file listing should be sorted: %q", out)
	}
}

func TestFormat_DryRunPhrasing(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj", DryRun: true})
	sf.Record(processing.Result{Path: "/proj/app.py", Changed: true})

	out := sf.Format(&processing.Stats{Scanned: 1, Processed: 1, Modified: 1})

	if !strings.Contains(out, "would modify app.py") {
		t.Errorf("dry-run output should use conditional phrasing: %q", out)
	}
	if !strings.Contains(out, "1 would modify") {
		t.Errorf("dry-run summary line missing: %q", out)
	}
}

func TestFormat_Failures(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj"})
	sf.Record(processing.Result{Path: "/proj/broken.ps1", Err: errors.New("unterminated comment block")})

	out := sf.Format(&processing.Stats{Scanned: 1, Failed: 1})

	if !strings.Contains(out, "error: broken.ps1: unterminated comment block") {
		t.Errorf("failures should be listed: %q", out)
	}
	if !strings.Contains(out, "1 failed") {
		t.Errorf("failed count missing: %q", out)
	}
}

func TestFormatCheck_Clean(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj"})
	sf.Record(processing.Result{Path: "/proj/app.py", Changed: false})

	out := sf.FormatCheck(&processing.Stats{Scanned: 1, Processed: 1, Unchanged: 1})

	if !strings.Contains(out, "all 1 files carry the current header") {
		t.Errorf("clean check output wrong: %q", out)
	}
	if sf.HasFindings() {
		t.Error("clean run should have no findings")
	}
}

func TestFormatCheck_Findings(t *testing.T) {
	sf := NewSummaryFormatter(FormatterOptions{Root: "/proj"})
	sf.Record(processing.Result{Path: "/proj/app.py", Changed: true})

	out := sf.FormatCheck(&processing.Stats{Scanned: 2, Processed: 2, Modified: 1, Unchanged: 1})

	if !strings.Contains(out, "missing or outdated header: app.py") {
		t.Errorf("check output should name the file: %q", out)
	}
	if !strings.Contains(out, "1 of 2 files need a header update") {
		t.Errorf("check summary line wrong: %q", out)
	}
	if !sf.HasFindings() {
		t.Error("findings expected")
	}
}
