package processing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/autoheader/internal/config"
	"github.com/standardbeagle/autoheader/internal/debug"
	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
	"github.com/standardbeagle/autoheader/internal/handler"
)

// Result records the outcome of processing a single file.
type Result struct {
	Path    string
	Changed bool // header inserted or replaced
	Err     error
}

// Stats aggregates the outcome of a run.
type Stats struct {
	Scanned   int // eligible files discovered
	Processed int // files parsed and reassembled
	Modified  int // files whose content changed
	Unchanged int // files already carrying the current header
	Failed    int // files that could not be processed
}

// Processor runs header insertion across a project tree.
type Processor struct {
	config   *config.Config
	registry *handler.Registry
	scanner  *FileScanner

	// OnResult, when set, is called for every processed file. Calls may
	// come from multiple workers concurrently.
	OnResult func(Result)
}

// NewProcessor builds a processor and its file scanner from the config.
func NewProcessor(cfg *config.Config, registry *handler.Registry) (*Processor, error) {
	scanner, err := NewFileScanner(cfg, registry)
	if err != nil {
		return nil, err
	}

	return &Processor{
		config:   cfg,
		registry: registry,
		scanner:  scanner,
	}, nil
}

// Scanner exposes the underlying file scanner, used by watch mode to
// filter change events with the same rules as a full run.
func (p *Processor) Scanner() *FileScanner {
	return p.scanner
}

// Run scans the project and processes every eligible file with the
// configured number of parallel workers. Per-file failures are recorded
// in the stats and returned as a MultiError; they do not abort the run.
func (p *Processor) Run(ctx context.Context) (*Stats, error) {
	paths, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Scanned: len(paths)}
	if len(paths) == 0 {
		return stats, nil
	}

	var mu sync.Mutex
	var failures []error

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Run.Workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			res := p.ProcessFile(path)
			if p.OnResult != nil {
				p.OnResult(res)
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case res.Err != nil:
				stats.Failed++
				failures = append(failures, res.Err)
			case res.Changed:
				stats.Processed++
				stats.Modified++
			default:
				stats.Processed++
				stats.Unchanged++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	if len(failures) > 0 {
		return stats, autoerrors.NewMultiError(failures)
	}
	return stats, nil
}

// ProcessFile reads, reassembles, and (unless dry-run) rewrites one file.
func (p *Processor) ProcessFile(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: autoerrors.NewFileError("read", path, err)}
	}

	ext := filepath.Ext(path)
	out, _, err := p.registry.Process(ext, string(data))
	if err != nil {
		var perr *autoerrors.ParseError
		if !errors.As(err, &perr) {
			perr = autoerrors.NewParseError(ext, err)
		}
		return Result{Path: path, Err: perr.WithFile(path)}
	}

	// Hash comparison decides modification; cheaper than byte comparison
	// on large bodies and reused by watch mode to suppress echo events.
	if xxhash.Sum64(data) == xxhash.Sum64String(out) {
		return Result{Path: path, Changed: false}
	}

	if p.config.Run.DryRun {
		debug.LogProcess("dry-run: would modify %s\n", path)
		return Result{Path: path, Changed: true}
	}

	if err := p.writeFile(path, data, []byte(out)); err != nil {
		return Result{Path: path, Err: err}
	}

	debug.LogProcess("modified %s\n", path)
	return Result{Path: path, Changed: true}
}

// writeFile replaces path's content atomically: write a sibling temp file,
// then rename over the original. A .bak copy of the original is written
// first when backups are enabled.
func (p *Processor) writeFile(path string, original, updated []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return autoerrors.NewFileError("stat", path, err)
	}
	mode := info.Mode().Perm()

	if p.config.Run.Backup {
		if err := os.WriteFile(path+".bak", original, mode); err != nil {
			return autoerrors.NewFileError("backup", path+".bak", err)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return autoerrors.NewFileError("write", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(updated); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return autoerrors.NewFileError("write", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return autoerrors.NewFileError("write", path, err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return autoerrors.NewFileError("write", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return autoerrors.NewFileError("write", path, fmt.Errorf("atomic rename failed: %w", err))
	}

	return nil
}
