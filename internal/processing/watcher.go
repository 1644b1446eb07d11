package processing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/autoheader/internal/config"
	"github.com/standardbeagle/autoheader/internal/debug"
)

// Watcher monitors the project tree and re-processes changed files so new
// and edited sources pick up the header without re-running the tool.
type Watcher struct {
	watcher   *fsnotify.Watcher
	config    *config.Config
	processor *Processor
	debouncer *eventDebouncer
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewWatcher creates a watcher that feeds changed files to the processor.
func NewWatcher(cfg *config.Config, processor *Processor) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		watcher:   watcher,
		config:    cfg,
		processor: processor,
		ctx:       ctx,
		cancel:    cancel,
	}
	w.debouncer = newEventDebouncer(
		time.Duration(cfg.Run.WatchDebounceMs)*time.Millisecond,
		w.processBatch,
	)

	return w, nil
}

// Start adds watches for the project tree and begins processing events.
func (w *Watcher) Start() error {
	root := w.config.Project.Root
	debug.LogWatch("starting watcher for %s\n", root)

	if err := w.addWatches(root); err != nil {
		return fmt.Errorf("failed to add watches starting from %s: %w", root, err)
	}

	w.wg.Add(1)
	go w.processEvents()

	return nil
}

// Stop stops the watcher and waits for in-flight event handling.
func (w *Watcher) Stop() error {
	w.cancel()

	if err := w.watcher.Close(); err != nil {
		debug.LogWatch("error closing fsnotify watcher: %v\n", err)
	}

	w.debouncer.stop()
	w.wg.Wait()

	debug.LogWatch("watcher stopped\n")
	return nil
}

// addWatches recursively adds watches to all relevant directories
func (w *Watcher) addWatches(root string) error {
	// Track visited directories to prevent loops through symlink cycles
	visitedDirs := make(map[string]bool)
	scanner := w.processor.Scanner()

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if !info.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visitedDirs[realPath] {
			return filepath.SkipDir
		}
		visitedDirs[realPath] = true

		if path != root && scanner.shouldSkipDir(scanner.relPath(path)) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			debug.LogWatch("failed to add watch for %s: %v\n", path, err)
		}
		return nil
	})
}

// processEvents consumes file system events from fsnotify
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogWatch("watcher error: %v\n", err)
		}
	}
}

// handleEvent filters one event down to the files the scanner would accept
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	path := event.Name
	info, err := os.Stat(path)
	if err != nil {
		return // removed before we could look at it
	}

	if info.IsDir() {
		// New directories need their own watch to see files created inside
		if event.Op&fsnotify.Create != 0 {
			scanner := w.processor.Scanner()
			if !scanner.shouldSkipDir(scanner.relPath(path)) {
				if err := w.watcher.Add(path); err != nil {
					debug.LogWatch("failed to watch new directory %s: %v\n", path, err)
				}
			}
		}
		return
	}

	scanner := w.processor.Scanner()
	if !scanner.shouldProcessFile(scanner.relPath(path), info) {
		return
	}

	debug.LogWatch("queueing %s\n", path)
	w.debouncer.addEvent(path)
}

// processBatch runs header processing over a debounced set of paths.
// Files the tool itself just rewrote hash equal and fall out as unchanged,
// so write events echoed back by fsnotify do not loop.
func (w *Watcher) processBatch(paths []string) {
	for _, path := range paths {
		if w.ctx.Err() != nil {
			return
		}
		res := w.processor.ProcessFile(path)
		if w.processor.OnResult != nil {
			w.processor.OnResult(res)
		}
	}
}

// eventDebouncer batches file events to avoid processing editors' partial
// write sequences one by one
type eventDebouncer struct {
	events   map[string]bool
	mutex    sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	flushFn  func([]string)
	stopped  bool
}

func newEventDebouncer(debounce time.Duration, flushFn func([]string)) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]bool),
		debounce: debounce,
		flushFn:  flushFn,
	}
}

// addEvent records a path and restarts the debounce window
func (d *eventDebouncer) addEvent(path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}

	d.events[path] = true

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.flush)
}

// stop prevents further flushes. Events pending at shutdown are dropped;
// the next full run picks them up.
func (d *eventDebouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// flush hands all accumulated paths to the processor
func (d *eventDebouncer) flush() {
	d.mutex.Lock()
	if d.stopped {
		d.mutex.Unlock()
		return
	}
	paths := make([]string, 0, len(d.events))
	for path := range d.events {
		paths = append(paths, path)
	}
	d.events = make(map[string]bool)
	d.mutex.Unlock()

	if len(paths) == 0 {
		return
	}

	debug.LogWatch("processing %d debounced events\n", len(paths))
	d.flushFn(paths)
}
