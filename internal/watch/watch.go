// Package watch triggers rebuilds when token source files change.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces editor save bursts into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches the directories holding a set of source files and
// calls OnChange once per burst of relevant events.
type Watcher struct {
	files    []string
	debounce time.Duration
	onChange func(changed []string)
	logger   *zap.Logger
}

// New creates a watcher for files. Directories are watched rather than
// files so that editors which replace files on save keep triggering.
func New(files []string, debounce time.Duration, onChange func(changed []string), logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs := make([]string, 0, len(files))
	for _, f := range files {
		if a, err := filepath.Abs(f); err == nil {
			abs = append(abs, a)
		}
	}
	return &Watcher{files: abs, debounce: debounce, onChange: onChange, logger: logger}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	dirs := make(map[string]bool)
	for _, f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := fsw.Add(d); err != nil {
			return err
		}
		w.logger.Debug("watching directory", zap.String("path", d))
	}

	deb := newDebouncer(w.debounce, w.onChange)
	defer deb.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("source changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			deb.add(ev.Name)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return slices.Contains(w.files, name)
}

// debouncer collects paths and flushes them once no new path has arrived
// for the window.
type debouncer struct {
	window  time.Duration
	onFlush func([]string)

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
	stopped bool
}

func newDebouncer(window time.Duration, onFlush func([]string)) *debouncer {
	return &debouncer{window: window, onFlush: onFlush, pending: make(map[string]bool)}
}

func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending[path] = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *debouncer) flush() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]bool)
	d.mu.Unlock()

	slices.Sort(paths)
	d.onFlush(paths)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
