// Package watch reports edits to a project input so it can be decompiled
// again. It watches either a packed backup file or the six section files
// of a folder.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/asperge/internal/section"
)

// DefaultDebounce is how long the input must stay quiet before a Change
// is reported.
const DefaultDebounce = 150 * time.Millisecond

// Change lists the input files touched during one quiet window.
type Change struct {
	Files []string // absolute paths, sorted
}

// Watcher monitors a project input using fsnotify.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Changes  <-chan Change // read-only external channel

	changes chan Change
	done    chan struct{}
	dir     string
	match   func(base string) bool
	watcher *fsnotify.Watcher
}

// NewWatcher prepares a watcher for path, which must be an existing
// backup file or section folder.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("accessing %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Path:     abs,
		Debounce: DefaultDebounce,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}
	if info.IsDir() {
		w.dir, w.match = abs, section.IsKnown
	} else {
		// Editors often replace a file by rename, so watch its directory.
		name := filepath.Base(abs)
		w.dir = filepath.Dir(abs)
		w.match = func(base string) bool { return base == name }
	}
	return w, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]bool)
	var last time.Time
	ticker := time.NewTicker(w.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				w.flush(pending)
				return
			}
			if !w.match(filepath.Base(event.Name)) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = true
				last = time.Now()
			}

		case <-ticker.C:
			if len(pending) > 0 && time.Since(last) >= w.Debounce {
				w.flush(pending)
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal; the next event retries.
		}
	}
}

func (w *Watcher) flush(pending map[string]bool) {
	if len(pending) == 0 {
		return
	}
	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
		delete(pending, f)
	}
	sort.Strings(files)
	w.changes <- Change{Files: files}
}
