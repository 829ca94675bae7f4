// Copyright © 2026 The Quill authors

package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("quill.watch")

// Change is a settled modification to one Quill file.
type Change struct {
	Path    string
	Removed bool
}

// Watcher reports changes to Quill files under a set of directories.
// Bursts of events are collapsed: the callback runs once the tree has been
// quiet for the debounce interval, with the latest state of each path.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	filters   map[string]*Filter
	excludes  []string
	onChange  func([]Change)

	callbackMu sync.Mutex

	mu      sync.Mutex
	pending map[string]bool // path -> removed
	timer   *time.Timer
	done    chan struct{}
}

// NewWatcher creates a watcher. onChange must not be nil.
func NewWatcher(debounce time.Duration, excludes []string, onChange func([]Change)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watcher: nil change callback")
	}
	if _, err := CompileExcludes(excludes); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		filters:   make(map[string]*Filter),
		excludes:  excludes,
		onChange:  onChange,
		pending:   make(map[string]bool),
		done:      make(chan struct{}),
	}, nil
}

// Watch adds every directory under each root and starts delivering events.
// It must be called once.
func (w *Watcher) Watch(roots []string) error {
	for _, root := range roots {
		filter, err := NewFilter(root, w.excludes)
		if err != nil {
			return err
		}
		w.filters[root] = filter
		if err := w.addTree(root, filter); err != nil {
			return err
		}
	}
	go w.run()
	return nil
}

// Close stops the watcher. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	err := w.fsWatcher.Close()
	<-w.done
	return err
}

func (w *Watcher) addTree(root string, filter *Filter) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if filter.SkipDir(path) {
			return filepath.SkipDir
		}
		watchLog.Debugf("watching %s", path)
		return w.fsWatcher.Add(path)
	})
}

// filterFor returns the filter of the root containing path.
func (w *Watcher) filterFor(path string) *Filter {
	var best string
	for root := range w.filters {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return w.filters[best]
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			watchLog.Errorf("watch error: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	filter := w.filterFor(event.Name)
	if filter == nil {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if filter.SkipDir(event.Name) {
				return
			}
			if err := w.addTree(event.Name, filter); err != nil {
				watchLog.Warningf("failed to watch new directory %s: %s", event.Name, err)
				return
			}
			w.enqueueTree(event.Name, filter)
			return
		}
	}
	if filter.SkipFile(event.Name) {
		return
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.schedule(event.Name, true)
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		w.schedule(event.Name, false)
	}
}

// enqueueTree schedules files that appeared inside a new directory before
// it was added to the watch list.
func (w *Watcher) enqueueTree(dir string, filter *Filter) {
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if filter.SkipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !filter.SkipFile(path) {
			w.schedule(path, false)
		}
		return nil
	})
}

func (w *Watcher) schedule(path string, removed bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = removed
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	changes := make([]Change, 0, len(w.pending))
	for path, removed := range w.pending {
		changes = append(changes, Change{Path: path, Removed: removed})
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(changes) == 0 {
		return
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(changes)
}
