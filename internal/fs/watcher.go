package fs

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce coalesces bursts of events (e.g. an extracting archive) into
// one refresh per directory.
const watchDebounce = 150 * time.Millisecond

// Watcher reports directories whose contents changed on disk.
type Watcher struct {
	fsw     *fsnotify.Watcher
	log     zerolog.Logger
	changes chan string

	mu      sync.Mutex
	watched map[string]struct{}
	pending map[string]*time.Timer
	closed  bool
}

// NewWatcher starts a change watcher. Call SetPaths to choose directories.
func NewWatcher(log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		log:     log.With().Str("component", "watcher").Logger(),
		changes: make(chan string, 16),
		watched: make(map[string]struct{}),
		pending: make(map[string]*time.Timer),
	}
	go w.run()
	return w, nil
}

// Changes delivers the path of every directory that changed.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// SetPaths replaces the watched set with paths.
func (w *Watcher) SetPaths(paths ...string) {
	want := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p != "" {
			want[filepath.Clean(p)] = struct{}{}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	for p := range w.watched {
		if _, ok := want[p]; ok {
			continue
		}
		if err := w.fsw.Remove(p); err != nil {
			w.log.Debug().Err(err).Str("path", p).Msg("unwatch failed")
		}
		delete(w.watched, p)
	}
	for p := range want {
		if _, ok := w.watched[p]; ok {
			continue
		}
		if err := w.fsw.Add(p); err != nil {
			w.log.Warn().Err(err).Str("path", p).Msg("watch failed")
			continue
		}
		w.watched[p] = struct{}{}
	}
}

// Close stops the watcher. Changes is closed once the event loop exits.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for p, t := range w.pending {
		t.Stop()
		delete(w.pending, p)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		close(w.changes)
		w.mu.Unlock()
	}()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.schedule(w.directoryOf(ev.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) directoryOf(name string) string {
	name = filepath.Clean(name)
	w.mu.Lock()
	_, isWatched := w.watched[name]
	w.mu.Unlock()
	if isWatched {
		return name
	}
	return filepath.Dir(name)
}

func (w *Watcher) schedule(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[dir]; ok {
		t.Reset(watchDebounce)
		return
	}
	w.pending[dir] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.pending, dir)
		if w.closed {
			return
		}
		select {
		case w.changes <- dir:
		default:
			w.log.Debug().Str("path", dir).Msg("change dropped, consumer busy")
		}
	})
}
