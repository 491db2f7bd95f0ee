package game

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the layered config files and reports every file that
// changed during one scan in a single callback. Creating or removing an
// optional layer counts as a change.
type FileWatcher struct {
	paths    []string
	interval time.Duration
	notify   func(changed []string)
	seen     map[string]time.Time // zero time means the file was absent
}

// NewFileWatcher watches paths every interval.
func NewFileWatcher(paths []string, interval time.Duration, notify func(changed []string)) *FileWatcher {
	return &FileWatcher{
		paths:    append([]string(nil), paths...),
		interval: interval,
		notify:   notify,
		seen:     make(map[string]time.Time, len(paths)),
	}
}

// Run blocks until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	w.poll()

	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if changed := w.poll(); len(changed) > 0 && w.notify != nil {
				w.notify(changed)
			}
		}
	}
}

// poll records the current mtimes and returns the paths that differ from the
// previous poll. The first poll only records.
func (w *FileWatcher) poll() []string {
	var changed []string
	for _, p := range w.paths {
		var mt time.Time
		if fi, err := os.Stat(p); err == nil {
			mt = fi.ModTime()
		}
		prev, known := w.seen[p]
		w.seen[p] = mt
		if known && !prev.Equal(mt) {
			changed = append(changed, p)
		}
	}
	return changed
}
