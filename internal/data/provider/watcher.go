package provider

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/voxmetric/call-timeline/internal/util"
)

// FileEvent describes a change to a watched event file.
type FileEvent struct {
	Path      string
	Operation string
}

// Watcher monitors a directory of JSONL event files and reports changes so
// the caller can re-trigger a load.
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan FileEvent
}

// NewWatcher starts watching the given directory for .jsonl changes.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		events:  make(chan FileEvent, 100),
	}

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				close(w.events)
				return
			}

			// Only event files are interesting
			if filepath.Ext(ev.Name) == ".jsonl" {
				w.events <- FileEvent{
					Path:      ev.Name,
					Operation: ev.Op.String(),
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				close(w.events)
				return
			}
			// Log error but continue running
			util.LogError("Event file monitoring error: " + err.Error())
		}
	}
}

// Events returns the channel of detected file changes.
func (w *Watcher) Events() <-chan FileEvent {
	return w.events
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
