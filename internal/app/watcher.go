package app

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/quickdeck/internal/debug"
)

// ConfigWatcher watches one config file and reports changes debounced. The
// parent directory is watched rather than the file itself, so editors that
// replace the file via rename are still seen.
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	path       string
	notify     chan string
	done       chan struct{}
	debounceMs int
}

func NewConfigWatcher(path string, debounceMs int) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounceMs <= 0 {
		debounceMs = 200
	}

	cw := &ConfigWatcher{
		watcher:    w,
		path:       filepath.Clean(path),
		notify:     make(chan string, 1),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}
	if err := w.Add(filepath.Dir(cw.path)); err != nil {
		w.Close()
		return nil, err
	}

	go cw.run()
	debug.Log(debug.WATCH, "watching %s", cw.path)
	return cw, nil
}

// run collapses event bursts: an editor save that writes, renames, and chmods
// in quick succession produces one notification once the file has been quiet
// for the debounce interval.
func (cw *ConfigWatcher) run() {
	var lastEvent time.Time
	pending := false

	debounce := time.Duration(cw.debounceMs) * time.Millisecond
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				debug.Log(debug.WATCH, "%s on %s", event.Op, event.Name)
				lastEvent = time.Now()
				pending = true
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "watch error: %v", err)

		case <-ticker.C:
			if pending && time.Since(lastEvent) >= debounce {
				pending = false
				select {
				case cw.notify <- cw.path:
					debug.Log(debug.WATCH, "config change notification")
				default:
				}
			}
		}
	}
}

// Notify returns the channel carrying debounced change notifications.
func (cw *ConfigWatcher) Notify() <-chan string {
	return cw.notify
}

func (cw *ConfigWatcher) Close() error {
	close(cw.done)
	return cw.watcher.Close()
}
