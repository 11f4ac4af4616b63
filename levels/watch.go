package levels

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed level documents, materials and index files in a
// set of directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

func NewWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher := &Watcher{
		watcher:  w,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsWatched(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// IsWatched reports whether a change to path can affect a loaded level.
func IsWatched(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case IsLevelFile(name):
		return true
	case strings.HasSuffix(name, ".mat.yaml"):
		return true
	case name == "index.json" || name == "index.yaml":
		return true
	}
	return false
}
