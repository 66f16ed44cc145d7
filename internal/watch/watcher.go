// Package watch reloads the configuration file when it changes on disk.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chardash/internal/config"
	"chardash/internal/log"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Reload is delivered after the watched file changed. Err is set when the
// new file could not be loaded; Config is nil in that case.
type Reload struct {
	Path      string
	Config    *config.Config
	Err       error
	Timestamp time.Time
}

// Watcher monitors one config file using fsnotify
type Watcher struct {
	path     string
	debounce time.Duration

	// Channel to receive reloads
	reloads chan Reload

	// Channel to signal stop
	stopChan chan struct{}
	done     chan struct{}

	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New creates a watcher for the config file at path. The file does not
// have to exist yet, but its directory does.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	// Editors replace files by rename, so the directory is watched rather
	// than the file itself.
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}

	w := &Watcher{
		path:      abs,
		debounce:  DefaultDebounce,
		reloads:   make(chan Reload, 4),
		fsWatcher: fsWatcher,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads returns the channel that delivers reload results. It is closed
// by Stop.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.loop(w.stopChan, w.done)

	log.LogWithFields(log.F("file", w.path)).Debug("Watching config file")
	return nil
}

func (w *Watcher) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-stop:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := config.LoadConfigFile(w.path)
	r := Reload{Path: w.path, Config: cfg, Err: err, Timestamp: time.Now()}
	if err != nil {
		r.Config = nil
		log.LogWithError(err).Warn("Config reload failed")
	} else {
		log.LogWithFields(log.F("file", w.path)).Info("Config reloaded")
	}

	// Drop rather than block when nobody is reading.
	select {
	case w.reloads <- r:
	default:
		log.LogWithFields(log.F("file", w.path)).Warn("Reload channel is full, dropped reload")
	}
}

// Stop halts watching and closes the reload channel.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)
	<-w.done

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false
	close(w.reloads)
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}
