package agent

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ternarybob/hunter/internal/logger"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher monitors the accounts file and wakes the poller early when new
// account data lands, instead of waiting out the full poll interval.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	wake     chan struct{}

	running bool
	stopCh  chan struct{}
	mu      sync.Mutex
}

// NewWatcher creates a watcher for the given accounts file.
func NewWatcher(accountsPath string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		path:     filepath.Clean(accountsPath),
		watcher:  fsWatcher,
		debounce: defaultDebounce,
		wake:     make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// Wake returns the channel signalled after the accounts file changes.
func (w *Watcher) Wake() <-chan struct{} {
	return w.wake
}

// Start begins watching the accounts file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the parent directory: editors and atomic writers replace the
	// file, which drops a watch added on the file itself.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	go w.processEvents()

	return nil
}

// Stop stops the file watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.stopCh)

	return w.watcher.Close()
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// processEvents handles file system events, debouncing bursts of writes
// into a single wake signal.
func (w *Watcher) processEvents() {
	log := logger.GetLogger()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			log.Debug().Str("path", w.path).Msg("Accounts file changed, waking poller")
			select {
			case w.wake <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("Accounts watcher error")
		}
	}
}
