package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.SourceWatcher = (*Watcher)(nil)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("watcher closed")

// Watcher streams corpus file changes using fsnotify.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
}

// NewWatcher creates a watcher. Nothing is watched until Watch is called.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch starts watching dir and streams corpus file changes until ctx is
// cancelled or the watcher is closed. Only one Watch may be active at a time.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan domain.SourceChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrWatcherClosed
	}
	if w.watcher != nil {
		return nil, fmt.Errorf("already watching")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory error: %s is not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	w.watcher = fw

	changes := make(chan domain.SourceChange)
	go w.run(ctx, fw, changes)
	return changes, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, changes chan<- domain.SourceChange) {
	defer close(changes)
	defer w.release(fw)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			change := handleFsEvent(event)
			if change == nil {
				continue
			}
			select {
			case changes <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// release closes fw and forgets it so a later Watch may start again.
func (w *Watcher) release(fw *fsnotify.Watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == fw {
		w.watcher = nil
	}
	fw.Close()
}

// Close stops any active watch. It is idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}

// handleFsEvent converts an fsnotify event into a corpus change, or nil when
// the event concerns a hidden file, a directory, a non-corpus file, or only
// attribute changes.
func handleFsEvent(event fsnotify.Event) *domain.SourceChange {
	name := filepath.Base(event.Name)
	if isHidden(name) {
		return nil
	}
	kind := domain.KindForPath(name)
	if kind == domain.SourceUnknown {
		return nil
	}

	var changeType domain.ChangeType
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changeType = domain.ChangeDeleted
	case event.Has(fsnotify.Create):
		changeType = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = domain.ChangeUpdated
	default:
		return nil
	}

	if changeType != domain.ChangeDeleted {
		info, err := os.Stat(event.Name)
		if err != nil || info.IsDir() {
			return nil
		}
	}

	return &domain.SourceChange{
		Type: changeType,
		Path: event.Name,
		Kind: kind,
	}
}
