package services

import (
	"context"
	"time"

	"github.com/custodia-labs/medlens/internal/core/domain"
	"github.com/custodia-labs/medlens/internal/core/ports/driven"
	"github.com/custodia-labs/medlens/internal/core/ports/driving"
	"github.com/custodia-labs/medlens/internal/logger"
)

// Ensure ReloadService implements the interface.
var _ driving.ReloadService = (*ReloadService)(nil)

// Reloader rebuilds and republishes the corpus.
type Reloader interface {
	Snapshot(ctx context.Context) (*domain.Corpus, error)
	Reload(ctx context.Context) (*domain.Corpus, error)
	DataDir() string
}

// ReloadService reloads the corpus when files in the data directory change.
// Bursts of events are coalesced: a reload runs once the directory has been
// quiet for the debounce period.
type ReloadService struct {
	corpus   Reloader
	watcher  driven.SourceWatcher
	debounce time.Duration
	onReload func(*domain.Corpus)
}

// NewReloadService creates a reload service. A non-positive debounce selects the default.
func NewReloadService(corpus Reloader, watcher driven.SourceWatcher, debounce time.Duration) *ReloadService {
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounce
	}
	return &ReloadService{
		corpus:   corpus,
		watcher:  watcher,
		debounce: debounce,
	}
}

// OnReload registers a callback run after every successful reload.
func (s *ReloadService) OnReload(fn func(*domain.Corpus)) {
	s.onReload = fn
}

// Watch blocks, reloading on change, until ctx is cancelled or the watcher
// stops. It returns nil on cancellation. The corpus is loaded before the
// watch starts, which also creates a missing data directory.
func (s *ReloadService) Watch(ctx context.Context) error {
	if _, err := s.corpus.Snapshot(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	changes, err := s.watcher.Watch(ctx, s.corpus.DataDir())
	if err != nil {
		return err
	}

	// Since Go 1.23, Stop and Reset discard any undelivered tick.
	timer := time.NewTimer(s.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case change, ok := <-changes:
			if !ok {
				timer.Stop()
				if ctx.Err() != nil {
					return nil
				}
				if pending {
					s.reload(ctx)
				}
				return nil
			}
			logger.Debug("Corpus file %s: %s", change.Type, change.Path)
			timer.Reset(s.debounce)
			pending = true

		case <-timer.C:
			pending = false
			s.reload(ctx)
		}
	}
}

func (s *ReloadService) reload(ctx context.Context) {
	c, err := s.corpus.Reload(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Corpus reload failed: %v", err)
		}
		return
	}
	stats := c.Stats()
	logger.Info("Corpus reloaded: %d tabular records, %d documents", stats.Medicines, stats.Documents)
	if s.onReload != nil {
		s.onReload(c)
	}
}
