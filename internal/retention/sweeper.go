// Package retention keeps the readings table bounded. Readings are
// ephemeral display state; persisting them is a session convenience, so
// anything past the configured age gets swept.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultInterval = time.Hour

// ReadingPruner is the storage surface the sweeper needs.
// Implemented by storage.Store.
type ReadingPruner interface {
	PruneReadingsBefore(cutoff time.Time) (int64, error)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Sweeper periodically deletes readings older than maxAge.
type Sweeper struct {
	store    ReadingPruner
	maxAge   time.Duration
	interval time.Duration
	clock    Clock
	logger   *slog.Logger
}

// NewSweeper creates a Sweeper. interval <= 0 defaults to one hour.
func NewSweeper(store ReadingPruner, maxAge, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		clock:    realClock{},
		logger:   slog.Default(),
	}
}

// NewSweeperWithClock creates a Sweeper with a custom clock (for testing).
func NewSweeperWithClock(store ReadingPruner, maxAge, interval time.Duration, clock Clock) *Sweeper {
	s := NewSweeper(store, maxAge, interval)
	s.clock = clock
	return s
}

// Run sweeps on the configured interval until ctx is cancelled.
// A maxAge of zero disables sweeping entirely.
func (s *Sweeper) Run(ctx context.Context) {
	if s.maxAge <= 0 {
		return
	}

	for {
		if ctx.Err() != nil {
			return
		}

		if err := s.RunOnce(); err != nil {
			s.logger.Error("retention sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce() error {
	cutoff := s.clock.Now().Add(-s.maxAge)
	n, err := s.store.PruneReadingsBefore(cutoff)
	if err != nil {
		return fmt.Errorf("pruning readings: %w", err)
	}
	if n > 0 {
		s.logger.Info("pruned old readings", "count", n, "cutoff", cutoff)
	}
	return nil
}
