package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// SessionStore exposes the subset of session management required by the reaper.
type SessionStore interface {
	EvictIdle(ttl time.Duration) int
}

// SessionReaper periodically evicts draft sessions that have been idle for too long.
type SessionReaper struct {
	store    SessionStore
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSessionReaper constructs a reaper. Non-positive durations fall back to one minute and thirty minutes.
func NewSessionReaper(store SessionStore, interval, ttl time.Duration, logger *slog.Logger) *SessionReaper {
	if interval <= 0 {
		interval = time.Minute
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionReaper{
		store:    store,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start launches background sweeping. Calling Start on a running reaper is a no-op.
func (r *SessionReaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (r *SessionReaper) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Sweep evicts idle sessions once and returns how many were removed.
func (r *SessionReaper) Sweep() int {
	evicted := r.store.EvictIdle(r.ttl)
	if evicted > 0 {
		r.logger.Info("evicted idle drafts", slog.Int("count", evicted), slog.Duration("ttl", r.ttl))
	}
	return evicted
}

func (r *SessionReaper) run(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
