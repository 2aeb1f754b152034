package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type storeStub struct {
	sync.Mutex
	calls   int
	ttls    []time.Duration
	evicted int
}

func (s *storeStub) EvictIdle(ttl time.Duration) int {
	s.Lock()
	defer s.Unlock()
	s.calls++
	s.ttls = append(s.ttls, ttl)
	return s.evicted
}

func (s *storeStub) Calls() int {
	s.Lock()
	defer s.Unlock()
	return s.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewSessionReaperDefaults(t *testing.T) {
	reaper := NewSessionReaper(&storeStub{}, 0, -time.Second, testLogger())
	if reaper.interval != time.Minute {
		t.Fatalf("expected default interval, got %v", reaper.interval)
	}
	if reaper.ttl != 30*time.Minute {
		t.Fatalf("expected default ttl, got %v", reaper.ttl)
	}
}

func TestSessionReaperSweep(t *testing.T) {
	store := &storeStub{evicted: 2}
	reaper := NewSessionReaper(store, time.Second, 5*time.Minute, testLogger())

	if got := reaper.Sweep(); got != 2 {
		t.Fatalf("expected 2 evicted, got %d", got)
	}
	if len(store.ttls) != 1 || store.ttls[0] != 5*time.Minute {
		t.Fatalf("expected ttl to be passed through, got %v", store.ttls)
	}
}

func TestSessionReaperSweepsPeriodically(t *testing.T) {
	store := &storeStub{}
	reaper := NewSessionReaper(store, 5*time.Millisecond, time.Minute, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reaper.Start(ctx)
	reaper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for store.Calls() < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweeps")
		case <-time.After(5 * time.Millisecond):
		}
	}

	reaper.Stop()
	calls := store.Calls()
	time.Sleep(20 * time.Millisecond)
	if store.Calls() != calls {
		t.Fatalf("expected no sweeps after stop")
	}
}

func TestSessionReaperStopsOnContextCancel(t *testing.T) {
	reaper := NewSessionReaper(&storeStub{}, time.Hour, time.Minute, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	reaper.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		reaper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected stop to return")
	}
}

func TestSessionReaperStopWithoutStart(t *testing.T) {
	reaper := NewSessionReaper(&storeStub{}, time.Second, time.Minute, testLogger())
	reaper.Stop()
}
