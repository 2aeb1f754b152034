package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

const defaultSubmissionsLimit = 50

// SessionUseCase creates and tracks draft sessions.
type SessionUseCase struct {
	backOffice repository.BackOffice
	journal    repository.SubmissionJournal
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string

	mu       sync.RWMutex
	sessions map[string]*DraftSession
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(backOffice repository.BackOffice, journal repository.SubmissionJournal, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{
		backOffice: backOffice,
		journal:    journal,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
		sessions:   make(map[string]*DraftSession),
	}
}

// Start loads the catalog and opens a new draft session.
func (u *SessionUseCase) Start(ctx context.Context) *DraftSession {
	catalog := LoadCatalog(ctx, u.backOffice, u.logger)
	draft := NewDraftSession(u.newID(), catalog, u.backOffice, u.journal, u.logger, u.now)

	u.mu.Lock()
	u.sessions[draft.ID()] = draft
	u.mu.Unlock()

	u.logger.Info("draft session started",
		slog.String("draft", draft.ID()),
		slog.Int("customers", len(catalog.customers)),
		slog.Int("items", len(catalog.items)),
	)
	return draft
}

// Get returns the draft session with id.
func (u *SessionUseCase) Get(id string) (*DraftSession, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	draft, ok := u.sessions[id]
	if !ok {
		return nil, fmt.Errorf("draft %q: %w", id, domainErrors.ErrNotFound)
	}
	return draft, nil
}

// Discard forgets the draft session with id.
func (u *SessionUseCase) Discard(id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[id]; !ok {
		return fmt.Errorf("draft %q: %w", id, domainErrors.ErrNotFound)
	}
	delete(u.sessions, id)
	return nil
}

// EvictIdle drops sessions inactive for longer than ttl. Sessions with a submission in flight are kept.
func (u *SessionUseCase) EvictIdle(ttl time.Duration) int {
	cutoff := u.now().Add(-ttl)

	u.mu.Lock()
	defer u.mu.Unlock()

	evicted := 0
	for id, draft := range u.sessions {
		if draft.Submitting() || draft.LastActive().After(cutoff) {
			continue
		}
		delete(u.sessions, id)
		evicted++
	}
	return evicted
}

// Count returns the number of live sessions.
func (u *SessionUseCase) Count() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.sessions)
}

// RecentSubmissions lists the newest journal records.
func (u *SessionUseCase) RecentSubmissions(ctx context.Context, limit int) ([]model.SubmittedOrder, error) {
	if limit <= 0 {
		limit = defaultSubmissionsLimit
	}
	return u.journal.Recent(ctx, limit)
}
