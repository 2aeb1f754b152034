package test

import (
	"context"
	"sync"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// JournalStub keeps submitted orders in memory.
type JournalStub struct {
	RecordErr error
	RecentErr error

	mu      sync.Mutex
	Records []model.SubmittedOrder
}

// Record appends order unless RecordErr is set.
func (s *JournalStub) Record(_ context.Context, order model.SubmittedOrder) error {
	if s.RecordErr != nil {
		return s.RecordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = int64(len(s.Records) + 1)
	s.Records = append(s.Records, order)
	return nil
}

// Recent returns up to limit records, newest first.
func (s *JournalStub) Recent(_ context.Context, limit int) ([]model.SubmittedOrder, error) {
	if s.RecentErr != nil {
		return nil, s.RecentErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SubmittedOrder, 0, limit)
	for i := len(s.Records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.Records[i])
	}
	return out, nil
}

// Len returns the number of stored records.
func (s *JournalStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Records)
}
