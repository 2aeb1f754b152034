package repository

import (
	"context"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// SubmissionJournal records orders accepted by the back office.
type SubmissionJournal interface {
	Record(ctx context.Context, order model.SubmittedOrder) error
	Recent(ctx context.Context, limit int) ([]model.SubmittedOrder, error)
}
