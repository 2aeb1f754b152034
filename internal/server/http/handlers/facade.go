package handlers

import (
	"context"

	"github.com/polkiloo/salesorder/internal/app"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/usecase"
)

// DraftFacade describes the draft operations exposed via HTTP.
type DraftFacade interface {
	StartDraft(ctx context.Context) usecase.Snapshot
	Draft(id string) (usecase.Snapshot, error)
	DiscardDraft(id string) error
	Customers(id string) ([]model.Customer, error)
	ItemChoices(id string) ([]usecase.ItemChoice, error)
	SelectCustomer(id, code string) (usecase.Snapshot, error)
	ClearCustomer(id string) (usecase.Snapshot, error)
	SetPicker(id string, picker usecase.Picker, open bool) (usecase.Snapshot, error)
	UpdateHeader(id string, upd app.HeaderUpdate) (usecase.Snapshot, error)
	ToggleLine(id, code string) (usecase.Snapshot, error)
	UpdateLine(id, code string, upd app.LineUpdate) (usecase.Snapshot, error)
	RemoveLine(id, code string) (usecase.Snapshot, error)
	ClearLines(id string) (usecase.Snapshot, error)
	Submit(ctx context.Context, id string) (usecase.Snapshot, error)
	NewOrder(id string) (usecase.Snapshot, error)
	Subscribe(id string, fn usecase.Observer) (usecase.Snapshot, func(), error)
}

// SubmissionFacade lists journaled submissions.
type SubmissionFacade interface {
	RecentSubmissions(ctx context.Context, limit int) ([]model.SubmittedOrder, error)
}

// DeskFacade aggregates the full set of operations used across handlers.
type DeskFacade interface {
	DraftFacade
	SubmissionFacade
}
