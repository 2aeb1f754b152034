package app

import (
	"context"
	"time"

	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/usecase"
)

// HeaderUpdate carries optional changes to the document header.
type HeaderUpdate struct {
	DocDate   *string
	DocNumber *string
}

// LineUpdate carries optional raw edits to an order line. Values are coerced like form input.
type LineUpdate struct {
	Quantity *string
	Price    *string
}

// DeskFacade exposes draft sessions by identifier.
type DeskFacade struct {
	sessions *usecase.SessionUseCase
}

// NewDeskFacade constructs DeskFacade.
func NewDeskFacade(sessions *usecase.SessionUseCase) *DeskFacade {
	return &DeskFacade{sessions: sessions}
}

func (f *DeskFacade) StartDraft(ctx context.Context) usecase.Snapshot {
	return f.sessions.Start(ctx).Snapshot()
}

func (f *DeskFacade) Draft(id string) (usecase.Snapshot, error) {
	return f.apply(id, func(*usecase.DraftSession) error { return nil })
}

func (f *DeskFacade) DiscardDraft(id string) error {
	return f.sessions.Discard(id)
}

func (f *DeskFacade) Customers(id string) ([]model.Customer, error) {
	d, err := f.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return d.Catalog().Customers(), nil
}

func (f *DeskFacade) ItemChoices(id string) ([]usecase.ItemChoice, error) {
	d, err := f.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return d.ItemChoices(), nil
}

func (f *DeskFacade) SelectCustomer(id, code string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error { return d.SelectCustomer(code) })
}

func (f *DeskFacade) ClearCustomer(id string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		d.ClearCustomer()
		return nil
	})
}

func (f *DeskFacade) SetPicker(id string, picker usecase.Picker, open bool) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error { return d.SetPicker(picker, open) })
}

// UpdateHeader validates the date before touching the number, so a bad date changes nothing.
func (f *DeskFacade) UpdateHeader(id string, upd HeaderUpdate) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		if upd.DocDate != nil {
			if err := d.SetDocDate(*upd.DocDate); err != nil {
				return err
			}
		}
		if upd.DocNumber != nil {
			d.SetDocNumber(*upd.DocNumber)
		}
		return nil
	})
}

func (f *DeskFacade) ToggleLine(id, code string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		_, err := d.Toggle(code)
		return err
	})
}

func (f *DeskFacade) UpdateLine(id, code string, upd LineUpdate) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		if upd.Quantity != nil {
			if err := d.UpdateQuantity(code, *upd.Quantity); err != nil {
				return err
			}
		}
		if upd.Price != nil {
			if err := d.UpdatePrice(code, *upd.Price); err != nil {
				return err
			}
		}
		return nil
	})
}

func (f *DeskFacade) RemoveLine(id, code string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		d.RemoveLine(code)
		return nil
	})
}

func (f *DeskFacade) ClearLines(id string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		d.ClearLines()
		return nil
	})
}

// Submit sends the draft. The back office request is detached from ctx cancellation.
func (f *DeskFacade) Submit(ctx context.Context, id string) (usecase.Snapshot, error) {
	d, err := f.sessions.Get(id)
	if err != nil {
		return usecase.Snapshot{}, err
	}
	return d.Submit(context.WithoutCancel(ctx))
}

func (f *DeskFacade) NewOrder(id string) (usecase.Snapshot, error) {
	return f.apply(id, func(d *usecase.DraftSession) error {
		d.New()
		return nil
	})
}

// Subscribe registers fn for snapshots of draft id and returns its current snapshot.
func (f *DeskFacade) Subscribe(id string, fn usecase.Observer) (usecase.Snapshot, func(), error) {
	d, err := f.sessions.Get(id)
	if err != nil {
		return usecase.Snapshot{}, nil, err
	}
	unsubscribe := d.Subscribe(fn)
	return d.Snapshot(), unsubscribe, nil
}

func (f *DeskFacade) RecentSubmissions(ctx context.Context, limit int) ([]model.SubmittedOrder, error) {
	return f.sessions.RecentSubmissions(ctx, limit)
}

// EvictIdle lets the session reaper drive the use case.
func (f *DeskFacade) EvictIdle(ttl time.Duration) int {
	return f.sessions.EvictIdle(ttl)
}

func (f *DeskFacade) apply(id string, fn func(*usecase.DraftSession) error) (usecase.Snapshot, error) {
	d, err := f.sessions.Get(id)
	if err != nil {
		return usecase.Snapshot{}, err
	}
	if err := fn(d); err != nil {
		return usecase.Snapshot{}, err
	}
	return d.Snapshot(), nil
}
