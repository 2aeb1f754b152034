package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/ledger"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

// DefaultDocNumber is the placeholder shown until the back office assigns a number.
const DefaultDocNumber = "Auto"

// Snapshot is the observable state of a draft.
type Snapshot struct {
	ID                 string
	Customer           *model.Customer
	DocDate            string
	DocNumber          string
	Lines              []model.OrderLine
	Subtotal           decimal.Decimal
	Total              decimal.Decimal
	Submission         model.SubmissionState
	CustomerPickerOpen bool
	ItemPickerOpen     bool
	UpdatedAt          time.Time
}

// ItemChoice is a row of the item picker.
type ItemChoice struct {
	Item     model.CatalogItem
	Price    decimal.Decimal
	Selected bool
}

// Observer receives a snapshot after every change. It runs while the draft is locked, so it must
// return quickly and must not call back into the draft.
type Observer func(Snapshot)

// DraftSession is one order being composed. Events are applied one at a time.
type DraftSession struct {
	id      string
	catalog *CatalogCache
	journal repository.SubmissionJournal
	logger  *slog.Logger
	now     func() time.Time

	mu         sync.Mutex
	ledger     *ledger.Ledger
	selection  Selection
	composer   *Composer
	docDate    string
	docNumber  string
	lastActive time.Time
	observers  map[int]Observer
	nextObs    int
}

// NewDraftSession builds an empty draft over a loaded catalog.
func NewDraftSession(id string, catalog *CatalogCache, orders repository.SalesOrderRepository, journal repository.SubmissionJournal, logger *slog.Logger, now func() time.Time) *DraftSession {
	if now == nil {
		now = time.Now
	}
	d := &DraftSession{
		id:        id,
		catalog:   catalog,
		journal:   journal,
		logger:    logger,
		now:       now,
		ledger:    ledger.New(),
		composer:  NewComposer(orders),
		docNumber: DefaultDocNumber,
		observers: make(map[int]Observer),
	}
	d.docDate = d.today()
	d.lastActive = now()
	return d
}

// ID returns the session identifier.
func (d *DraftSession) ID() string {
	return d.id
}

// Catalog returns the reference data loaded for this session.
func (d *DraftSession) Catalog() *CatalogCache {
	return d.catalog
}

// Snapshot returns the current state.
func (d *DraftSession) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Subscribe registers fn for change notifications and returns a function that removes it.
func (d *DraftSession) Subscribe(fn Observer) func() {
	d.mu.Lock()
	id := d.nextObs
	d.nextObs++
	d.observers[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.observers, id)
		d.mu.Unlock()
	}
}

// ItemChoices lists catalog items for the item picker with their selection flag.
func (d *DraftSession) ItemChoices() []ItemChoice {
	d.mu.Lock()
	defer d.mu.Unlock()

	items := d.catalog.Items()
	out := make([]ItemChoice, 0, len(items))
	for _, it := range items {
		out = append(out, ItemChoice{Item: it, Price: it.NominalPrice(), Selected: d.ledger.Has(it.Code)})
	}
	return out
}

// SelectCustomer selects the catalog customer with code.
func (d *DraftSession) SelectCustomer(code string) error {
	cust, ok := d.catalog.Customer(code)
	if !ok {
		return fmt.Errorf("customer %q: %w", code, domainErrors.ErrNotFound)
	}
	d.mutate(func() { d.selection.SelectCustomer(cust) })
	return nil
}

// ClearCustomer drops the selected customer.
func (d *DraftSession) ClearCustomer() {
	d.mutate(d.selection.ClearCustomer)
}

// SetPicker opens or closes a picker overlay.
func (d *DraftSession) SetPicker(p Picker, open bool) error {
	var err error
	d.mutate(func() { err = d.selection.SetPicker(p, open) })
	return err
}

// SetDocDate changes the document date. value must be YYYY-MM-DD.
func (d *DraftSession) SetDocDate(value string) error {
	parsed, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return fmt.Errorf("%w: %q", domainErrors.ErrInvalidDocDate, value)
	}
	d.mutate(func() { d.docDate = parsed.Format(model.DateLayout) })
	return nil
}

// SetDocNumber changes the informational document number.
func (d *DraftSession) SetDocNumber(value string) {
	d.mutate(func() { d.docNumber = value })
}

// Toggle adds or removes the line for the catalog item with code and reports whether it was added.
func (d *DraftSession) Toggle(code string) (bool, error) {
	item, ok := d.catalog.Item(code)
	if !ok {
		return false, fmt.Errorf("item %q: %w", code, domainErrors.ErrNotFound)
	}
	var added bool
	d.mutate(func() { added = d.ledger.Toggle(item) })
	return added, nil
}

// UpdateQuantity coerces value and sets the quantity of the line.
func (d *DraftSession) UpdateQuantity(code, value string) error {
	return d.updateLine(code, func() bool { return d.ledger.UpdateQuantity(code, value) })
}

// UpdatePrice coerces value and sets the unit price of the line.
func (d *DraftSession) UpdatePrice(code, value string) error {
	return d.updateLine(code, func() bool { return d.ledger.UpdatePrice(code, value) })
}

// RemoveLine deletes the line for code. A missing line is not an error.
func (d *DraftSession) RemoveLine(code string) {
	d.mutate(func() { d.ledger.Remove(code) })
}

// ClearLines empties the ledger.
func (d *DraftSession) ClearLines() {
	d.mutate(d.ledger.Clear)
}

// New resets the draft for a fresh order without contacting the back office.
func (d *DraftSession) New() {
	d.mutate(func() {
		d.resetLocked()
		d.docDate = d.today()
		d.composer.Reset()
	})
}

// Submit validates the draft and sends it. Validation failures return an error and change nothing.
// Back office failures are not returned; they land in the snapshot's submission state.
func (d *DraftSession) Submit(ctx context.Context) (Snapshot, error) {
	d.mu.Lock()
	if d.composer.Submitting() {
		d.mu.Unlock()
		return Snapshot{}, domainErrors.ErrSubmitInProgress
	}
	previous := d.composer.State()
	d.composer.Reset()
	customer := d.selection.Customer()
	if err := d.composer.Validate(customer, d.ledger.Len()); err != nil {
		if previous != d.composer.State() {
			d.notifyLocked()
		}
		d.mu.Unlock()
		return Snapshot{}, err
	}
	order := d.composer.BuildPayload(*customer, d.docDate, d.ledger.Lines())
	if err := d.composer.Begin(); err != nil {
		d.mu.Unlock()
		return Snapshot{}, err
	}
	d.touchLocked()
	d.notifyLocked()
	d.mu.Unlock()

	d.logger.Info("submitting sales order",
		slog.String("draft", d.id),
		slog.String("card_code", order.CardCode),
		slog.Int("rows", len(order.Rows)),
		slog.String("doc_total", order.DocTotal.String()),
	)
	ack, err := d.composer.Send(ctx, order)
	if err != nil {
		d.logger.Error("sales order submit failed", slog.String("draft", d.id), slog.String("error", err.Error()))
	}

	d.mu.Lock()
	if d.composer.Finish(err) {
		d.resetLocked()
	}
	d.touchLocked()
	d.notifyLocked()
	snap := d.snapshotLocked()
	d.mu.Unlock()

	if err == nil {
		d.record(ctx, order, ack)
	}
	return snap, nil
}

// Submitting reports whether a submission is outstanding.
func (d *DraftSession) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.composer.Submitting()
}

// LastActive returns the time of the last event applied to the draft.
func (d *DraftSession) LastActive() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastActive
}

func (d *DraftSession) record(ctx context.Context, order model.SalesOrder, ack *model.Acknowledgement) {
	entry := model.SubmittedOrder{
		CardCode:    order.CardCode,
		CardName:    order.CardName,
		DocDate:     order.DocDate,
		DocTotal:    order.DocTotal,
		Rows:        order.Rows,
		SubmittedAt: d.now(),
	}
	if ack != nil {
		entry.DocEntry = ack.DocEntry
		entry.DocNum = ack.DocNum
	}
	if err := d.journal.Record(ctx, entry); err != nil {
		d.logger.Error("journal record failed", slog.String("draft", d.id), slog.String("error", err.Error()))
	}
}

func (d *DraftSession) updateLine(code string, apply func() bool) error {
	var ok bool
	d.mutate(func() { ok = apply() })
	if !ok {
		return fmt.Errorf("line %q: %w", code, domainErrors.ErrNotFound)
	}
	return nil
}

func (d *DraftSession) mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	d.touchLocked()
	d.notifyLocked()
}

func (d *DraftSession) resetLocked() {
	d.ledger.Clear()
	d.selection.ClearCustomer()
	d.docNumber = DefaultDocNumber
}

func (d *DraftSession) touchLocked() {
	d.lastActive = d.now()
}

func (d *DraftSession) notifyLocked() {
	if len(d.observers) == 0 {
		return
	}
	snap := d.snapshotLocked()
	for _, fn := range d.observers {
		fn(snap)
	}
}

func (d *DraftSession) snapshotLocked() Snapshot {
	return Snapshot{
		ID:                 d.id,
		Customer:           d.selection.Customer(),
		DocDate:            d.docDate,
		DocNumber:          d.docNumber,
		Lines:              d.ledger.Lines(),
		Subtotal:           d.ledger.Subtotal(),
		Total:              d.ledger.Total(),
		Submission:         d.composer.State(),
		CustomerPickerOpen: d.selection.PickerOpen(PickerCustomer),
		ItemPickerOpen:     d.selection.PickerOpen(PickerItem),
		UpdatedAt:          d.lastActive,
	}
}

func (d *DraftSession) today() string {
	return d.now().UTC().Format(model.DateLayout)
}
