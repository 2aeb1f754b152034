package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

// User facing messages of the composer.
const (
	MessageSubmitted       = "Sales Order submitted successfully."
	MessageNetworkError    = "Network or server error."
	MessageSubmitFailed    = "Submit failed"
	MessageMissingCustomer = "Please select a customer."
	MessageEmptyOrder      = "Add at least one item."
)

// Composer validates a draft, builds the outbound order, and tracks the submission state.
type Composer struct {
	orders repository.SalesOrderRepository
	state  model.SubmissionState
}

// NewComposer constructs an idle Composer.
func NewComposer(orders repository.SalesOrderRepository) *Composer {
	return &Composer{orders: orders, state: model.SubmissionState{Status: model.SubmissionIdle}}
}

// Validate checks that a customer is selected and that there is at least one line, in that order.
func (c *Composer) Validate(customer *model.Customer, lines int) error {
	if customer == nil {
		return domainErrors.ErrMissingCustomer
	}
	if lines == 0 {
		return domainErrors.ErrEmptyOrder
	}
	return nil
}

// BuildPayload assembles the sales order. The total is summed here from the lines, not taken from the ledger.
func (c *Composer) BuildPayload(customer model.Customer, docDate string, lines []model.OrderLine) model.SalesOrder {
	order := model.SalesOrder{
		CardCode:   customer.Code,
		CardName:   customer.Name,
		DocDate:    docDate,
		DocDueDate: docDate,
		DocTotal:   decimal.Zero,
		Rows:       make([]model.SalesOrderRow, 0, len(lines)),
	}
	for _, l := range lines {
		name := l.Name
		if strings.TrimSpace(name) == "" {
			name = l.Code
		}
		order.Rows = append(order.Rows, model.SalesOrderRow{
			ItemCode: l.Code,
			ItemName: name,
			Price:    l.UnitPrice,
			Quantity: l.Quantity,
		})
		order.DocTotal = order.DocTotal.Add(l.LineTotal())
	}
	return order
}

// Begin enters the submitting state. It refuses while a submission is already outstanding.
func (c *Composer) Begin() error {
	if c.state.Status == model.SubmissionSubmitting {
		return domainErrors.ErrSubmitInProgress
	}
	c.state = model.SubmissionState{Status: model.SubmissionSubmitting}
	return nil
}

// Send issues the single creation request.
func (c *Composer) Send(ctx context.Context, order model.SalesOrder) (*model.Acknowledgement, error) {
	return c.orders.CreateSalesOrder(ctx, order)
}

// Finish records the outcome of Send and reports whether the order was accepted.
func (c *Composer) Finish(err error) bool {
	if err != nil {
		c.state = model.SubmissionState{Status: model.SubmissionFailed, Message: FailureMessage(err)}
		return false
	}
	c.state = model.SubmissionState{Status: model.SubmissionSucceeded, Message: MessageSubmitted}
	return true
}

// Reset clears the message. An outstanding submission keeps its status.
func (c *Composer) Reset() {
	if c.state.Status == model.SubmissionSubmitting {
		c.state.Message = ""
		return
	}
	c.state = model.SubmissionState{Status: model.SubmissionIdle}
}

// State returns the current submission state.
func (c *Composer) State() model.SubmissionState {
	return c.state
}

// Submitting reports whether a request is outstanding.
func (c *Composer) Submitting() bool {
	return c.state.Status == model.SubmissionSubmitting
}

// FailureMessage renders a submission error for the user.
func FailureMessage(err error) string {
	var remote *domainErrors.RemoteError
	if errors.As(err, &remote) {
		switch {
		case remote.Message != "":
			return "Error: " + remote.Message
		case remote.Status != "":
			return "Error: " + remote.Status
		default:
			return "Error: " + MessageSubmitFailed
		}
	}
	return MessageNetworkError
}

// AlertMessage renders a validation error for the user.
func AlertMessage(err error) string {
	switch {
	case errors.Is(err, domainErrors.ErrMissingCustomer):
		return MessageMissingCustomer
	case errors.Is(err, domainErrors.ErrEmptyOrder):
		return MessageEmptyOrder
	}
	return err.Error()
}
