package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format exchanged with the back office.
const DateLayout = "2006-01-02"

// SalesOrder is the creation request sent to the back office.
type SalesOrder struct {
	CardCode   string
	CardName   string
	DocDate    string
	DocDueDate string
	DocTotal   decimal.Decimal
	Rows       []SalesOrderRow
}

// SalesOrderRow is one row of a sales order request.
type SalesOrderRow struct {
	ItemCode string
	ItemName string
	Price    decimal.Decimal
	Quantity int64
}

// RowsTotal sums price times quantity over all rows.
func (o SalesOrder) RowsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, r := range o.Rows {
		total = total.Add(r.Price.Mul(decimal.NewFromInt(r.Quantity)))
	}
	return total
}

// Acknowledgement is the back office answer to a created order.
type Acknowledgement struct {
	DocEntry int64
	DocNum   int64
	Raw      []byte
}

// SubmittedOrder is a journal record of an order accepted by the back office.
type SubmittedOrder struct {
	ID          int64
	CardCode    string
	CardName    string
	DocDate     string
	DocTotal    decimal.Decimal
	Rows        []SalesOrderRow
	DocEntry    int64
	DocNum      int64
	SubmittedAt time.Time
}
