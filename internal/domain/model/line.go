package model

import "github.com/shopspring/decimal"

// OrderLine is one item entry of an order in progress, keyed by item code.
type OrderLine struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// LineTotal returns unit price multiplied by quantity.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
