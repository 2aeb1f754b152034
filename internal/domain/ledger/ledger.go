// Package ledger holds the mutable set of lines of an order in progress.
package ledger

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// FallbackPrice is used when an item carries no usable price, so a new line never totals to zero.
var FallbackPrice = decimal.NewFromInt(1)

// Ledger keeps at most one line per item code. Lines keep insertion order for display.
// Ledger is not safe for concurrent use.
type Ledger struct {
	lines map[string]*model.OrderLine
	order []string
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{lines: make(map[string]*model.OrderLine)}
}

// ResolvePrice picks the default unit price of a new line for item.
func ResolvePrice(item model.CatalogItem) decimal.Decimal {
	price := item.NominalPrice()
	if price.IsZero() {
		return FallbackPrice
	}
	return price
}

// Toggle removes the line for item when present and adds it otherwise. It reports whether a line was added.
func (l *Ledger) Toggle(item model.CatalogItem) bool {
	if l.Has(item.Code) {
		l.Remove(item.Code)
		return false
	}

	name := item.Name
	if strings.TrimSpace(name) == "" {
		name = item.Code
	}
	l.lines[item.Code] = &model.OrderLine{
		Code:      item.Code,
		Name:      name,
		UnitPrice: ResolvePrice(item),
		Quantity:  1,
	}
	l.order = append(l.order, item.Code)
	return true
}

// SetQuantity stores qty for the line, clamping anything below one to one.
func (l *Ledger) SetQuantity(code string, qty int64) bool {
	line, ok := l.lines[code]
	if !ok {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	line.Quantity = qty
	return true
}

// UpdateQuantity coerces a user supplied value and applies it with SetQuantity.
func (l *Ledger) UpdateQuantity(code, value string) bool {
	return l.SetQuantity(code, ParseQuantity(value))
}

// SetPrice stores the unit price of the line. Negative prices are kept as is.
func (l *Ledger) SetPrice(code string, price decimal.Decimal) bool {
	line, ok := l.lines[code]
	if !ok {
		return false
	}
	line.UnitPrice = price
	return true
}

// UpdatePrice coerces a user supplied value and applies it with SetPrice.
func (l *Ledger) UpdatePrice(code, value string) bool {
	return l.SetPrice(code, ParsePrice(value))
}

// Remove deletes the line for code if any.
func (l *Ledger) Remove(code string) {
	if _, ok := l.lines[code]; !ok {
		return
	}
	delete(l.lines, code)
	l.order = slices.DeleteFunc(l.order, func(c string) bool { return c == code })
}

// Clear drops every line.
func (l *Ledger) Clear() {
	clear(l.lines)
	l.order = l.order[:0]
}

// Has reports whether a line exists for code.
func (l *Ledger) Has(code string) bool {
	_, ok := l.lines[code]
	return ok
}

// Line returns a copy of the line for code.
func (l *Ledger) Line(code string) (model.OrderLine, bool) {
	line, ok := l.lines[code]
	if !ok {
		return model.OrderLine{}, false
	}
	return *line, true
}

// Len returns the number of lines.
func (l *Ledger) Len() int {
	return len(l.order)
}

// Lines returns copies of all lines in insertion order.
func (l *Ledger) Lines() []model.OrderLine {
	out := make([]model.OrderLine, 0, len(l.order))
	for _, code := range l.order {
		out = append(out, *l.lines[code])
	}
	return out
}

// Subtotal sums line totals over the current lines.
func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, code := range l.order {
		sum = sum.Add(l.lines[code].LineTotal())
	}
	return sum
}

// Total equals Subtotal: no tax or discount is applied.
func (l *Ledger) Total() decimal.Decimal {
	return l.Subtotal()
}
