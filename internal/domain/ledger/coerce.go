package ledger

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseQuantity turns user input into a quantity. Fractions truncate; invalid input yields zero,
// which SetQuantity clamps to one. Values beyond int64 saturate at the matching bound.
func ParseQuantity(value string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	d = d.Truncate(0)
	switch {
	case d.GreaterThan(maxQuantity):
		return math.MaxInt64
	case d.LessThan(minQuantity):
		return math.MinInt64
	}
	return d.IntPart()
}

var (
	maxQuantity = decimal.NewFromInt(math.MaxInt64)
	minQuantity = decimal.NewFromInt(math.MinInt64)
)

// ParsePrice turns user input into a unit price. Invalid input yields zero.
func ParsePrice(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}
