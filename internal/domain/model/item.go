package model

import "github.com/shopspring/decimal"

// CatalogItem describes a sellable item. Prices are suggestions for new order lines.
type CatalogItem struct {
	Code      string
	Name      string
	Type      string
	Price     decimal.NullDecimal
	UnitPrice decimal.NullDecimal
	PriceList decimal.NullDecimal
}

// NominalPrice returns the first present price field or zero.
func (i CatalogItem) NominalPrice() decimal.Decimal {
	for _, p := range []decimal.NullDecimal{i.Price, i.UnitPrice, i.PriceList} {
		if p.Valid {
			return p.Decimal
		}
	}
	return decimal.Zero
}
