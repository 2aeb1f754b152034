package test

import (
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// AcmeCatalog returns a back office stub holding customer Acme and item Widget priced 9.5.
func AcmeCatalog() *BackOfficeStub {
	return &BackOfficeStub{
		CustomerList: []model.Customer{{Code: "C001", Name: "Acme"}},
		ItemList: []model.CatalogItem{{
			Code:  "I1",
			Name:  "Widget",
			Price: decimal.NewNullDecimal(decimal.RequireFromString("9.5")),
		}},
	}
}
