package repository

import (
	"context"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// CatalogRepository reads back office reference data.
type CatalogRepository interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	Items(ctx context.Context) ([]model.CatalogItem, error)
}
