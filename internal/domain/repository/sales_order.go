package repository

import (
	"context"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// SalesOrderRepository creates sales orders in the back office.
type SalesOrderRepository interface {
	CreateSalesOrder(ctx context.Context, order model.SalesOrder) (*model.Acknowledgement, error)
}

// BackOffice is the full remote order service contract.
type BackOffice interface {
	CatalogRepository
	SalesOrderRepository
}
