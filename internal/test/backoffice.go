package test

import (
	"context"
	"sync"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

// BackOfficeStub serves a fixed catalog and records sales order requests.
type BackOfficeStub struct {
	CustomerList []model.Customer
	ItemList     []model.CatalogItem
	CustomersErr error
	ItemsErr     error
	CreateFn     func(context.Context, model.SalesOrder) (*model.Acknowledgement, error)

	mu      sync.Mutex
	created []model.SalesOrder
}

// Customers returns the configured customers or error.
func (s *BackOfficeStub) Customers(context.Context) ([]model.Customer, error) {
	if s.CustomersErr != nil {
		return nil, s.CustomersErr
	}
	return s.CustomerList, nil
}

// Items returns the configured items or error.
func (s *BackOfficeStub) Items(context.Context) ([]model.CatalogItem, error) {
	if s.ItemsErr != nil {
		return nil, s.ItemsErr
	}
	return s.ItemList, nil
}

// CreateSalesOrder records order and delegates to CreateFn when set.
func (s *BackOfficeStub) CreateSalesOrder(ctx context.Context, order model.SalesOrder) (*model.Acknowledgement, error) {
	s.mu.Lock()
	s.created = append(s.created, order)
	s.mu.Unlock()

	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	return &model.Acknowledgement{DocEntry: int64(len(s.created)), DocNum: 1000 + int64(len(s.created))}, nil
}

// Created returns the orders sent so far.
func (s *BackOfficeStub) Created() []model.SalesOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.SalesOrder, len(s.created))
	copy(out, s.created)
	return out
}
