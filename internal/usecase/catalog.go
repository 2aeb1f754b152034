package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/domain/repository"
)

// CatalogCache holds the reference lists of one draft session. It is read-only once built.
type CatalogCache struct {
	customers   []model.Customer
	items       []model.CatalogItem
	customerIdx map[string]int
	itemIdx     map[string]int
}

// NewCatalogCache indexes customers and items by code. The first entry wins on duplicate codes.
func NewCatalogCache(customers []model.Customer, items []model.CatalogItem) *CatalogCache {
	c := &CatalogCache{
		customers:   customers,
		items:       items,
		customerIdx: make(map[string]int, len(customers)),
		itemIdx:     make(map[string]int, len(items)),
	}
	for i, cust := range customers {
		if _, ok := c.customerIdx[cust.Code]; !ok {
			c.customerIdx[cust.Code] = i
		}
	}
	for i, item := range items {
		if _, ok := c.itemIdx[item.Code]; !ok {
			c.itemIdx[item.Code] = i
		}
	}
	return c
}

// LoadCatalog fetches customers and items concurrently. A failed list is logged and left empty
// without affecting the other one.
func LoadCatalog(ctx context.Context, source repository.CatalogRepository, logger *slog.Logger) *CatalogCache {
	var (
		wg        sync.WaitGroup
		customers []model.Customer
		items     []model.CatalogItem
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, err := source.Customers(ctx)
		if err != nil {
			logger.Error("customers fetch failed", slog.String("error", err.Error()))
			return
		}
		customers = list
	}()
	go func() {
		defer wg.Done()
		list, err := source.Items(ctx)
		if err != nil {
			logger.Error("items fetch failed", slog.String("error", err.Error()))
			return
		}
		items = list
	}()
	wg.Wait()

	return NewCatalogCache(customers, items)
}

// Customer looks up a customer by code.
func (c *CatalogCache) Customer(code string) (model.Customer, bool) {
	i, ok := c.customerIdx[code]
	if !ok {
		return model.Customer{}, false
	}
	return c.customers[i], true
}

// Item looks up an item by code.
func (c *CatalogCache) Item(code string) (model.CatalogItem, bool) {
	i, ok := c.itemIdx[code]
	if !ok {
		return model.CatalogItem{}, false
	}
	return c.items[i], true
}

// Customers returns a copy of the customer list in source order.
func (c *CatalogCache) Customers() []model.Customer {
	out := make([]model.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

// Items returns a copy of the item list in source order.
func (c *CatalogCache) Items() []model.CatalogItem {
	out := make([]model.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}
