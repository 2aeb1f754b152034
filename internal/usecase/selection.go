package usecase

import (
	"fmt"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
)

// Picker names a selection overlay.
type Picker string

const (
	PickerCustomer Picker = "customer"
	PickerItem     Picker = "item"
)

// Selection is the transient UI selection state of a draft. It never touches the ledger.
type Selection struct {
	customer           *model.Customer
	customerPickerOpen bool
	itemPickerOpen     bool
}

// SelectCustomer replaces the selected customer and closes the customer picker.
func (s *Selection) SelectCustomer(c model.Customer) {
	s.customer = &c
	s.customerPickerOpen = false
}

// ClearCustomer drops the selected customer.
func (s *Selection) ClearCustomer() {
	s.customer = nil
}

// Customer returns the selected customer or nil.
func (s *Selection) Customer() *model.Customer {
	if s.customer == nil {
		return nil
	}
	c := *s.customer
	return &c
}

// SetPicker opens or closes the named picker.
func (s *Selection) SetPicker(p Picker, open bool) error {
	switch p {
	case PickerCustomer:
		s.customerPickerOpen = open
	case PickerItem:
		s.itemPickerOpen = open
	default:
		return fmt.Errorf("picker %q: %w", p, domainErrors.ErrNotFound)
	}
	return nil
}

// PickerOpen reports whether the named picker is open.
func (s *Selection) PickerOpen(p Picker) bool {
	switch p {
	case PickerCustomer:
		return s.customerPickerOpen
	case PickerItem:
		return s.itemPickerOpen
	}
	return false
}
