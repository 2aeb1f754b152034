package backoffice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/salesorder/internal/domain/model"
)

type customerResponse struct {
	CardCode     string `json:"CardCode"`
	CardName     string `json:"CardName"`
	EmailAddress string `json:"EmailAddress"`
}

func (r customerResponse) toModel() model.Customer {
	return model.Customer{Code: r.CardCode, Name: r.CardName, Email: r.EmailAddress}
}

type itemResponse struct {
	ItemCode  string          `json:"ItemCode"`
	ItemName  string          `json:"ItemName"`
	ItemType  string          `json:"ItemType"`
	Price     json.RawMessage `json:"Price"`
	UnitPrice json.RawMessage `json:"UnitPrice"`
	PriceList json.RawMessage `json:"PriceList"`
}

func (r itemResponse) toModel() model.CatalogItem {
	return model.CatalogItem{
		Code:      r.ItemCode,
		Name:      r.ItemName,
		Type:      r.ItemType,
		Price:     coercePrice(r.Price),
		UnitPrice: coercePrice(r.UnitPrice),
		PriceList: coercePrice(r.PriceList),
	}
}

type salesOrderRequest struct {
	CardCode      string                 `json:"CardCode"`
	CardName      string                 `json:"CardName"`
	DocDate       string                 `json:"DocDate"`
	DocDueDate    string                 `json:"DocDueDate"`
	DocTotal      json.Number            `json:"DocTotal"`
	SalesOrderRow []salesOrderRowRequest `json:"SalesOrderRow"`
}

type salesOrderRowRequest struct {
	ItemCode string      `json:"ItemCode"`
	ItemName string      `json:"ItemName"`
	Price    json.Number `json:"Price"`
	Quantity int64       `json:"Quantity"`
}

func newSalesOrderRequest(o model.SalesOrder) salesOrderRequest {
	req := salesOrderRequest{
		CardCode:      o.CardCode,
		CardName:      o.CardName,
		DocDate:       o.DocDate,
		DocDueDate:    o.DocDueDate,
		DocTotal:      json.Number(o.DocTotal.String()),
		SalesOrderRow: make([]salesOrderRowRequest, 0, len(o.Rows)),
	}
	for _, r := range o.Rows {
		req.SalesOrderRow = append(req.SalesOrderRow, salesOrderRowRequest{
			ItemCode: r.ItemCode,
			ItemName: r.ItemName,
			Price:    json.Number(r.Price.String()),
			Quantity: r.Quantity,
		})
	}
	return req
}

// decodeList accepts a bare JSON array or an object with a "value" array. Anything else decodes as empty.
func decodeList(body []byte, dst any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, dst); err != nil {
			return fmt.Errorf("decode list: %w", err)
		}
	case '{':
		var envelope struct {
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return fmt.Errorf("decode envelope: %w", err)
		}
		value := bytes.TrimSpace(envelope.Value)
		if len(value) == 0 || value[0] != '[' {
			return nil
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return fmt.Errorf("decode envelope value: %w", err)
		}
	default:
		if !json.Valid(trimmed) {
			return fmt.Errorf("decode list: invalid json")
		}
	}
	return nil
}

// coercePrice reads a price field. Absent or null is invalid; present but non-numeric reads as zero.
func coercePrice(raw json.RawMessage) decimal.NullDecimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.NullDecimal{}
	}

	text := string(raw)
	if raw[0] == '"' {
		if s, err := strconv.Unquote(text); err == nil {
			text = s
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.NewNullDecimal(decimal.Zero)
	}
	return decimal.NewNullDecimal(d)
}

func decodeObject(body []byte) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

// errorIndicator inspects an "error" member. It reports the readable message, if any, and whether
// the member flags a failure at all.
func errorIndicator(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case 'n', 'f':
		return "", false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	case '{':
		var obj struct {
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", true
		}
		var nested struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(obj.Message, &nested); err == nil && nested.Value != "" {
			return nested.Value, true
		}
		var plain string
		if err := json.Unmarshal(obj.Message, &plain); err == nil && plain != "" {
			return plain, true
		}
		return "", true
	case 't':
		return "", true
	default:
		if n, err := decimal.NewFromString(string(raw)); err == nil {
			if n.IsZero() {
				return "", false
			}
			return n.String(), true
		}
		return "", true
	}
}
