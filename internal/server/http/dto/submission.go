package dto

import (
	"encoding/json"
	"time"
)

// SubmittedRowResponse is a row of a journaled order.
type SubmittedRowResponse struct {
	ItemCode string      `json:"item_code"`
	ItemName string      `json:"item_name"`
	Price    json.Number `json:"price"`
	Quantity int64       `json:"quantity"`
}

// SubmittedOrderResponse describes a journal record.
type SubmittedOrderResponse struct {
	ID          int64                  `json:"id"`
	CardCode    string                 `json:"card_code"`
	CardName    string                 `json:"card_name"`
	DocDate     string                 `json:"doc_date"`
	DocTotal    json.Number            `json:"doc_total"`
	DocEntry    int64                  `json:"doc_entry,omitempty"`
	DocNum      int64                  `json:"doc_num,omitempty"`
	Rows        []SubmittedRowResponse `json:"rows"`
	SubmittedAt time.Time              `json:"submitted_at"`
}
