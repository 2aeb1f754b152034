package dto

import (
	"encoding/json"
	"time"
)

// CustomerResponse describes a back office customer.
type CustomerResponse struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// LineResponse describes one order line of a draft.
type LineResponse struct {
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unit_price"`
	Quantity  int64       `json:"quantity"`
	LineTotal json.Number `json:"line_total"`
}

// SubmissionResponse describes the submission state of a draft.
type SubmissionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// DraftResponse is the observable state of a draft.
type DraftResponse struct {
	ID                 string             `json:"id"`
	Customer           *CustomerResponse  `json:"customer"`
	DocDate            string             `json:"doc_date"`
	DocNumber          string             `json:"doc_number"`
	Lines              []LineResponse     `json:"lines"`
	Subtotal           json.Number        `json:"subtotal"`
	Total              json.Number        `json:"total"`
	Submission         SubmissionResponse `json:"submission"`
	CustomerPickerOpen bool               `json:"customer_picker_open"`
	ItemPickerOpen     bool               `json:"item_picker_open"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ItemChoiceResponse is a row of the item picker.
type ItemChoiceResponse struct {
	Code     string      `json:"code"`
	Name     string      `json:"name"`
	Type     string      `json:"type,omitempty"`
	Price    json.Number `json:"price"`
	Selected bool        `json:"selected"`
}

// SelectCustomerRequest selects a customer by code.
type SelectCustomerRequest struct {
	Code string `json:"code" binding:"required"`
}

// HeaderRequest changes the document header. Absent fields are left untouched.
type HeaderRequest struct {
	DocDate   *string `json:"doc_date"`
	DocNumber *string `json:"doc_number"`
}

// LineRequest edits a line. Values may be JSON numbers or strings and are coerced like form input.
type LineRequest struct {
	Quantity json.RawMessage `json:"quantity"`
	Price    json.RawMessage `json:"price"`
}

// ErrorResponse carries a user facing message.
type ErrorResponse struct {
	Error string `json:"error"`
}
