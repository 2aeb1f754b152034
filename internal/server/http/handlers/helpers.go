package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/salesorder/internal/domain/errors"
	"github.com/polkiloo/salesorder/internal/domain/model"
	"github.com/polkiloo/salesorder/internal/server/http/dto"
	"github.com/polkiloo/salesorder/internal/usecase"
)

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case domainErrors.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: usecase.AlertMessage(err)})
	case errors.Is(err, domainErrors.ErrSubmitInProgress):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrInvalidDocDate):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

// rawText returns the text of a JSON scalar: strings are unquoted, numbers are kept verbatim.
func rawText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	if raw[0] == '"' {
		if s, err := strconv.Unquote(string(raw)); err == nil {
			return s, true
		}
	}
	return string(raw), true
}

func toDraftResponse(s usecase.Snapshot) dto.DraftResponse {
	resp := dto.DraftResponse{
		ID:                 s.ID,
		DocDate:            s.DocDate,
		DocNumber:          s.DocNumber,
		Lines:              make([]dto.LineResponse, 0, len(s.Lines)),
		Subtotal:           json.Number(s.Subtotal.String()),
		Total:              json.Number(s.Total.String()),
		Submission:         dto.SubmissionResponse{Status: string(s.Submission.Status), Message: s.Submission.Message},
		CustomerPickerOpen: s.CustomerPickerOpen,
		ItemPickerOpen:     s.ItemPickerOpen,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.Customer != nil {
		c := toCustomerResponse(*s.Customer)
		resp.Customer = &c
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, dto.LineResponse{
			Code:      l.Code,
			Name:      l.Name,
			UnitPrice: json.Number(l.UnitPrice.String()),
			Quantity:  l.Quantity,
			LineTotal: json.Number(l.LineTotal().String()),
		})
	}
	return resp
}

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{Code: c.Code, Name: c.Name, Email: c.Email}
}

func toItemChoiceResponse(ch usecase.ItemChoice) dto.ItemChoiceResponse {
	return dto.ItemChoiceResponse{
		Code:     ch.Item.Code,
		Name:     ch.Item.Name,
		Type:     ch.Item.Type,
		Price:    json.Number(ch.Price.String()),
		Selected: ch.Selected,
	}
}

func toSubmittedOrderResponse(o model.SubmittedOrder) dto.SubmittedOrderResponse {
	resp := dto.SubmittedOrderResponse{
		ID:          o.ID,
		CardCode:    o.CardCode,
		CardName:    o.CardName,
		DocDate:     o.DocDate,
		DocTotal:    json.Number(o.DocTotal.String()),
		DocEntry:    o.DocEntry,
		DocNum:      o.DocNum,
		Rows:        make([]dto.SubmittedRowResponse, 0, len(o.Rows)),
		SubmittedAt: o.SubmittedAt,
	}
	for _, r := range o.Rows {
		resp.Rows = append(resp.Rows, dto.SubmittedRowResponse{
			ItemCode: r.ItemCode,
			ItemName: r.ItemName,
			Price:    json.Number(r.Price.String()),
			Quantity: r.Quantity,
		})
	}
	return resp
}
