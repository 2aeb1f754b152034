package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salesorder/internal/app"
	"github.com/polkiloo/salesorder/internal/server/http/dto"
	"github.com/polkiloo/salesorder/internal/usecase"
)

const eventBuffer = 16

// DraftHandler manages draft session endpoints.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

// Start handles POST /api/drafts.
func (h *DraftHandler) Start(c *gin.Context) {
	snap := h.facade.StartDraft(c.Request.Context())
	c.JSON(http.StatusCreated, toDraftResponse(snap))
}

// Get handles GET /api/drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	h.respond(c)(h.facade.Draft(c.Param("id")))
}

// Discard handles DELETE /api/drafts/:id.
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.facade.DiscardDraft(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Customers handles GET /api/drafts/:id/customers.
func (h *DraftHandler) Customers(c *gin.Context) {
	customers, err := h.facade.Customers(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		resp = append(resp, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, resp)
}

// Items handles GET /api/drafts/:id/items.
func (h *DraftHandler) Items(c *gin.Context) {
	choices, err := h.facade.ItemChoices(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.ItemChoiceResponse, 0, len(choices))
	for _, ch := range choices {
		resp = append(resp, toItemChoiceResponse(ch))
	}
	c.JSON(http.StatusOK, resp)
}

// SelectCustomer handles PUT /api/drafts/:id/customer.
func (h *DraftHandler) SelectCustomer(c *gin.Context) {
	var req dto.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.SelectCustomer(c.Param("id"), req.Code))
}

// ClearCustomer handles DELETE /api/drafts/:id/customer.
func (h *DraftHandler) ClearCustomer(c *gin.Context) {
	h.respond(c)(h.facade.ClearCustomer(c.Param("id")))
}

// OpenPicker handles POST /api/drafts/:id/pickers/:picker/open.
func (h *DraftHandler) OpenPicker(c *gin.Context) {
	h.respond(c)(h.facade.SetPicker(c.Param("id"), usecase.Picker(c.Param("picker")), true))
}

// ClosePicker handles POST /api/drafts/:id/pickers/:picker/close.
func (h *DraftHandler) ClosePicker(c *gin.Context) {
	h.respond(c)(h.facade.SetPicker(c.Param("id"), usecase.Picker(c.Param("picker")), false))
}

// UpdateHeader handles PUT /api/drafts/:id/header.
func (h *DraftHandler) UpdateHeader(c *gin.Context) {
	var req dto.HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.UpdateHeader(c.Param("id"), app.HeaderUpdate{DocDate: req.DocDate, DocNumber: req.DocNumber}))
}

// ToggleLine handles POST /api/drafts/:id/lines/:code/toggle.
func (h *DraftHandler) ToggleLine(c *gin.Context) {
	h.respond(c)(h.facade.ToggleLine(c.Param("id"), c.Param("code")))
}

// UpdateLine handles PATCH /api/drafts/:id/lines/:code.
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	var req dto.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var upd app.LineUpdate
	if v, ok := rawText(req.Quantity); ok {
		upd.Quantity = &v
	}
	if v, ok := rawText(req.Price); ok {
		upd.Price = &v
	}
	h.respond(c)(h.facade.UpdateLine(c.Param("id"), c.Param("code"), upd))
}

// RemoveLine handles DELETE /api/drafts/:id/lines/:code.
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	h.respond(c)(h.facade.RemoveLine(c.Param("id"), c.Param("code")))
}

// ClearLines handles DELETE /api/drafts/:id/lines.
func (h *DraftHandler) ClearLines(c *gin.Context) {
	h.respond(c)(h.facade.ClearLines(c.Param("id")))
}

// Submit handles POST /api/drafts/:id/submit. A back office failure is draft state and answers 200.
func (h *DraftHandler) Submit(c *gin.Context) {
	h.respond(c)(h.facade.Submit(c.Request.Context(), c.Param("id")))
}

// New handles POST /api/drafts/:id/new.
func (h *DraftHandler) New(c *gin.Context) {
	h.respond(c)(h.facade.NewOrder(c.Param("id")))
}

// Events handles GET /api/drafts/:id/events. It streams a snapshot after every change.
// A client that falls behind skips intermediate snapshots.
func (h *DraftHandler) Events(c *gin.Context) {
	snapshots := make(chan usecase.Snapshot, eventBuffer)
	current, unsubscribe, err := h.facade.Subscribe(c.Param("id"), func(s usecase.Snapshot) {
		select {
		case snapshots <- s:
		default:
		}
	})
	if err != nil {
		writeError(c, err)
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", toDraftResponse(current))
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case s := <-snapshots:
			c.SSEvent("snapshot", toDraftResponse(s))
			return true
		}
	})
}

func (h *DraftHandler) respond(c *gin.Context) func(usecase.Snapshot, error) {
	return func(snap usecase.Snapshot, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, toDraftResponse(snap))
	}
}
