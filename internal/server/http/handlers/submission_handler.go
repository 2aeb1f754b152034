package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salesorder/internal/server/http/dto"
)

const maxSubmissionsLimit = 500

// SubmissionHandler lists journaled submissions.
type SubmissionHandler struct {
	facade SubmissionFacade
}

// NewSubmissionHandler constructs SubmissionHandler.
func NewSubmissionHandler(facade SubmissionFacade) *SubmissionHandler {
	return &SubmissionHandler{facade: facade}
}

// List handles GET /api/submissions?limit=N.
func (h *SubmissionHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = min(n, maxSubmissionsLimit)
	}

	orders, err := h.facade.RecentSubmissions(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.SubmittedOrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toSubmittedOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}
