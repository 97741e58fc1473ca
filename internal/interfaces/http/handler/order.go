package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/raqueto/backend/internal/application/order"
)

// OrderHandler exposes the manual order confirmation trigger
type OrderHandler struct {
	BaseHandler
	confirmations *orderapp.ConfirmationService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(confirmations *orderapp.ConfirmationService) *OrderHandler {
	return &OrderHandler{confirmations: confirmations}
}

// Confirm handles POST /admin/orders/:id/confirmation
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, ok := h.pathID(c, "id", "Order not found")
	if !ok {
		return
	}
	resp, err := h.confirmations.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
