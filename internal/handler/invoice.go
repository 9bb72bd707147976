package handler

import (
	"fmt"
	"net/http"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetInvoice serves the invoice payload for the order's owner or an admin.
func (h *Handler) GetInvoice(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid orderId", domain.ErrInvalidPurchase))
		return
	}

	order, err := h.invoices.GetInvoice(c.Request.Context(), orderID, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, toOrderResponse(order))
}
