package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListOrders returns every order, newest first. Admin-only, enforced by the
// route middleware.
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.invoices.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	respondData(c, http.StatusOK, out)
}
