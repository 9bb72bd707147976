package handler

import (
	"fmt"
	"net/http"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateOrder starts a settlement. Trusted-path purchases come back already
// confirmed; gateway-path purchases come back pending with the approval
// redirect the buyer must visit.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidPurchase, err))
		return
	}

	purchase := service.PurchaseRequest{
		UserID:         req.UserID,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		CourseID:       req.CourseID,
		CourseTitle:    req.CourseTitle,
		CoursePricing:  req.CoursePricing,
		InstructorID:   req.InstructorID,
		InstructorName: req.InstructorName,
		CourseImage:    req.CourseImage,
		PaymentMethod:  req.PaymentMethod,
		CardLast4:      req.CardLast4,
		Billing:        req.BillingDetails,
	}
	if req.OrderDate != nil {
		purchase.OrderDate = *req.OrderDate
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), purchase)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.ApprovalURL != "" {
		respondData(c, http.StatusCreated, gin.H{
			"approveUrl": result.ApprovalURL,
			"orderId":    result.OrderID,
		})
		return
	}

	respondMessage(c, http.StatusCreated, "Payment completed", gin.H{
		"orderId": result.OrderID,
		"status":  result.Status,
	})
}

// CaptureOrder finalizes a gateway-path order once the buyer approved the
// payment. Safe to repeat: a second call returns the same settled state.
func (h *Handler) CaptureOrder(c *gin.Context) {
	var req captureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %s", domain.ErrInvalidPurchase, err))
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid orderId", domain.ErrInvalidPurchase))
		return
	}

	order, err := h.orders.CaptureOrder(c.Request.Context(), orderID, req.PaymentID, req.PayerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Order confirmed", toOrderResponse(order))
}
