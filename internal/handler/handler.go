package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/coursekart/settlement/internal/config"
	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/service"
	"github.com/gin-gonic/gin"
)

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	orders   *service.OrderService
	invoices *service.InvoiceService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg      *config.Config
	Orders   *service.OrderService
	Invoices *service.InvoiceService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:      deps.Cfg,
		orders:   deps.Orders,
		invoices: deps.Invoices,
	}
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPurchase):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order can not be found"})
	case errors.Is(err, domain.ErrInvoiceForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have access to this invoice"})
	case errors.Is(err, domain.ErrGateway):
		slog.Error("payment gateway failure", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Error while creating gateway payment!"})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Some error occured!"})
	}
}
