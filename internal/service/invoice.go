package service

import (
	"context"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/google/uuid"
)

// InvoiceService authorizes and serves invoice reads. The settled order is
// the invoice payload; nothing here mutates state.
type InvoiceService struct {
	orders repository.OrderRepo
}

func NewInvoiceService(orders repository.OrderRepo) *InvoiceService {
	return &InvoiceService{orders: orders}
}

// GetInvoice returns the order for its owner or an administrator.
func (s *InvoiceService) GetInvoice(ctx context.Context, orderID uuid.UUID, caller domain.Caller) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.ID != order.UserID {
		return nil, domain.ErrInvoiceForbidden
	}
	return order, nil
}

// ListOrders returns every order, newest first. Role gating happens at the
// transport edge.
func (s *InvoiceService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}
