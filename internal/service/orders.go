package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coursekart/settlement/internal/config"
	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/gateway"
	"github.com/coursekart/settlement/internal/notify"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService is the settlement coordinator. It owns the two payment paths
// (trusted bypass vs external gateway), the capture transition, and the
// fan-out retry loop.
type OrderService struct {
	cfg     *config.Config
	orders  repository.OrderRepo
	fanOut  *EnrollmentService
	gateway gateway.PaymentGateway
	alerts  notify.Alerter
}

func NewOrderService(cfg *config.Config, orders repository.OrderRepo, fanOut *EnrollmentService, gtw gateway.PaymentGateway, alerts notify.Alerter) *OrderService {
	return &OrderService{
		cfg:     cfg,
		orders:  orders,
		fanOut:  fanOut,
		gateway: gtw,
		alerts:  alerts,
	}
}

// PurchaseRequest carries the buyer identity and course metadata supplied by
// the authentication and catalog collaborators.
type PurchaseRequest struct {
	UserID         string
	UserName       string
	UserEmail      string
	CourseID       string
	CourseTitle    string
	CoursePricing  decimal.Decimal
	InstructorID   string
	InstructorName string
	CourseImage    string
	PaymentMethod  string
	OrderDate      time.Time
	CardLast4      string
	Billing        *domain.BillingDetails
}

func (r *PurchaseRequest) validate() error {
	required := []struct{ name, value string }{
		{"userId", r.UserID},
		{"userName", r.UserName},
		{"userEmail", r.UserEmail},
		{"courseId", r.CourseID},
		{"courseTitle", r.CourseTitle},
		{"instructorId", r.InstructorID},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: missing %s", domain.ErrInvalidPurchase, f.name)
		}
	}
	if r.CoursePricing.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: coursePricing must be positive", domain.ErrInvalidPurchase)
	}
	return nil
}

// CreateOrderResult is the coordinator's answer to a purchase request. On
// the gateway path ApprovalURL is the redirect the buyer must visit before
// capture.
type CreateOrderResult struct {
	OrderID     uuid.UUID
	Status      domain.OrderStatus
	ApprovalURL string
}

func (s *OrderService) CreateOrder(ctx context.Context, req PurchaseRequest) (*CreateOrderResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	if s.cfg.TrustedBypass() || req.PaymentMethod == domain.PaymentMethodCard {
		return s.createTrusted(ctx, req)
	}
	return s.createViaGateway(ctx, req)
}

// createTrusted settles immediately: the order is persisted already
// confirmed and paid, with synthetic payment identifiers that can never be
// mistaken for gateway-issued ones, then fan-out runs before responding.
func (s *OrderService) createTrusted(ctx context.Context, req PurchaseRequest) (*CreateOrderResult, error) {
	method := domain.PaymentMethodDummy
	if req.PaymentMethod == domain.PaymentMethodCard {
		method = domain.PaymentMethodCard
	}

	order := s.newOrder(req)
	order.OrderStatus = domain.OrderStatusConfirmed
	order.PaymentStatus = domain.PaymentStatusPaid
	order.PaymentMethod = method
	order.PaymentID = fmt.Sprintf("%s%d", config.InternalPaymentPrefix, time.Now().UnixMilli())
	order.PayerID = config.InternalPaymentPrefix + req.UserID

	if err := s.persistWithInvoiceNumber(ctx, order); err != nil {
		return nil, err
	}

	slog.Info("order settled on trusted path",
		"order_id", order.ID,
		"user_id", order.UserID,
		"course_id", order.CourseID,
		"method", order.PaymentMethod,
		"invoice", order.InvoiceNumber,
	)

	if err := s.syncWithRetry(ctx, order); err != nil {
		return nil, err
	}

	return &CreateOrderResult{OrderID: order.ID, Status: order.OrderStatus}, nil
}

// createViaGateway submits a payment intent first; the order is only
// persisted once the provider has accepted the intent and returned an
// approval link. A gateway failure therefore leaves no record behind.
func (s *OrderService) createViaGateway(ctx context.Context, req PurchaseRequest) (*CreateOrderResult, error) {
	intent := gateway.PaymentIntent{
		Items: []gateway.Item{{
			Name:     req.CourseTitle,
			SKU:      req.CourseID,
			Price:    req.CoursePricing,
			Currency: s.cfg.Currency,
			Quantity: 1,
		}},
		Total:       req.CoursePricing,
		Currency:    s.cfg.Currency,
		Description: req.CourseTitle,
		ReturnURL:   s.cfg.ClientURL + "/payment-return",
		CancelURL:   s.cfg.ClientURL + "/payment-cancel",
	}

	gtwCtx, cancel := context.WithTimeout(ctx, s.cfg.GatewayTimeout)
	defer cancel()

	approval, err := s.gateway.CreatePaymentIntent(gtwCtx, intent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	if approval.ApprovalURL == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrGateway, gateway.ErrMissingApprovalLink)
	}

	order := s.newOrder(req)
	order.OrderStatus = domain.OrderStatusPending
	order.PaymentStatus = domain.PaymentStatusUnpaid
	order.PaymentMethod = domain.PaymentMethodPayPal

	if err := s.persistWithInvoiceNumber(ctx, order); err != nil {
		return nil, err
	}

	slog.Info("order awaiting external approval",
		"order_id", order.ID,
		"user_id", order.UserID,
		"course_id", order.CourseID,
		"invoice", order.InvoiceNumber,
	)

	return &CreateOrderResult{
		OrderID:     order.ID,
		Status:      order.OrderStatus,
		ApprovalURL: approval.ApprovalURL,
	}, nil
}

// CaptureOrder finalizes a gateway-path order with the identifiers the
// provider handed back. The settle write is an idempotent overwrite and
// fan-out tolerates re-runs, so repeating a capture converges to the same
// state.
func (s *OrderService) CaptureOrder(ctx context.Context, orderID uuid.UUID, paymentID, payerID string) (*domain.Order, error) {
	order, err := s.orders.Settle(ctx, orderID, paymentID, payerID)
	if err != nil {
		return nil, err
	}

	slog.Info("order captured",
		"order_id", order.ID,
		"user_id", order.UserID,
		"payment_id", paymentID,
	)

	if err := s.syncWithRetry(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) newOrder(req PurchaseRequest) *domain.Order {
	orderDate := req.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now().UTC()
	}
	return &domain.Order{
		ID:             uuid.New(),
		UserID:         req.UserID,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		Currency:       s.cfg.Currency,
		OrderDate:      orderDate,
		InstructorID:   req.InstructorID,
		InstructorName: req.InstructorName,
		CourseImage:    req.CourseImage,
		CourseTitle:    req.CourseTitle,
		CourseID:       req.CourseID,
		CoursePricing:  req.CoursePricing,
		CardLast4:      req.CardLast4,
		Billing:        req.Billing,
	}
}

// persistWithInvoiceNumber assigns the invoice number and inserts the order,
// regenerating on a storage-detected collision. The number is set exactly
// once: after a successful insert it is never touched again.
func (s *OrderService) persistWithInvoiceNumber(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 1; attempt <= config.MaxInvoiceAttempts; attempt++ {
		order.InvoiceNumber = domain.NewInvoiceNumber(time.Now())
		err = s.orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return err
		}
		slog.Warn("invoice number collision, regenerating",
			"order_id", order.ID,
			"invoice", order.InvoiceNumber,
			"attempt", attempt,
		)
	}
	return fmt.Errorf("assign invoice number: %w", err)
}

// syncWithRetry drives the enrollment fan-out saga step at-least-once. On
// exhaustion the order stays settled but unenrolled; the alert channel is
// signalled and the reconciliation sweep will repair it.
func (s *OrderService) syncWithRetry(ctx context.Context, order *domain.Order) error {
	var err error
	for attempt := 1; attempt <= s.cfg.FanOutAttempts; attempt++ {
		if err = s.fanOut.Sync(ctx, order); err == nil {
			return nil
		}
		slog.Warn("enrollment sync failed",
			"order_id", order.ID,
			"attempt", attempt,
			"error", err,
		)
		if attempt == s.cfg.FanOutAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.cfg.FanOutBackoff * time.Duration(attempt)):
		}
	}

	s.alerts.EnrollmentStalled(order.ID, err)
	return fmt.Errorf("%w: %w", domain.ErrEnrollmentIncomplete, err)
}
