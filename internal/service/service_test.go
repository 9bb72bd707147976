package service

import (
	"context"
	"sync"
	"time"

	"github.com/coursekart/settlement/internal/config"
	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testConfig() *config.Config {
	return &config.Config{
		ClientURL:      "http://localhost:5173",
		Currency:       "USD",
		DummyPayments:  true,
		GatewayTimeout: time.Second,
		FanOutAttempts: 3,
		FanOutBackoff:  time.Millisecond,
	}
}

func gatewayConfig() *config.Config {
	cfg := testConfig()
	cfg.DummyPayments = false
	cfg.PayPalClientID = "client"
	cfg.PayPalSecret = "secret"
	return cfg
}

func testPurchase() PurchaseRequest {
	return PurchaseRequest{
		UserID:         "learner-1",
		UserName:       "Lena Ortiz",
		UserEmail:      "lena@example.com",
		CourseID:       "course-1",
		CourseTitle:    "Distributed Systems",
		CoursePricing:  decimal.RequireFromString("49.00"),
		InstructorID:   "inst-1",
		InstructorName: "Pat Kim",
		CourseImage:    "https://img.example/c1.png",
		PaymentMethod:  domain.PaymentMethodDummy,
	}
}

type recordingAlerter struct {
	mu        sync.Mutex
	stalled   []uuid.UUID
	outOfSync []int
}

func (a *recordingAlerter) EnrollmentStalled(orderID uuid.UUID, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stalled = append(a.stalled, orderID)
}

func (a *recordingAlerter) OrdersOutOfSync(count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outOfSync = append(a.outOfSync, count)
}

// collideOnce wraps an OrderRepo and reports an invoice-number collision for
// the first n Create calls.
type collideOnce struct {
	repository.OrderRepo
	mu        sync.Mutex
	remaining int
	attempts  int
}

func (c *collideOnce) Create(ctx context.Context, order *domain.Order) error {
	c.mu.Lock()
	c.attempts++
	fail := c.remaining > 0
	if fail {
		c.remaining--
	}
	c.mu.Unlock()

	if fail {
		return domain.ErrDuplicateInvoiceNumber
	}
	return c.OrderRepo.Create(ctx, order)
}
