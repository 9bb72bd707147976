package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/coursekart/settlement/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAlerter struct {
	mu        sync.Mutex
	outOfSync []int
}

func (a *countingAlerter) EnrollmentStalled(uuid.UUID, error) {}

func (a *countingAlerter) OrdersOutOfSync(count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outOfSync = append(a.outOfSync, count)
}

func staleSettledOrder(userID string) *domain.Order {
	return &domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		UserName:      "Lena Ortiz",
		UserEmail:     "lena@example.com",
		OrderStatus:   domain.OrderStatusConfirmed,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: domain.PaymentMethodDummy,
		Currency:      "USD",
		OrderDate:     time.Now().Add(-5 * time.Minute),
		CourseID:      "course-1",
		CourseTitle:   "Distributed Systems",
		CoursePricing: decimal.RequireFromString("49.00"),
		InstructorID:  "inst-1",
		InvoiceNumber: "INV-2026-" + userID,
	}
}

func TestSweepRepairsUnsyncedOrders(t *testing.T) {
	mem := repository.NewMemory()
	fanOut := service.NewEnrollmentService(mem, mem.RosterRepo())
	alerts := &countingAlerter{}

	// A settled order whose fan-out never happened.
	order := staleSettledOrder("learner-1")
	require.NoError(t, mem.Create(context.Background(), order))

	r := NewReconciler(mem, fanOut, alerts, time.Minute, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	enrollments, err := mem.ListByUser(context.Background(), "learner-1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)

	roster, err := mem.ListByCourse(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	require.Len(t, alerts.outOfSync, 1)
	assert.Equal(t, 1, alerts.outOfSync[0])

	// A second sweep finds nothing to repair.
	require.NoError(t, r.Sweep(context.Background()))
	assert.Len(t, alerts.outOfSync, 1)
}

func TestSweepCompletesPartialFanOut(t *testing.T) {
	mem := repository.NewMemory()
	fanOut := service.NewEnrollmentService(mem, mem.RosterRepo())

	order := staleSettledOrder("learner-2")
	require.NoError(t, mem.Create(context.Background(), order))

	// Only the enrollment half landed before the crash.
	require.NoError(t, mem.Add(context.Background(), domain.Enrollment{
		UserID:         order.UserID,
		CourseID:       order.CourseID,
		Title:          order.CourseTitle,
		InstructorID:   order.InstructorID,
		DateOfPurchase: order.OrderDate,
	}))

	r := NewReconciler(mem, fanOut, &countingAlerter{}, time.Minute, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	enrollments, err := mem.ListByUser(context.Background(), order.UserID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)

	roster, err := mem.ListByCourse(context.Background(), order.CourseID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, order.UserID, roster[0].StudentID)
}

func TestSweepIgnoresFreshOrders(t *testing.T) {
	mem := repository.NewMemory()
	fanOut := service.NewEnrollmentService(mem, mem.RosterRepo())
	alerts := &countingAlerter{}

	order := staleSettledOrder("learner-3")
	order.OrderDate = time.Now()
	require.NoError(t, mem.Create(context.Background(), order))

	r := NewReconciler(mem, fanOut, alerts, time.Minute, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	assert.Empty(t, alerts.outOfSync)
}
