package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/google/uuid"
)

// Memory is an in-process implementation of all three stores sharing one
// lock, used by unit tests and local development. It mirrors the Postgres
// semantics: unique invoice numbers, add-if-absent read models, idempotent
// settle.
type Memory struct {
	mu          sync.Mutex
	orders      map[uuid.UUID]*domain.Order
	invoiceNums map[string]struct{}
	enrollments map[string][]domain.Enrollment // keyed by user id
	rosters     map[string][]domain.RosterEntry

	// FailEnrollments and FailRosters make the corresponding Add return the
	// given error, for exercising partial fan-out.
	FailEnrollments error
	FailRosters     error
}

func NewMemory() *Memory {
	return &Memory{
		orders:      make(map[uuid.UUID]*domain.Order),
		invoiceNums: make(map[string]struct{}),
		enrollments: make(map[string][]domain.Enrollment),
		rosters:     make(map[string][]domain.RosterEntry),
	}
}

func (m *Memory) Create(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.invoiceNums[order.InvoiceNumber]; taken {
		return domain.ErrDuplicateInvoiceNumber
	}
	m.invoiceNums[order.InvoiceNumber] = struct{}{}
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *Memory) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *order
	return &cp, nil
}

func (m *Memory) Settle(ctx context.Context, id uuid.UUID, paymentID, payerID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	order.PaymentStatus = domain.PaymentStatusPaid
	order.OrderStatus = domain.OrderStatusConfirmed
	order.PaymentID = paymentID
	order.PayerID = payerID
	cp := *order
	return &cp, nil
}

func (m *Memory) List(ctx context.Context) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (m *Memory) FindUnsynced(ctx context.Context, before time.Time) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var orders []domain.Order
	for _, o := range m.orders {
		if !o.IsSettled() || !o.OrderDate.Before(before) {
			continue
		}
		if !m.enrolledLocked(o.UserID, o.CourseID) || !m.onRosterLocked(o.CourseID, o.UserID) {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *Memory) Add(ctx context.Context, e domain.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailEnrollments != nil {
		return m.FailEnrollments
	}
	if m.enrolledLocked(e.UserID, e.CourseID) {
		return nil
	}
	m.enrollments[e.UserID] = append(m.enrollments[e.UserID], e)
	return nil
}

func (m *Memory) ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Enrollment(nil), m.enrollments[userID]...), nil
}

func (m *Memory) AddRoster(ctx context.Context, e domain.RosterEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailRosters != nil {
		return m.FailRosters
	}
	if m.onRosterLocked(e.CourseID, e.StudentID) {
		return nil
	}
	m.rosters[e.CourseID] = append(m.rosters[e.CourseID], e)
	return nil
}

func (m *Memory) ListByCourse(ctx context.Context, courseID string) ([]domain.RosterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RosterEntry(nil), m.rosters[courseID]...), nil
}

func (m *Memory) enrolledLocked(userID, courseID string) bool {
	for _, e := range m.enrollments[userID] {
		if e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (m *Memory) onRosterLocked(courseID, studentID string) bool {
	for _, e := range m.rosters[courseID] {
		if e.StudentID == studentID {
			return true
		}
	}
	return false
}

// memoryRosters adapts Memory to RosterRepo; the Add method name on the
// shared struct belongs to the enrollment side.
type memoryRosters struct{ *Memory }

func (m *Memory) RosterRepo() RosterRepo { return memoryRosters{m} }

func (m memoryRosters) Add(ctx context.Context, e domain.RosterEntry) error {
	return m.AddRoster(ctx, e)
}
