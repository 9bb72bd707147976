package repository

import (
	"context"
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/google/uuid"
)

// OrderRepo is the persistent ledger of purchase attempts.
type OrderRepo interface {
	// Create persists a new order. A taken invoice number surfaces as
	// domain.ErrDuplicateInvoiceNumber so the caller can regenerate.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// Settle marks the order paid/confirmed and records the gateway
	// identifiers. The write is an idempotent overwrite; repeating it for an
	// already-settled order converges to the same state.
	Settle(ctx context.Context, id uuid.UUID, paymentID, payerID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	// FindUnsynced returns settled orders older than before whose enrollment
	// or roster row is missing.
	FindUnsynced(ctx context.Context, before time.Time) ([]domain.Order, error)
}

// EnrollmentRepo holds the per-learner purchased-course lists.
type EnrollmentRepo interface {
	// Add inserts the entry if no entry with the same (user, course) pair
	// exists. Re-adding is a no-op.
	Add(ctx context.Context, e domain.Enrollment) error
	ListByUser(ctx context.Context, userID string) ([]domain.Enrollment, error)
}

// RosterRepo holds the per-course enrolled-student sets.
type RosterRepo interface {
	// Add inserts the student if absent from the course roster. Re-adding is
	// a no-op.
	Add(ctx context.Context, e domain.RosterEntry) error
	ListByCourse(ctx context.Context, courseID string) ([]domain.RosterEntry, error)
}
