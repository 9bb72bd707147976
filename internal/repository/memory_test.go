package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRejectsConcurrentInvoiceCollision(t *testing.T) {
	mem := NewMemory()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = mem.Create(context.Background(), &domain.Order{
				ID:            uuid.New(),
				UserID:        "learner-1",
				OrderStatus:   domain.OrderStatusConfirmed,
				PaymentStatus: domain.PaymentStatusPaid,
				OrderDate:     time.Now(),
				CourseID:      "course-1",
				InvoiceNumber: "INV-2026-111111",
			})
		}(i)
	}
	wg.Wait()

	var created, collided int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		default:
			require.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
			collided++
		}
	}
	assert.Equal(t, 1, created, "exactly one order may claim an invoice number")
	assert.Equal(t, n-1, collided)
}

func TestMemoryRosterIsASet(t *testing.T) {
	mem := NewMemory()
	rosters := mem.RosterRepo()

	entry := domain.RosterEntry{CourseID: "course-1", StudentID: "learner-1", StudentName: "Lena"}
	require.NoError(t, rosters.Add(context.Background(), entry))
	require.NoError(t, rosters.Add(context.Background(), entry))

	list, err := rosters.ListByCourse(context.Background(), "course-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
