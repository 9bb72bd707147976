package repository_test

import (
	"context"
	"io/fs"
	"os"
	"testing"
	"time"

	settlement "github.com/coursekart/settlement"
	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Exercises the real stores against a disposable Postgres. Needs Docker;
// enable with INTEGRATION=1.
func TestPostgresStores(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run the Postgres integration test")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("settlement"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationsFS, err := fs.Sub(settlement.MigrationsFS, "migrations")
	require.NoError(t, err)
	require.NoError(t, repository.RunMigrations(dsn, migrationsFS))

	pool, err := repository.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	orders := repository.NewOrderRepo(pool)
	enrollments := repository.NewEnrollmentRepo(pool)
	rosters := repository.NewRosterRepo(pool)

	order := &domain.Order{
		ID:            uuid.New(),
		UserID:        "learner-1",
		UserName:      "Lena Ortiz",
		UserEmail:     "lena@example.com",
		OrderStatus:   domain.OrderStatusPending,
		PaymentMethod: domain.PaymentMethodPayPal,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Currency:      "USD",
		OrderDate:     time.Now().UTC().Add(-2 * time.Minute),
		InstructorID:  "inst-1",
		CourseTitle:   "Distributed Systems",
		CourseID:      "course-1",
		CoursePricing: decimal.RequireFromString("49.00"),
		InvoiceNumber: "INV-2026-123456",
		Billing: &domain.BillingDetails{
			Name:    "Lena Ortiz",
			Country: "DE",
		},
	}

	t.Run("create and read back", func(t *testing.T) {
		require.NoError(t, orders.Create(ctx, order))

		got, err := orders.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.InvoiceNumber, got.InvoiceNumber)
		assert.True(t, order.CoursePricing.Equal(got.CoursePricing))
		require.NotNil(t, got.Billing)
		assert.Equal(t, "DE", got.Billing.Country)
	})

	t.Run("invoice number collision is detected", func(t *testing.T) {
		dup := *order
		dup.ID = uuid.New()
		err := orders.Create(ctx, &dup)
		require.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	})

	t.Run("find by unknown id", func(t *testing.T) {
		_, err := orders.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("settle is an idempotent overwrite", func(t *testing.T) {
		settled, err := orders.Settle(ctx, order.ID, "PAY-77", "PAYER-11")
		require.NoError(t, err)
		assert.True(t, settled.IsSettled())

		again, err := orders.Settle(ctx, order.ID, "PAY-77", "PAYER-11")
		require.NoError(t, err)
		assert.Equal(t, settled.PaymentID, again.PaymentID)
		assert.Equal(t, settled.OrderStatus, again.OrderStatus)
	})

	t.Run("unsynced order is reported until fan-out lands", func(t *testing.T) {
		stale, err := orders.FindUnsynced(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, order.ID, stale[0].ID)

		require.NoError(t, enrollments.Add(ctx, domain.Enrollment{
			UserID:         order.UserID,
			CourseID:       order.CourseID,
			Title:          order.CourseTitle,
			InstructorID:   order.InstructorID,
			DateOfPurchase: order.OrderDate,
		}))

		// Enrollment alone is not enough; the roster half is still missing.
		stale, err = orders.FindUnsynced(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, stale, 1)

		require.NoError(t, rosters.Add(ctx, domain.RosterEntry{
			CourseID:     order.CourseID,
			StudentID:    order.UserID,
			StudentName:  order.UserName,
			StudentEmail: order.UserEmail,
			PaidAmount:   order.CoursePricing,
		}))

		stale, err = orders.FindUnsynced(ctx, time.Now())
		require.NoError(t, err)
		assert.Empty(t, stale)
	})

	t.Run("read-model inserts are add-if-absent", func(t *testing.T) {
		require.NoError(t, enrollments.Add(ctx, domain.Enrollment{
			UserID:         order.UserID,
			CourseID:       order.CourseID,
			Title:          order.CourseTitle,
			InstructorID:   order.InstructorID,
			DateOfPurchase: order.OrderDate,
		}))
		list, err := enrollments.ListByUser(ctx, order.UserID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, rosters.Add(ctx, domain.RosterEntry{
			CourseID:     order.CourseID,
			StudentID:    order.UserID,
			StudentName:  order.UserName,
			StudentEmail: order.UserEmail,
			PaidAmount:   order.CoursePricing,
		}))
		roster, err := rosters.ListByCourse(ctx, order.CourseID)
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, "49.00", roster[0].PaidAmount.StringFixed(2))
	})
}
