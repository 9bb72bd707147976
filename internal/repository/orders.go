package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id, user_id, user_name, user_email, order_status, payment_method,
	payment_status, currency, order_date, payment_id, payer_id, instructor_id,
	instructor_name, course_image, course_title, course_id, course_pricing,
	card_last4, invoice_number, billing_details`

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepo(db *pgxpool.Pool) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		order.ID, order.UserID, order.UserName, order.UserEmail,
		order.OrderStatus, order.PaymentMethod, order.PaymentStatus,
		order.Currency, order.OrderDate, order.PaymentID, order.PayerID,
		order.InstructorID, order.InstructorName, order.CourseImage,
		order.CourseTitle, order.CourseID, order.CoursePricing,
		order.CardLast4, order.InvoiceNumber, order.Billing,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "orders_invoice_number_key" {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (r *orderRepo) Settle(ctx context.Context, id uuid.UUID, paymentID, payerID string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET payment_status = $2,
		    order_status = $3,
		    payment_id = $4,
		    payer_id = $5
		WHERE id = $1
		RETURNING `+orderColumns,
		id, domain.PaymentStatusPaid, domain.OrderStatusConfirmed, paymentID, payerID,
	)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("settle order: %w", err)
	}
	return order, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *orderRepo) FindUnsynced(ctx context.Context, before time.Time) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders o
		WHERE o.order_status = $1
		  AND o.payment_status = $2
		  AND o.order_date < $3
		  AND (
		    NOT EXISTS (
		      SELECT 1 FROM enrollments e
		      WHERE e.user_id = o.user_id AND e.course_id = o.course_id
		    )
		    OR NOT EXISTS (
		      SELECT 1 FROM course_students cs
		      WHERE cs.course_id = o.course_id AND cs.student_id = o.user_id
		    )
		  )`,
		domain.OrderStatusConfirmed, domain.PaymentStatusPaid, before,
	)
	if err != nil {
		return nil, fmt.Errorf("find unsynced orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.OrderStatus,
		&o.PaymentMethod, &o.PaymentStatus, &o.Currency, &o.OrderDate,
		&o.PaymentID, &o.PayerID, &o.InstructorID, &o.InstructorName,
		&o.CourseImage, &o.CourseTitle, &o.CourseID, &o.CoursePricing,
		&o.CardLast4, &o.InvoiceNumber, &o.Billing,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
