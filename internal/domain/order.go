package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

const (
	PaymentMethodDummy  = "dummy"
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
)

// BillingDetails is optional buyer-supplied billing information, stored
// verbatim on the order.
type BillingDetails struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// Order is the financial record of one purchase attempt. It is created
// pending (gateway path) or directly confirmed (trusted path), mutated once
// by capture, and never deleted.
type Order struct {
	ID             uuid.UUID
	UserID         string
	UserName       string
	UserEmail      string
	OrderStatus    OrderStatus
	PaymentMethod  string
	PaymentStatus  PaymentStatus
	Currency       string
	OrderDate      time.Time
	PaymentID      string
	PayerID        string
	InstructorID   string
	InstructorName string
	CourseImage    string
	CourseTitle    string
	CourseID       string
	CoursePricing  decimal.Decimal
	CardLast4      string
	InvoiceNumber  string
	Billing        *BillingDetails
}

// IsSettled reports whether the order has reached its terminal paid state.
func (o *Order) IsSettled() bool {
	return o.OrderStatus == OrderStatusConfirmed && o.PaymentStatus == PaymentStatusPaid
}
