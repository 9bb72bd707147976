package handler

import (
	"time"

	"github.com/coursekart/settlement/internal/domain"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	UserID         string                 `json:"userId"`
	UserName       string                 `json:"userName"`
	UserEmail      string                 `json:"userEmail"`
	PaymentMethod  string                 `json:"paymentMethod"`
	OrderDate      *time.Time             `json:"orderDate"`
	InstructorID   string                 `json:"instructorId"`
	InstructorName string                 `json:"instructorName"`
	CourseImage    string                 `json:"courseImage"`
	CourseTitle    string                 `json:"courseTitle"`
	CourseID       string                 `json:"courseId"`
	CoursePricing  decimal.Decimal        `json:"coursePricing"`
	CardLast4      string                 `json:"cardLast4"`
	BillingDetails *domain.BillingDetails `json:"billingDetails"`
}

type captureOrderRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	PayerID   string `json:"payerId"`
}

type orderResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	UserName       string                 `json:"userName"`
	UserEmail      string                 `json:"userEmail"`
	OrderStatus    string                 `json:"orderStatus"`
	PaymentMethod  string                 `json:"paymentMethod"`
	PaymentStatus  string                 `json:"paymentStatus"`
	Currency       string                 `json:"currency"`
	OrderDate      time.Time              `json:"orderDate"`
	PaymentID      string                 `json:"paymentId"`
	PayerID        string                 `json:"payerId"`
	InstructorID   string                 `json:"instructorId"`
	InstructorName string                 `json:"instructorName"`
	CourseImage    string                 `json:"courseImage"`
	CourseTitle    string                 `json:"courseTitle"`
	CourseID       string                 `json:"courseId"`
	CoursePricing  decimal.Decimal        `json:"coursePricing"`
	CardLast4      string                 `json:"cardLast4,omitempty"`
	InvoiceNumber  string                 `json:"invoiceNumber"`
	BillingDetails *domain.BillingDetails `json:"billingDetails,omitempty"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:             o.ID.String(),
		UserID:         o.UserID,
		UserName:       o.UserName,
		UserEmail:      o.UserEmail,
		OrderStatus:    string(o.OrderStatus),
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  string(o.PaymentStatus),
		Currency:       o.Currency,
		OrderDate:      o.OrderDate,
		PaymentID:      o.PaymentID,
		PayerID:        o.PayerID,
		InstructorID:   o.InstructorID,
		InstructorName: o.InstructorName,
		CourseImage:    o.CourseImage,
		CourseTitle:    o.CourseTitle,
		CourseID:       o.CourseID,
		CoursePricing:  o.CoursePricing,
		CardLast4:      o.CardLast4,
		InvoiceNumber:  o.InvoiceNumber,
		BillingDetails: o.Billing,
	}
}
