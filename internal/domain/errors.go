package domain

import "errors"

var (
	ErrInvalidPurchase        = errors.New("invalid purchase request")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvoiceForbidden       = errors.New("no access to this invoice")
	ErrGateway                = errors.New("payment gateway error")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already in use")
	ErrEnrollmentIncomplete   = errors.New("enrollment sync incomplete")
)
