// Package gateway abstracts the external payment provider behind a single
// capability: create a remote payment intent and hand back an approval link.
// Capture is driven by caller-supplied identifiers, not a second provider
// call.
package gateway

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrMissingApprovalLink means the provider accepted the intent but returned
// no approval redirect, a violation of the external contract.
var ErrMissingApprovalLink = errors.New("missing approval link")

type Item struct {
	Name     string
	SKU      string
	Price    decimal.Decimal
	Currency string
	Quantity int
}

type PaymentIntent struct {
	Items       []Item
	Total       decimal.Decimal
	Currency    string
	Description string
	ReturnURL   string
	CancelURL   string
}

type Approval struct {
	ApprovalURL string
}

type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*Approval, error)
}
