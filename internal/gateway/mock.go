package gateway

import (
	"context"
	"fmt"
	"sync"
)

// MockGateway records payment intents in memory and returns a canned
// approval link. Err, when set, is returned instead; an empty ApprovalURL
// simulates a provider that omits the redirect.
type MockGateway struct {
	mu      sync.Mutex
	intents []PaymentIntent

	ApprovalURL string
	Err         error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{ApprovalURL: "https://gateway.example/approve"}
}

func (g *MockGateway) CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*Approval, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}
	g.intents = append(g.intents, intent)
	if g.ApprovalURL == "" {
		return nil, ErrMissingApprovalLink
	}
	return &Approval{ApprovalURL: fmt.Sprintf("%s?intent=%d", g.ApprovalURL, len(g.intents))}, nil
}

// Intents returns a copy of every intent received so far.
func (g *MockGateway) Intents() []PaymentIntent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]PaymentIntent(nil), g.intents...)
}
