package notify

import "github.com/google/uuid"

// Alerter is the monitoring signal channel for conditions that need a human:
// fan-out retries exhausted, or the reconciliation sweep finding settled
// orders without enrollment.
type Alerter interface {
	EnrollmentStalled(orderID uuid.UUID, err error)
	OrdersOutOfSync(count int)
}

// Noop discards alerts. Used when no alert channel is configured; the
// structured log still carries the events.
type Noop struct{}

func (Noop) EnrollmentStalled(uuid.UUID, error) {}
func (Noop) OrdersOutOfSync(int)                {}
