package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/coursekart/settlement/internal/notify"
	"github.com/coursekart/settlement/internal/repository"
	"github.com/coursekart/settlement/internal/service"
)

// Reconciler periodically looks for settled orders whose enrollment fan-out
// never completed and re-runs the fan-out for them. Fan-out is idempotent,
// so overlapping with an in-flight capture is harmless; the age cutoff keeps
// the sweep away from orders still being processed.
type Reconciler struct {
	orders    repository.OrderRepo
	fanOut    *service.EnrollmentService
	alerts    notify.Alerter
	interval  time.Duration
	olderThan time.Duration
}

func NewReconciler(orders repository.OrderRepo, fanOut *service.EnrollmentService, alerts notify.Alerter, interval, olderThan time.Duration) *Reconciler {
	return &Reconciler{
		orders:    orders,
		fanOut:    fanOut,
		alerts:    alerts,
		interval:  interval,
		olderThan: olderThan,
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("reconciliation worker started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				slog.Error("reconciliation sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one pass. Exported so it can be triggered outside the ticker.
func (r *Reconciler) Sweep(ctx context.Context) error {
	stale, err := r.orders.FindUnsynced(ctx, time.Now().Add(-r.olderThan))
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	slog.Warn("found settled orders without enrollment", "count", len(stale))
	r.alerts.OrdersOutOfSync(len(stale))

	for i := range stale {
		order := &stale[i]
		if err := r.fanOut.Sync(ctx, order); err != nil {
			slog.Error("failed to repair enrollment",
				"order_id", order.ID,
				"error", err,
			)
			continue
		}
		slog.Info("enrollment repaired", "order_id", order.ID)
	}
	return nil
}
