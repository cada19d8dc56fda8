package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/apartment-rentals/pkg/metrics"
	"github.com/chris/apartment-rentals/pkg/models"
	"github.com/chris/apartment-rentals/pkg/storage"
)

// ReconcileStore is what the reconciliation sweep reads and repairs.
type ReconcileStore interface {
	storage.SettlementStore
	storage.ReservationStore
}

// ReconcileReport counts what a sweep did with each paid payment it examined.
type ReconcileReport struct {
	Examined int
	Repaired int
	Skipped  int
	Failed   int
}

// Reconciler advances reservations whose payment is paid but whose status
// never caught up.
type Reconciler struct {
	store ReconcileStore
}

// NewReconciler creates a Reconciler.
func NewReconciler(store ReconcileStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile examines paid payments older than maxAge. A failure on one
// reservation does not stop the sweep.
func (r *Reconciler) Reconcile(ctx context.Context, maxAge time.Duration) (ReconcileReport, error) {
	var report ReconcileReport

	payments, err := r.store.ListSettledPayments(ctx, maxAge)
	if err != nil {
		return report, fmt.Errorf("failed to list settled payments: %w", err)
	}

	for _, payment := range payments {
		report.Examined++
		result := r.repair(ctx, payment)
		metrics.Booking().ObserveRepair(result)
		switch result {
		case "repaired":
			report.Repaired++
		case "skipped":
			report.Skipped++
		default:
			report.Failed++
		}
	}
	return report, nil
}

func (r *Reconciler) repair(ctx context.Context, payment models.Payment) string {
	res, err := r.store.GetReservation(ctx, payment.ReservationId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load reservation for paid payment", "reservation_id", payment.ReservationId, "error", err)
		return "failed"
	}

	switch res.Status {
	case models.ReservationPaid:
		return "skipped"
	case models.ReservationCancelled:
		slog.WarnContext(ctx, "paid payment on a cancelled reservation", "reservation_id", res.Id, "payment_id", payment.Id)
		return "skipped"
	}

	_, err = r.store.UpdateReservationStatus(ctx, res.Id, res.Status, models.ReservationPaid)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "repaired reservation status", "reservation_id", res.Id, "from", res.Status)
		return "repaired"
	case errors.Is(err, storage.ErrStatusConflict):
		// Moved since we read it; the next sweep looks again.
		return "skipped"
	default:
		slog.ErrorContext(ctx, "failed to repair reservation status", "reservation_id", res.Id, "error", err)
		return "failed"
	}
}
