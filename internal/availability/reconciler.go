// Package availability keeps the stored parking_slots.is_available flag
// approximately in sync with the booking ledger, and exposes the
// computed interval predicate that callers should prefer over the flag.
//
// Reconciliation is best effort: errors are logged and returned so
// callers can ignore them without interrupting the booking write.  A
// failed reconcile leaves the flag stale, never the ledger wrong.
package availability

import (
    "context"
    "log"
    "time"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
    "github.com/iliyamo/parking-spot-reservation/internal/repository"
)

// Reconciler flips a slot's stored availability flag in response to
// booking status changes and answers interval availability queries
// from the ledger.
type Reconciler struct {
    slots    *repository.SlotRepo
    bookings *repository.BookingRepo
}

// New constructs a Reconciler over the slot and booking repositories.
func New(slots *repository.SlotRepo, bookings *repository.BookingRepo) *Reconciler {
    return &Reconciler{slots: slots, bookings: bookings}
}

// Apply reconciles the stored flag after a booking enters the given
// status.  An active status (pending, confirmed) marks the slot
// unavailable.  A released status (cancelled, completed) re-opens the
// slot only when no other active booking still references it, so one
// cancellation cannot blind-flip a slot that a second booking holds.
// Errors are logged with a reconciler prefix and returned.
func (r *Reconciler) Apply(ctx context.Context, slotID uint64, status model.BookingStatus) error {
    active := 0
    if !status.IsActive() {
        n, err := r.bookings.CountActiveBySlot(ctx, slotID)
        if err != nil {
            log.Printf("reconciler: count active bookings for slot %d failed: %v", slotID, err)
            return err
        }
        active = n
    }
    available := desiredFlag(status, active)
    if err := r.slots.SetAvailability(ctx, slotID, available); err != nil {
        log.Printf("reconciler: set slot %d availability=%v failed: %v", slotID, available, err)
        return err
    }
    return nil
}

// desiredFlag computes the stored-flag value after a booking enters
// the given status.  remainingActive is the number of active bookings
// still referencing the slot; it is only consulted when the triggering
// status itself released the slot.
func desiredFlag(status model.BookingStatus, remainingActive int) bool {
    if status.IsActive() {
        return false
    }
    return remainingActive == 0
}

// BookableFor reports whether the slot is free for the half-open
// interval [start, end).  This is the computed predicate that replaces
// the stored flag as the authoritative answer: a slot is bookable iff
// no active booking overlaps the interval.
func (r *Reconciler) BookableFor(ctx context.Context, slotID uint64, start, end time.Time) (bool, error) {
    if _, err := r.slots.GetByID(ctx, slotID); err != nil {
        return false, err
    }
    taken, err := r.bookings.ExistsOverlap(ctx, slotID, start, end)
    if err != nil {
        return false, err
    }
    return !taken, nil
}
