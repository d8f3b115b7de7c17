package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking.  The
// values are stored verbatim in the bookings.status column.
type BookingStatus string

const (
    StatusPending   BookingStatus = "pending"
    StatusConfirmed BookingStatus = "confirmed"
    StatusCancelled BookingStatus = "cancelled"
    StatusCompleted BookingStatus = "completed"
)

// ParseStatus validates a raw status string and returns the typed
// value.  Unknown strings return false.
func ParseStatus(raw string) (BookingStatus, bool) {
    switch BookingStatus(raw) {
    case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
        return BookingStatus(raw), true
    }
    return "", false
}

// IsActive reports whether a booking in this status occupies its slot.
// Only pending and confirmed bookings block other reservations.
func (s BookingStatus) IsActive() bool {
    return s == StatusPending || s == StatusConfirmed
}

// IsTerminal reports whether the status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
    return s == StatusCancelled || s == StatusCompleted
}

// CanTransition reports whether a booking may move from one status to
// another.  The transition table is:
//
//  pending   -> confirmed | cancelled
//  confirmed -> cancelled | completed
//  cancelled -> (terminal; cancelled->cancelled allowed as a no-op)
//  completed -> (terminal)
//
// Re-cancelling an already cancelled booking is permitted so that
// cancellation stays idempotent for clients that retry.
func CanTransition(from, to BookingStatus) bool {
    switch from {
    case StatusPending:
        return to == StatusConfirmed || to == StatusCancelled
    case StatusConfirmed:
        return to == StatusCancelled || to == StatusCompleted
    case StatusCancelled:
        return to == StatusCancelled
    }
    return false
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.  Bookings that merely touch (one ends
// exactly when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
    return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Booking records a user's reservation of a parking slot for a time
// range.  The slot display name is denormalized onto the row so that
// listing bookings does not require a join for presentation.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  SlotID           – parking slot being reserved.
//  SlotName         – denormalized "<slot_number> - <location name>" label.
//  StartTime        – start of the reserved interval (UTC).
//  EndTime          – end of the reserved interval (UTC, exclusive).
//  TotalAmountCents – total price in paise.
//  Status           – lifecycle state (pending, confirmed, cancelled, completed).
//  PaymentRef       – provider payment reference once verified (nullable).
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
    ID               uint64        // bookings.id
    UserID           uint64        // bookings.user_id
    SlotID           uint64        // bookings.parking_slot_id
    SlotName         string        // bookings.parking_slot_name
    StartTime        time.Time     // bookings.start_time
    EndTime          time.Time     // bookings.end_time
    TotalAmountCents uint64        // bookings.total_amount_cents
    Status           BookingStatus // bookings.status
    PaymentRef       *string       // bookings.payment_ref (nullable)
    CreatedAt        time.Time     // bookings.created_at
    UpdatedAt        time.Time     // bookings.updated_at
}
