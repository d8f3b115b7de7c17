// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a parking booking reaches the
// confirmed state through a verified payment. It carries enough
// information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID        uint64 `json:"booking_id"`
    UserID           uint64 `json:"user_id"`
    SlotID           uint64 `json:"parking_slot_id"`
    SlotName         string `json:"parking_slot_name"`
    LocationName     string `json:"location_name"`
    StartTime        string `json:"start_time"`
    EndTime          string `json:"end_time"`
    TotalAmountCents uint64 `json:"total_amount_cents"`
    PaymentRef       string `json:"payment_ref"`
    ConfirmedAt      string `json:"confirmed_at"`
}
