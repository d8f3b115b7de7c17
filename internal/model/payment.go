package model

import "time"

// PaymentOrderStatus enumerates payment order states.
type PaymentOrderStatus string

const (
    PaymentCreated PaymentOrderStatus = "created"
    PaymentPaid    PaymentOrderStatus = "paid"
    PaymentFailed  PaymentOrderStatus = "failed"
)

// PaymentOrder is the durable record issued before the hosted checkout
// widget opens.  The widget's client-side callback alone never
// confirms a booking; the order must be verified server-side against
// the signature computed with the provider secret.
//
// Fields:
//  ID          – primary key identifier.
//  BookingID   – booking this order pays for.
//  OrderRef    – opaque reference handed to the checkout widget.
//  AmountCents – amount in paise, copied from the booking at issue time.
//  Currency    – ISO currency code (INR).
//  Status      – created, paid or failed.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type PaymentOrder struct {
    ID          uint64             // payment_orders.id
    BookingID   uint64             // payment_orders.booking_id
    OrderRef    string             // payment_orders.order_ref
    AmountCents uint64             // payment_orders.amount_cents
    Currency    string             // payment_orders.currency
    Status      PaymentOrderStatus // payment_orders.status
    CreatedAt   time.Time          // payment_orders.created_at
    UpdatedAt   time.Time          // payment_orders.updated_at
}
