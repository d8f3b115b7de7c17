package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/parking-spot-reservation/internal/availability"
    "github.com/iliyamo/parking-spot-reservation/internal/model"
    "github.com/iliyamo/parking-spot-reservation/internal/queue"
    "github.com/iliyamo/parking-spot-reservation/internal/repository"
    queue_publisher "github.com/iliyamo/parking-spot-reservation/internal/service"
    "github.com/iliyamo/parking-spot-reservation/internal/utils"
)

// PaymentHandler implements the two-step checkout flow: an order is
// issued server-side before the hosted widget opens, and the widget's
// callback is only trusted after its signature verifies against the
// provider secret. The amount always comes from the stored booking,
// never from the client.
type PaymentHandler struct {
    Payments  *repository.PaymentRepo
    Bookings  *repository.BookingRepo
    Slots     *repository.SlotRepo
    Locations *repository.LocationRepo
    Avail     *availability.Reconciler
    KeyID     string
    Secret    string
}

// NewPaymentHandler constructs a PaymentHandler. All dependencies must
// be non-nil and both key fields non-empty.
func NewPaymentHandler(payments *repository.PaymentRepo, bookings *repository.BookingRepo, slots *repository.SlotRepo, locations *repository.LocationRepo, avail *availability.Reconciler, keyID, secret string) *PaymentHandler {
    if payments == nil || bookings == nil || slots == nil || locations == nil || avail == nil {
        panic("nil dependency passed to NewPaymentHandler")
    }
    if keyID == "" || secret == "" {
        panic("payment credentials missing in NewPaymentHandler")
    }
    return &PaymentHandler{
        Payments:  payments,
        Bookings:  bookings,
        Slots:     slots,
        Locations: locations,
        Avail:     avail,
        KeyID:     keyID,
        Secret:    secret,
    }
}

type verifyPaymentReq struct {
    OrderRef  string `json:"order_ref"`
    PaymentID string `json:"payment_id"`
    Signature string `json:"signature"`
}

// Initiate handles POST /v1/bookings/:id/payment. It creates a payment
// order for a caller-owned pending booking and returns the fields the
// checkout widget needs. Repeat calls issue fresh orders; only one can
// ever be verified because verification flips the booking to confirmed.
func (h *PaymentHandler) Initiate(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    booking, err := h.Bookings.GetByIDForUser(ctx, id, userID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
    }
    if booking.Status != model.StatusPending {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking is not awaiting payment"})
    }
    order := model.PaymentOrder{
        BookingID:   booking.ID,
        OrderRef:    utils.NewOrderRef(),
        AmountCents: booking.TotalAmountCents,
        Currency:    "INR",
        Status:      model.PaymentCreated,
    }
    if err := h.Payments.Create(ctx, &order); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create payment order"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "order_ref":    order.OrderRef,
        "amount_cents": order.AmountCents,
        "currency":     order.Currency,
        "key":          h.KeyID,
    })
}

// Verify handles POST /v1/payments/verify. The signature submitted by
// the widget callback is recomputed from the order reference and the
// provider payment id with the server-held secret; on mismatch the
// order is marked failed and the booking stays pending. On match the
// booking moves pending -> confirmed inside the same transaction that
// marks the order paid, so the two records never disagree.
func (h *PaymentHandler) Verify(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req verifyPaymentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.OrderRef == "" || req.PaymentID == "" || req.Signature == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "order_ref, payment_id and signature are required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    tx, err := h.Bookings.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    order, err := h.Payments.GetByRefTx(ctx, tx, req.OrderRef)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "payment order not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load payment order"})
    }
    booking, err := h.Bookings.GetByIDTx(ctx, tx, order.BookingID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
    }
    if booking.UserID != userID {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "payment order not found"})
    }
    if order.Status == model.PaymentPaid {
        // replayed callback for an order that already settled
        if err := tx.Commit(); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
        }
        committed = true
        return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(booking)})
    }
    if !utils.VerifyPaymentSignature(h.Secret, req.OrderRef, req.PaymentID, req.Signature) {
        if err := h.Payments.MarkStatusTx(ctx, tx, order.ID, model.PaymentFailed); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment order"})
        }
        if err := tx.Commit(); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
        }
        committed = true
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment signature verification failed"})
    }
    if !model.CanTransition(booking.Status, model.StatusConfirmed) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "booking can no longer be confirmed"})
    }
    if err := h.Bookings.UpdateStatusTx(ctx, tx, booking.ID, model.StatusConfirmed); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm booking"})
    }
    if err := h.Bookings.SetPaymentRefTx(ctx, tx, booking.ID, req.PaymentID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record payment reference"})
    }
    if err := h.Payments.MarkStatusTx(ctx, tx, order.ID, model.PaymentPaid); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update payment order"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    booking.Status = model.StatusConfirmed
    booking.PaymentRef = &req.PaymentID

    if err := h.Avail.Apply(ctx, booking.SlotID, booking.Status); err != nil {
        log.Printf("payment: availability reconcile after confirm %d failed: %v", booking.ID, err)
    }
    h.publishConfirmed(c, booking, req.PaymentID)
    return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(booking)})
}

// publishConfirmed emits the booking.confirmed event. Failures are
// logged and swallowed; the confirmation is already durable.
func (h *PaymentHandler) publishConfirmed(c echo.Context, b model.Booking, paymentRef string) {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    locationName := ""
    if slot, err := h.Slots.GetByID(ctx, b.SlotID); err == nil {
        if loc, err := h.Locations.GetByID(ctx, slot.LocationID); err == nil {
            locationName = loc.Name
        }
    }
    ev := queue.BookingConfirmedEvent{
        BookingID:        b.ID,
        UserID:           b.UserID,
        SlotID:           b.SlotID,
        SlotName:         b.SlotName,
        LocationName:     locationName,
        StartTime:        b.StartTime.UTC().Format(time.RFC3339),
        EndTime:          b.EndTime.UTC().Format(time.RFC3339),
        TotalAmountCents: b.TotalAmountCents,
        PaymentRef:       paymentRef,
        ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    if err := queue_publisher.PublishBookingConfirmed(ctx, ev); err != nil {
        log.Printf("payment: publish booking.confirmed for %d failed: %v", b.ID, err)
    }
}
