package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/parking-spot-reservation/internal/availability"
	"github.com/iliyamo/parking-spot-reservation/internal/model"
	"github.com/iliyamo/parking-spot-reservation/internal/repository"
)

// BookingHandler groups the dependencies for the booking ledger
// endpoints.  All methods assume JWT authentication and role
// validation have already been performed by middleware.  Booking
// creation and status mutations run their critical DB operations
// inside a transaction; the availability reconciliation runs after
// commit and never fails the booking write.
type BookingHandler struct {
	Bookings  *repository.BookingRepo
	Slots     *repository.SlotRepo
	Locations *repository.LocationRepo
	Avail     *availability.Reconciler
}

// NewBookingHandler constructs a BookingHandler with the provided
// dependencies.  All must be non-nil.
func NewBookingHandler(bookings *repository.BookingRepo, slots *repository.SlotRepo, locations *repository.LocationRepo, avail *availability.Reconciler) *BookingHandler {
	if bookings == nil || slots == nil || locations == nil || avail == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Slots: slots, Locations: locations, Avail: avail}
}

// ----- DTOs -----

type createBookingReq struct {
	SlotID    uint64 `json:"parking_slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"` // optional; pending (default) or confirmed
}

type updateStatusReq struct {
	Status string `json:"status"`
}

type bookingResp struct {
	ID               uint64  `json:"id"`
	SlotID           uint64  `json:"parking_slot_id"`
	SlotName         string  `json:"parking_slot_name"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	TotalAmountCents uint64  `json:"total_amount_cents"`
	Status           string  `json:"status"`
	PaymentRef       *string `json:"payment_ref,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

func toBookingResp(b model.Booking) bookingResp {
	return bookingResp{
		ID:               b.ID,
		SlotID:           b.SlotID,
		SlotName:         b.SlotName,
		StartTime:        b.StartTime.UTC().Format(time.RFC3339),
		EndTime:          b.EndTime.UTC().Format(time.RFC3339),
		TotalAmountCents: b.TotalAmountCents,
		Status:           string(b.Status),
		PaymentRef:       b.PaymentRef,
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// parseBookingTimes validates the requested interval.  Both bounds must
// be RFC3339, start must precede end, and the interval may not start in
// the past (a one-minute skew allowance keeps "book from now" usable).
func parseBookingTimes(startRaw, endRaw string, now time.Time) (start, end time.Time, errMsg string) {
	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, "start_time must be RFC3339"
	}
	end, err = time.Parse(time.RFC3339, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, "end_time must be RFC3339"
	}
	start, end = start.UTC(), end.UTC()
	if !start.Before(end) {
		return time.Time{}, time.Time{}, "start_time must be before end_time"
	}
	if start.Before(now.UTC().Add(-time.Minute)) {
		return time.Time{}, time.Time{}, "start_time must not be in the past"
	}
	return start, end, ""
}

// initialStatus resolves the caller-supplied status field for a new
// booking.  Only pending (the default) and confirmed are accepted;
// a booking can never be born cancelled or completed.
func initialStatus(raw string) (model.BookingStatus, bool) {
	if raw == "" {
		return model.StatusPending, true
	}
	s, ok := model.ParseStatus(raw)
	if !ok || (s != model.StatusPending && s != model.StatusConfirmed) {
		return "", false
	}
	return s, true
}

// amountCents computes the booking total from the location hourly rate.
// Billing is per started hour, so a 90 minute booking costs two hours.
func amountCents(hourlyRateCents uint64, start, end time.Time) uint64 {
	d := end.Sub(start)
	hours := uint64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hourlyRateCents * hours
}

// Create handles POST /v1/bookings.  The total amount is computed
// server-side from the location's hourly rate; the client never
// supplies a price.  Inside one transaction the slot row is locked,
// the interval is checked against active bookings and the booking is
// inserted, so two concurrent requests for an overlapping range on the
// same slot serialize and the loser receives 409.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SlotID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "parking_slot_id is required"})
	}
	start, end, errMsg := parseBookingTimes(req.StartTime, req.EndTime, time.Now())
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errMsg})
	}
	status, ok := initialStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be pending or confirmed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	// resolve the slot's location for the rate and display name
	slot, err := h.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	loc, err := h.Locations.GetByID(ctx, slot.LocationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

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
	// the slot lock is the serialization point for concurrent creates
	if _, err := h.Slots.LockByIDTx(ctx, tx, slot.ID); err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to lock slot"})
	}
	taken, err := h.Bookings.ExistsOverlapTx(ctx, tx, slot.ID, start, end)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
	}
	if taken {
		return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSlotConflict.Error()})
	}
	booking := model.Booking{
		UserID:           userID,
		SlotID:           slot.ID,
		SlotName:         fmt.Sprintf("%s - %s", slot.SlotNumber, loc.Name),
		StartTime:        start,
		EndTime:          end,
		TotalAmountCents: amountCents(loc.HourlyRateCents, start, end),
		Status:           status,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// best effort: the booking is durable even when the flag update fails
	if err := h.Avail.Apply(ctx, slot.ID, booking.Status); err != nil {
		log.Printf("booking: availability reconcile after create %d failed: %v", booking.ID, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toBookingResp(booking)})
}

// List handles GET /v1/bookings.  It returns the caller's bookings
// newest first; an empty array when none exist.
func (h *BookingHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	bookings, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	items := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id.  Ownership is enforced by query
// predicate, so a booking owned by someone else responds 404.
func (h *BookingHandler) Get(c echo.Context) error {
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
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(booking)})
}

// Cancel handles DELETE /v1/bookings/:id.  Cancellation is a status
// overwrite, idempotent in effect: cancelling an already cancelled
// booking succeeds without touching the row.  A completed booking can
// no longer be cancelled (409).
func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.transition(c, model.StatusCancelled)
}

// UpdateStatus handles PATCH /v1/bookings/:id/status.  The requested
// transition must be legal under the booking state machine; anything
// else responds 409.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, ok := model.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	return h.transition(c, status)
}

// transition applies a status change to a caller-owned booking inside
// a transaction and reconciles the slot flag after commit.
func (h *BookingHandler) transition(c echo.Context, to model.BookingStatus) error {
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
	booking, err := h.Bookings.GetByIDForUserTx(ctx, tx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if booking.Status == to && to == model.StatusCancelled {
		// documented no-op: repeat cancels succeed without a write
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
		}
		committed = true
		return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(booking)})
	}
	if !model.CanTransition(booking.Status, to) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": repository.ErrInvalidTransition.Error(),
			"from":  string(booking.Status),
			"to":    string(to),
		})
	}
	if err := h.Bookings.UpdateStatusTx(ctx, tx, booking.ID, to); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if err := h.Avail.Apply(ctx, booking.SlotID, to); err != nil {
		log.Printf("booking: availability reconcile after transition %d -> %s failed: %v", booking.ID, to, err)
	}
	booking.Status = to
	booking.UpdatedAt = time.Now().UTC()
	return c.JSON(http.StatusOK, echo.Map{"item": toBookingResp(booking)})
}
