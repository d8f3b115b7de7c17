package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

// BookingRepo provides CRUD operations for the booking ledger.  Each
// booking ties a user to a parking slot for a half-open time range
// [start_time, end_time).  All timestamp fields are stored in UTC.
//
// Ownership is enforced by query predicate: every read or mutation on
// behalf of a user filters on (id, user_id), so a booking owned by
// someone else is indistinguishable from one that does not exist.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning the ledger and the slot table.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, parking_slot_id, parking_slot_name, start_time, end_time,
                        total_amount_cents, status, payment_ref, created_at, updated_at`

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
    var b model.Booking
    var status string
    var payRef sql.NullString
    err := row.Scan(&b.ID, &b.UserID, &b.SlotID, &b.SlotName, &b.StartTime, &b.EndTime,
        &b.TotalAmountCents, &status, &payRef, &b.CreatedAt, &b.UpdatedAt)
    if err != nil {
        return model.Booking{}, err
    }
    b.Status = model.BookingStatus(status)
    if payRef.Valid {
        ref := payRef.String
        b.PaymentRef = &ref
    }
    return b, nil
}

// ExistsOverlapTx reports whether any active (pending or confirmed)
// booking for the slot overlaps the half-open interval [start, end)
// within the given transaction.  Callers must hold the slot row lock
// (SlotRepo.LockByIDTx) before calling, so that two concurrent creates
// for the same slot serialize and at most one can pass this check.
func (r *BookingRepo) ExistsOverlapTx(ctx context.Context, tx *sql.Tx, slotID uint64, start, end time.Time) (bool, error) {
    const q = `SELECT EXISTS(
                 SELECT 1 FROM bookings
                 WHERE parking_slot_id = ?
                   AND status IN ('pending','confirmed')
                   AND start_time < ? AND ? < end_time)`
    var exists bool
    err := tx.QueryRowContext(ctx, q, slotID, end, start).Scan(&exists)
    return exists, err
}

// ExistsOverlap is the non-transactional form of ExistsOverlapTx, used
// by the availability read path.  The answer is advisory: without the
// slot lock a concurrent create may change it immediately.
func (r *BookingRepo) ExistsOverlap(ctx context.Context, slotID uint64, start, end time.Time) (bool, error) {
    const q = `SELECT EXISTS(
                 SELECT 1 FROM bookings
                 WHERE parking_slot_id = ?
                   AND status IN ('pending','confirmed')
                   AND start_time < ? AND ? < end_time)`
    var exists bool
    err := r.db.QueryRowContext(ctx, q, slotID, end, start).Scan(&exists)
    return exists, err
}

// CountActiveBySlot returns the number of active bookings that
// reference the slot, regardless of time range.  The reconciler uses
// it to decide whether a slot may be re-opened after a cancellation.
func (r *BookingRepo) CountActiveBySlot(ctx context.Context, slotID uint64) (int, error) {
    const q = `SELECT COUNT(*) FROM bookings
               WHERE parking_slot_id = ? AND status IN ('pending','confirmed')`
    var n int
    err := r.db.QueryRowContext(ctx, q, slotID).Scan(&n)
    return n, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and queries the row back to populate generated fields.
// The caller must commit or rollback the transaction.  Status must be
// a valid enumeration value; the overlap check is the caller's
// responsibility (ExistsOverlapTx under the slot lock).
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
    const q = `INSERT INTO bookings
               (user_id, parking_slot_id, parking_slot_name, start_time, end_time, total_amount_cents, status)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        b.UserID, b.SlotID, b.SlotName, b.StartTime.UTC(), b.EndTime.UTC(),
        b.TotalAmountCents, string(b.Status))
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    sel := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
    if err != nil {
        return err
    }
    *b = got
    return nil
}

// GetByIDForUser returns a single booking scoped to its owner.  When
// no booking with the given ID exists for the user, sql.ErrNoRows is
// returned.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? AND user_id = ? LIMIT 1`
    return scanBooking(r.db.QueryRowContext(ctx, q, bookingID, userID))
}

// GetByIDForUserTx is GetByIDForUser under FOR UPDATE inside a
// transaction, used by status mutations so the transition check and
// the write see the same row.
func (r *BookingRepo) GetByIDForUserTx(ctx context.Context, tx *sql.Tx, bookingID, userID uint64) (model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`
    return scanBooking(tx.QueryRowContext(ctx, q, bookingID, userID))
}

// GetByIDTx loads any booking by primary key under FOR UPDATE.  The
// payment verification path uses it because the payment order, not the
// caller, names the booking.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
    return scanBooking(tx.QueryRowContext(ctx, q, bookingID))
}

// ListByUser returns all of a user's bookings ordered by creation time
// descending (newest first).  When no bookings exist an empty slice is
// returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
    q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        b, err := scanBooking(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateStatusTx overwrites the booking status and bumps updated_at
// within the transaction.  Transition legality is checked by callers
// against model.CanTransition before writing.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status model.BookingStatus) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`,
        string(status), bookingID)
    return err
}

// SetPaymentRefTx stores the provider payment reference on a booking.
// Only the server-side verification path calls this.
func (r *BookingRepo) SetPaymentRefTx(ctx context.Context, tx *sql.Tx, bookingID uint64, ref string) error {
    _, err := tx.ExecContext(ctx,
        `UPDATE bookings SET payment_ref = ?, updated_at = NOW() WHERE id = ?`,
        ref, bookingID)
    return err
}
