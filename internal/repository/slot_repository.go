package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

// ErrSlotNotFound is returned when a parking slot does not exist.
var ErrSlotNotFound = errors.New("parking slot not found")

// ErrSlotNumberTaken is returned when a location already has a slot
// with the requested number.
var ErrSlotNumberTaken = errors.New("slot number already exists at this location")

// SlotRepo encapsulates database operations for parking_slots.  The
// is_available column is the legacy stored flag; it is read for the
// catalog and written only by the availability reconciler.
type SlotRepo struct {
    db *sql.DB
}

// NewSlotRepo constructs a SlotRepo given a DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo { return &SlotRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span slots and bookings.
func (r *SlotRepo) DB() *sql.DB { return r.db }

// Create inserts a slot for a location and queries it back.  New slots
// start available; a MySQL duplicate-key error on (location_id,
// slot_number) surfaces as ErrSlotNumberTaken.
func (r *SlotRepo) Create(ctx context.Context, s *model.ParkingSlot) error {
    const q = `INSERT INTO parking_slots (location_id, slot_number, is_available)
               VALUES (?, ?, TRUE)`
    res, err := r.db.ExecContext(ctx, q, s.LocationID, s.SlotNumber)
    if err != nil {
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrSlotNumberTaken
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    got, err := r.GetByID(ctx, uint64(id))
    if err != nil {
        return err
    }
    *s = got
    return nil
}

// ListByLocation returns a location's slots ordered by slot number.
// When available is non-nil the list is filtered on the stored flag.
func (r *SlotRepo) ListByLocation(ctx context.Context, locationID uint64, available *bool) ([]model.ParkingSlot, error) {
    q := `SELECT id, location_id, slot_number, is_available, created_at, updated_at
          FROM parking_slots WHERE location_id = ?`
    args := []interface{}{locationID}
    if available != nil {
        q += ` AND is_available = ?`
        args = append(args, *available)
    }
    q += ` ORDER BY slot_number`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ParkingSlot, 0)
    for rows.Next() {
        var s model.ParkingSlot
        if err := rows.Scan(&s.ID, &s.LocationID, &s.SlotNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single slot.  ErrSlotNotFound is returned when no
// row exists.
func (r *SlotRepo) GetByID(ctx context.Context, id uint64) (model.ParkingSlot, error) {
    const q = `SELECT id, location_id, slot_number, is_available, created_at, updated_at
               FROM parking_slots WHERE id = ? LIMIT 1`
    var s model.ParkingSlot
    err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.LocationID, &s.SlotNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.ParkingSlot{}, ErrSlotNotFound
    }
    return s, err
}

// LockByIDTx loads a slot row under FOR UPDATE within the given
// transaction.  Every booking create for the slot takes this lock
// first, which serializes concurrent creates so the overlap check
// cannot race.  ErrSlotNotFound is returned when no row exists.
func (r *SlotRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.ParkingSlot, error) {
    const q = `SELECT id, location_id, slot_number, is_available, created_at, updated_at
               FROM parking_slots WHERE id = ? FOR UPDATE`
    var s model.ParkingSlot
    err := tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.LocationID, &s.SlotNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.ParkingSlot{}, ErrSlotNotFound
    }
    return s, err
}

// SetAvailability overwrites the stored availability flag.  Called by
// the reconciler only; booking writes never depend on it succeeding.
func (r *SlotRepo) SetAvailability(ctx context.Context, slotID uint64, available bool) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE parking_slots SET is_available = ?, updated_at = NOW() WHERE id = ?`,
        available, slotID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    // zero rows with no error means the flag already had this value,
    // which is fine; a missing slot is not distinguished here
    _ = n
    return nil
}
