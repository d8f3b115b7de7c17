package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

// ErrLocationNotFound is returned when a parking location does not exist.
var ErrLocationNotFound = errors.New("parking location not found")

// LocationRepo encapsulates database operations for parking_locations.
// Customers only read the catalog; writes come from the admin surface.
// Repeated reads with no intervening writes return identical sequences.
type LocationRepo struct {
    db *sql.DB
}

// NewLocationRepo returns a LocationRepo bound to the given database.
func NewLocationRepo(db *sql.DB) *LocationRepo { return &LocationRepo{db: db} }

// Create inserts a parking location and queries it back to populate
// generated fields.  Amenity tags are stored denormalized in a single
// comma-separated column.
func (r *LocationRepo) Create(ctx context.Context, loc *model.ParkingLocation) error {
    const q = `INSERT INTO parking_locations (name, address, hourly_rate_cents, amenities, total_slots)
               VALUES (?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, loc.Name, loc.Address, loc.HourlyRateCents,
        model.JoinAmenities(loc.Amenities), loc.TotalSlots)
    if err != nil {
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
    *loc = got
    return nil
}

// ListAll returns every parking location ordered by name.  When the
// amenity filter is non-empty, only locations advertising a matching
// tag are returned; matching is case-insensitive and normalizes spaces
// to hyphens (see model.NormalizeAmenity).  The filter is applied in
// Go rather than SQL because amenities live in a single denormalized
// column and the catalog is small.
func (r *LocationRepo) ListAll(ctx context.Context, amenity string) ([]model.ParkingLocation, error) {
    const q = `SELECT id, name, address, hourly_rate_cents, amenities, total_slots, created_at, updated_at
               FROM parking_locations
               ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ParkingLocation, 0)
    for rows.Next() {
        var loc model.ParkingLocation
        var amenities string
        if err := rows.Scan(&loc.ID, &loc.Name, &loc.Address, &loc.HourlyRateCents,
            &amenities, &loc.TotalSlots, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
            return nil, err
        }
        loc.Amenities = model.SplitAmenities(amenities)
        if amenity != "" && !loc.HasAmenity(amenity) {
            continue
        }
        out = append(out, loc)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single location.  ErrLocationNotFound is returned
// when no row exists.
func (r *LocationRepo) GetByID(ctx context.Context, id uint64) (model.ParkingLocation, error) {
    const q = `SELECT id, name, address, hourly_rate_cents, amenities, total_slots, created_at, updated_at
               FROM parking_locations WHERE id = ? LIMIT 1`
    var loc model.ParkingLocation
    var amenities string
    err := r.db.QueryRowContext(ctx, q, id).Scan(&loc.ID, &loc.Name, &loc.Address,
        &loc.HourlyRateCents, &amenities, &loc.TotalSlots, &loc.CreatedAt, &loc.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.ParkingLocation{}, ErrLocationNotFound
    }
    if err != nil {
        return model.ParkingLocation{}, err
    }
    loc.Amenities = model.SplitAmenities(amenities)
    return loc, nil
}
